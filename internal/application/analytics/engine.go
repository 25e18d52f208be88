package analytics

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/domain/inventory"
)

const (
	LowStockThreshold = 5  // quantidade < 5 cuenta como estoque baixo y nivel critical
	WarningThreshold  = 10 // quantidade < 10 nivel warning
	RackSize          = 12 // perchas visibles en la arara
	TopN              = 5  // ranking por valor
)

// Niveles de la arara.
const (
	TierCritical = "critical"
	TierWarning  = "warning"
	TierOK       = "ok"
)

// Meses abreviados pt-BR (índice 0 = janeiro).
var monthLabels = []string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."}

// Ninguna función de este archivo modifica sus entradas: ordenan y recortan copias del slice.

// predicate compila el filtro una vez por invocación (el Caser no se comparte entre goroutines).
func predicate(f *FilterState) func(*entity.Item) bool {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(f.Search))
	return func(it *entity.Item) bool {
		if !slices.Contains(f.Categories, it.Category) {
			return false
		}
		if it.Price.GreaterThan(f.PriceMax) {
			return false
		}
		if q == "" {
			return true
		}
		hay := fold.String(strings.Join([]string{it.Tag, it.Name, it.Category, it.Location}, " "))
		return strings.Contains(hay, q)
	}
}

// Passes indica si el item pasa el filtro activo.
func Passes(it *entity.Item, f *FilterState) bool {
	return predicate(f)(it)
}

// Filter devuelve los items que pasan el filtro, en el orden de entrada.
func Filter(items []*entity.Item, f *FilterState) []*entity.Item {
	ok := predicate(f)
	out := make([]*entity.Item, 0, len(items))
	for _, it := range items {
		if ok(it) {
			out = append(out, it)
		}
	}
	return out
}

// ComputeKPIs totales sobre los items ya filtrados.
func ComputeKPIs(passing []*entity.Item) dto.KPIsDTO {
	k := dto.KPIsDTO{ValorTotal: decimal.Zero}
	for _, it := range passing {
		k.ValorTotal = k.ValorTotal.Add(inventory.ItemValue(it))
		k.TotalPecas += it.Quantity
		if it.Quantity < LowStockThreshold {
			k.EstoqueBaixo++
		}
	}
	return k
}

// TableView filas con valor ordenadas por el campo. El orden es estable en ambos sentidos:
// los empates conservan el orden de entrada.
func TableView(passing []*entity.Item, sort SortKey) []dto.TableRowDTO {
	sorted := slices.Clone(passing)
	slices.SortStableFunc(sorted, func(a, b *entity.Item) int {
		if sort.Desc {
			return compareField(b, a, sort.Field)
		}
		return compareField(a, b, sort.Field)
	})
	rows := make([]dto.TableRowDTO, 0, len(sorted))
	for _, it := range sorted {
		rows = append(rows, dto.TableRowDTO{ItemResponse: dto.NewItemResponse(it), Valor: inventory.ItemValue(it)})
	}
	return rows
}

func compareField(a, b *entity.Item, field string) int {
	switch field {
	case FieldTag:
		return strings.Compare(a.Tag, b.Tag)
	case FieldNome:
		return strings.Compare(a.Name, b.Name)
	case FieldCategoria:
		return strings.Compare(a.Category, b.Category)
	case FieldArara:
		return strings.Compare(a.Location, b.Location)
	case FieldPreco:
		return a.Price.Cmp(b.Price)
	case FieldQuantidade:
		return cmp.Compare(a.Quantity, b.Quantity)
	case FieldEntrada:
		return cmp.Compare(a.Inbound, b.Inbound)
	case FieldSaida:
		return cmp.Compare(a.Outbound, b.Outbound)
	case FieldAtualizadoEm:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default: // FieldValor
		return inventory.ItemValue(a).Cmp(inventory.ItemValue(b))
	}
}

// Tier nivel de la arara según la cantidad.
func Tier(quantity int) string {
	switch {
	case quantity < LowStockThreshold:
		return TierCritical
	case quantity < WarningThreshold:
		return TierWarning
	default:
		return TierOK
	}
}

// RackView las RackSize piezas con más unidades, distribuidas en el ancho de la arara (0..100).
func RackView(passing []*entity.Item) []dto.RackSlotDTO {
	sorted := slices.Clone(passing)
	slices.SortStableFunc(sorted, func(a, b *entity.Item) int { return cmp.Compare(b.Quantity, a.Quantity) })
	if len(sorted) > RackSize {
		sorted = sorted[:RackSize]
	}
	step := 100.0 / float64(max(len(sorted), 1)+1)
	slots := make([]dto.RackSlotDTO, 0, len(sorted))
	for i, it := range sorted {
		slots = append(slots, dto.RackSlotDTO{
			Tag:        it.Tag,
			Nome:       it.Name,
			Quantidade: it.Quantity,
			Posicao:    step * float64(i+1),
			Nivel:      Tier(it.Quantity),
		})
	}
	return slots
}

// CategoryTotals unidades por categoría, en orden de primera aparición.
func CategoryTotals(passing []*entity.Item) []dto.CategoryTotalDTO {
	idx := make(map[string]int)
	var out []dto.CategoryTotalDTO
	for _, it := range passing {
		i, ok := idx[it.Category]
		if !ok {
			i = len(out)
			idx[it.Category] = i
			out = append(out, dto.CategoryTotalDTO{Categoria: it.Category})
		}
		out[i].Quantidade += it.Quantity
	}
	if out == nil {
		out = []dto.CategoryTotalDTO{}
	}
	return out
}

// TopByValue los TopN de mayor valor (empates en orden de entrada).
func TopByValue(passing []*entity.Item) []dto.TopItemDTO {
	sorted := slices.Clone(passing)
	slices.SortStableFunc(sorted, func(a, b *entity.Item) int {
		return inventory.ItemValue(b).Cmp(inventory.ItemValue(a))
	})
	if len(sorted) > TopN {
		sorted = sorted[:TopN]
	}
	out := make([]dto.TopItemDTO, 0, len(sorted))
	for _, it := range sorted {
		out = append(out, dto.TopItemDTO{Tag: it.Tag, Nome: it.Name, Valor: inventory.ItemValue(it)})
	}
	return out
}

// MonthlyFlow suma qtd del ledger por mes para los años seleccionados. Siempre 12 posiciones.
func MonthlyFlow(ledger []*entity.Movement, years []int) dto.MonthlyFlowDTO {
	flow := dto.MonthlyFlowDTO{
		Meses:    slices.Clone(monthLabels),
		Entradas: make([]int, 12),
		Saidas:   make([]int, 12),
	}
	for _, m := range ledger {
		if !slices.Contains(years, m.Timestamp.Year()) {
			continue
		}
		i := int(m.Timestamp.Month()) - 1
		switch m.Type {
		case entity.MovementTypeIn:
			flow.Entradas[i] += m.Quantity
		case entity.MovementTypeOut:
			flow.Saidas[i] += m.Quantity
		}
	}
	return flow
}

// BuildDashboard compone todas las vistas sobre el mismo snapshot.
func BuildDashboard(items []*entity.Item, ledger []*entity.Movement, f *FilterState) dto.DashboardDTO {
	passing := Filter(items, f)
	return dto.DashboardDTO{
		Filtro:     f.DTO(),
		KPIs:       ComputeKPIs(passing),
		Tabela:     TableView(passing, f.Sort),
		Arara:      RackView(passing),
		Categorias: CategoryTotals(passing),
		TopValor:   TopByValue(passing),
		Fluxo:      MonthlyFlow(ledger, f.Years),
	}
}
