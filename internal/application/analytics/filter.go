package analytics

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/domain"
)

// Campos ordenables de la tabla (nombres del wire).
const (
	FieldTag          = "tag"
	FieldNome         = "nome"
	FieldCategoria    = "categoria"
	FieldPreco        = "preco"
	FieldQuantidade   = "quantidade"
	FieldArara        = "arara"
	FieldAtualizadoEm = "atualizadoEm"
	FieldValor        = "valor"
	FieldEntrada      = "entrada"
	FieldSaida        = "saida"
)

var sortableFields = []string{
	FieldTag, FieldNome, FieldCategoria, FieldPreco, FieldQuantidade,
	FieldArara, FieldAtualizadoEm, FieldValor, FieldEntrada, FieldSaida,
}

// SortKey campo y dirección de la tabla. En el wire "-valor" = valor descendente.
type SortKey struct {
	Field string
	Desc  bool
}

// DefaultSort es el orden inicial y el que restaura Reset.
var DefaultSort = SortKey{Field: FieldValor, Desc: true}

// ParseSortKey interpreta "campo" o "-campo".
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	k := SortKey{Field: strings.TrimPrefix(s, "-"), Desc: strings.HasPrefix(s, "-")}
	if !slices.Contains(sortableFields, k.Field) {
		return SortKey{}, fmt.Errorf("%w: sort %q", domain.ErrInvalidInput, s)
	}
	return k, nil
}

func (k SortKey) String() string {
	if k.Desc {
		return "-" + k.Field
	}
	return k.Field
}

// FilterDefaults valores que restaura Reset (vienen de configuración).
type FilterDefaults struct {
	Years      []int
	Categories []string
	PriceMax   decimal.Decimal
}

// FilterState selección activa de la vista. Years y Categories se tratan como conjuntos
// (sin duplicados); el orden se conserva solo para la salida.
type FilterState struct {
	Years      []int
	Categories []string
	PriceMax   decimal.Decimal
	Search     string
	Sort       SortKey

	defaults FilterDefaults
}

// NewFilterState crea un filtro en el estado por defecto.
func NewFilterState(d FilterDefaults) *FilterState {
	f := &FilterState{defaults: d}
	f.Reset()
	return f
}

// Reset: todos los años y categorías configurados, techo de precio por defecto, sin búsqueda, -valor.
func (f *FilterState) Reset() {
	f.Years = slices.Clone(f.defaults.Years)
	f.Categories = slices.Clone(f.defaults.Categories)
	f.PriceMax = f.defaults.PriceMax
	f.Search = ""
	f.Sort = DefaultSort
}

// ToggleYear agrega o quita el año.
func (f *FilterState) ToggleYear(y int) {
	if i := slices.Index(f.Years, y); i >= 0 {
		f.Years = slices.Delete(f.Years, i, i+1)
		return
	}
	f.Years = append(f.Years, y)
}

// ToggleCategory agrega o quita la categoría.
func (f *FilterState) ToggleCategory(c string) {
	if i := slices.Index(f.Categories, c); i >= 0 {
		f.Categories = slices.Delete(f.Categories, i, i+1)
		return
	}
	f.Categories = append(f.Categories, c)
}

// SetYears reemplaza el conjunto de años.
func (f *FilterState) SetYears(years []int) {
	out := make([]int, 0, len(years))
	for _, y := range years {
		if !slices.Contains(out, y) {
			out = append(out, y)
		}
	}
	f.Years = out
}

// SetCategories reemplaza el conjunto de categorías.
func (f *FilterState) SetCategories(cats []string) {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	f.Categories = out
}

func (f *FilterState) SetPriceMax(p decimal.Decimal) { f.PriceMax = p }
func (f *FilterState) SetSearch(s string)            { f.Search = s }
func (f *FilterState) SetSort(k SortKey)             { f.Sort = k }

// DTO eco del filtro para la respuesta.
func (f *FilterState) DTO() dto.FilterDTO {
	years := slices.Clone(f.Years)
	slices.Sort(years)
	return dto.FilterDTO{
		Anos:       years,
		Categorias: slices.Clone(f.Categories),
		PrecoMax:   f.PriceMax,
		Busca:      f.Search,
		Sort:       f.Sort.String(),
	}
}
