package dto

import "github.com/shopspring/decimal"

// DashboardDTO respuesta de GET /api/dashboard.
// Todas las vistas se derivan del mismo snapshot de items y del ledger filtrado por años.
type DashboardDTO struct {
	Filtro     FilterDTO          `json:"filtro"`
	KPIs       KPIsDTO            `json:"kpis"`
	Tabela     []TableRowDTO      `json:"tabela"`
	Arara      []RackSlotDTO      `json:"arara"`
	Categorias []CategoryTotalDTO `json:"categorias"`
	TopValor   []TopItemDTO       `json:"topValor"` // top 5 por valor, de mayor a menor
	Fluxo      MonthlyFlowDTO     `json:"fluxo"`
}

// FilterDTO eco del estado de filtro aplicado.
type FilterDTO struct {
	Anos       []int           `json:"anos"`
	Categorias []string        `json:"categorias"`
	PrecoMax   decimal.Decimal `json:"precoMax"`
	Busca      string          `json:"busca"`
	Sort       string          `json:"sort"` // "-valor" = valor descendente
}

// KPIsDTO indicadores sobre los items que pasan el filtro.
type KPIsDTO struct {
	ValorTotal   decimal.Decimal `json:"valorTotal"`
	TotalPecas   int             `json:"totalPecas"`
	EstoqueBaixo int             `json:"estoqueBaixo"` // quantidade < 5
}

// TableRowDTO fila de la tabla: item + valor calculado.
type TableRowDTO struct {
	ItemResponse
	Valor decimal.Decimal `json:"valor"`
}

// RackSlotDTO posición de un item en la vista de arara.
type RackSlotDTO struct {
	Tag        string  `json:"tag"`
	Nome       string  `json:"nome"`
	Quantidade int     `json:"quantidade"`
	Posicao    float64 `json:"posicao"` // % del ancho de la arara
	Nivel      string  `json:"nivel"`   // critical | warning | ok
}

// CategoryTotalDTO unidades por categoría.
type CategoryTotalDTO struct {
	Categoria  string `json:"categoria"`
	Quantidade int    `json:"quantidade"`
}

// TopItemDTO entrada del ranking por valor.
type TopItemDTO struct {
	Tag   string          `json:"tag"`
	Nome  string          `json:"nome"`
	Valor decimal.Decimal `json:"valor"`
}

// MonthlyFlowDTO series mensuales de entradas y saídas (índice 0 = janeiro).
type MonthlyFlowDTO struct {
	Meses    []string `json:"meses"`
	Entradas []int    `json:"entradas"`
	Saidas   []int    `json:"saidas"`
}

// AuditDTO resultado de la auditoría del ledger contra los contadores.
type AuditDTO struct {
	ItensVerificados int              `json:"itensVerificados"`
	Divergencias     []LedgerDriftDTO `json:"divergencias"`
}

// LedgerDriftDTO diferencia entre los contadores de un item y la suma de su ledger.
type LedgerDriftDTO struct {
	Tag           string `json:"tag"`
	EntradaItem   int    `json:"entradaItem"`
	EntradaLedger int    `json:"entradaLedger"`
	SaidaItem     int    `json:"saidaItem"`
	SaidaLedger   int    `json:"saidaLedger"`
	SemItem       bool   `json:"semItem"` // movimientos de un item ya eliminado
}
