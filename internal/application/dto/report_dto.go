package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRowDTO fila del relatorio de estoque.
type ReportRowDTO struct {
	Tag          string          `json:"tag"`
	Nome         string          `json:"nome"`
	Categoria    string          `json:"categoria"`
	Arara        string          `json:"arara"`
	Preco        decimal.Decimal `json:"preco"`
	Quantidade   int             `json:"quantidade"`
	Entrada      int             `json:"entrada"`
	Saida        int             `json:"saida"`
	Saldo        int             `json:"saldo"` // quantidade si movimentacao, 0 en otro caso
	Valor        decimal.Decimal `json:"valor"`
	Movimentacao bool            `json:"movimentacao"`
}

// ReportTotalsDTO resumen al pie del relatorio.
type ReportTotalsDTO struct {
	TotalEntradas int             `json:"totalEntradas"`
	TotalSaidas   int             `json:"totalSaidas"`
	TotalSaldo    int             `json:"totalSaldo"`
	ValorTotal    decimal.Decimal `json:"valorTotal"`
}

// ReportDTO respuesta de GET /api/relatorio y entrada de los exportadores.
type ReportDTO struct {
	Titulo    string          `json:"titulo"`
	Categoria string          `json:"categoria,omitempty"`
	GeradoEm  time.Time       `json:"geradoEm"`
	Linhas    []ReportRowDTO  `json:"linhas"`
	Totais    ReportTotalsDTO `json:"totais"`
}

// SimulatorStatusDTO estado del feed IoT simulado.
type SimulatorStatusDTO struct {
	Ativo       bool   `json:"ativo"`
	IntervaloMs int64  `json:"intervaloMs"`
	Ticks       uint64 `json:"ticks"`
}
