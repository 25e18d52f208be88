package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
)

func sampleReport() *dto.ReportDTO {
	return &dto.ReportDTO{
		Titulo:   "SIPAC – Sistema de Gestão de Estoque",
		GeradoEm: time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		Linhas: []dto.ReportRowDTO{
			{Tag: "001", Nome: "Camiseta Básica", Categoria: "Camisetas", Preco: decimal.RequireFromString("49.90"),
				Quantidade: 10, Entrada: 12, Saida: 2, Saldo: 10, Valor: decimal.RequireFromString("499.00"), Movimentacao: true},
			{Tag: "004", Nome: "Boné", Categoria: "Bonés", Preco: decimal.RequireFromString("39.90"),
				Quantidade: 0, Entrada: 3, Saida: 3, Saldo: 0, Valor: decimal.Zero},
		},
		Totais: dto.ReportTotalsDTO{TotalEntradas: 15, TotalSaidas: 5, TotalSaldo: 10, ValorTotal: decimal.RequireFromString("499.00")},
	}
}

func TestReportRenderer_GeneraPDF(t *testing.T) {
	g := NewReportRenderer("SIPAC Moda · CNPJ 00.000.000/0001-00")
	out, err := g.Render(context.Background(), sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el documento debe empezar con la firma PDF")
	assert.Equal(t, "application/pdf", g.ContentType())
	assert.Equal(t, "pdf", g.Extension())
}

func TestReportRenderer_RelatorioVacio(t *testing.T) {
	r := sampleReport()
	r.Linhas = nil
	r.Totais = dto.ReportTotalsDTO{ValorTotal: decimal.Zero}
	out, err := NewReportRenderer("").Render(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestReportRenderer_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReportRenderer("").Render(ctx, sampleReport())
	assert.ErrorIs(t, err, context.Canceled)
}
