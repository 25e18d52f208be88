package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
)

func TestReportWriter_Planilla(t *testing.T) {
	r := &dto.ReportDTO{
		Titulo:   "SIPAC",
		GeradoEm: time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		Linhas: []dto.ReportRowDTO{
			{Tag: "001", Nome: "Camiseta Básica", Categoria: "Camisetas", Preco: decimal.RequireFromString("49.9"),
				Quantidade: 10, Entrada: 12, Saida: 2, Saldo: 10, Valor: decimal.RequireFromString("499"), Movimentacao: true},
		},
		Totais: dto.ReportTotalsDTO{TotalEntradas: 12, TotalSaidas: 2, TotalSaldo: 10, ValorTotal: decimal.RequireFromString("499")},
	}

	w := NewReportWriter()
	out, err := w.Render(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", w.Extension())

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 8)

	assert.Equal(t, []string{"Tag", "Peça", "Categoria", "Preço", "Entradas", "Saídas", "Saldo", "Valor Total"}, rows[0])
	assert.Equal(t, []string{"001", "Camiseta Básica", "Camisetas", "49.9", "12", "2", "10", "499"}, rows[1])
	assert.Equal(t, "Resumo do Relatório", rows[3][0])
	assert.Equal(t, []string{"Total de Entradas", "12"}, rows[4])
	assert.Equal(t, []string{"Valor Total em Estoque", "499"}, rows[7])
}

func TestReportWriter_SinFilas(t *testing.T) {
	r := &dto.ReportDTO{Totais: dto.ReportTotalsDTO{ValorTotal: decimal.Zero}}
	out, err := NewReportWriter().Render(context.Background(), r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "Resumo do Relatório", rows[2][0])
}
