// Package xlsx exporta el relatorio de estoque a una planilla Excel con excelize.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/application/report"
)

// SheetName nombre de la hoja del relatorio.
const SheetName = "Relatório"

// Formato monetario de las columnas Preço y Valor Total.
const brlFormat = `"R$" #,##0.00`

var headers = []any{"Tag", "Peça", "Categoria", "Preço", "Entradas", "Saídas", "Saldo", "Valor Total"}

// ReportWriter implementa report.Renderer.
type ReportWriter struct{}

var _ report.Renderer = (*ReportWriter)(nil)

// NewReportWriter construye el writer.
func NewReportWriter() *ReportWriter { return &ReportWriter{} }

func (w *ReportWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (w *ReportWriter) Extension() string { return "xlsx" }

// Render escribe cabecera, una fila por item y el bloque de resumen.
func (w *ReportWriter) Render(ctx context.Context, r *dto.ReportDTO) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}
	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "H1", styles.header); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	rowN := 2
	for _, l := range r.Linhas {
		cell, _ := excelize.CoordinatesToCellName(1, rowN)
		values := []any{l.Tag, l.Nome, l.Categoria, l.Preco.InexactFloat64(), l.Entrada, l.Saida, l.Saldo, l.Valor.InexactFloat64()}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %s: %w", l.Tag, err)
		}
		rowN++
	}
	if rowN > 2 {
		last := rowN - 1
		if err := setMoneyStyle(f, styles.money, "D", 2, last); err != nil {
			return nil, err
		}
		if err := setMoneyStyle(f, styles.money, "H", 2, last); err != nil {
			return nil, err
		}
	}

	// ── Resumo ──
	rowN++
	summary := [][]any{
		{"Resumo do Relatório"},
		{"Total de Entradas", r.Totais.TotalEntradas},
		{"Total de Saídas", r.Totais.TotalSaidas},
		{"Saldo Total", r.Totais.TotalSaldo},
		{"Valor Total em Estoque", r.Totais.ValorTotal.InexactFloat64()},
	}
	for i, values := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, rowN)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: resumen: %w", err)
		}
		if i == 0 {
			if err := f.SetCellStyle(SheetName, cell, cell, styles.header); err != nil {
				return nil, fmt.Errorf("xlsx: estilo resumen: %w", err)
			}
		}
		if i == len(summary)-1 {
			if err := setMoneyStyle(f, styles.money, "B", rowN, rowN); err != nil {
				return nil, err
			}
		}
		rowN++
	}

	for colName, width := range map[string]float64{"A": 10, "B": 28, "C": 16, "D": 14, "E": 10, "F": 10, "G": 10, "H": 16} {
		if err := f.SetColWidth(SheetName, colName, colName, width); err != nil {
			return nil, fmt.Errorf("xlsx: ancho %s: %w", colName, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

type styleSet struct {
	header int
	money  int
}

func newStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2980B9"}},
	})
	if err != nil {
		return s, fmt.Errorf("xlsx: estilo: %w", err)
	}
	format := brlFormat
	s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return s, fmt.Errorf("xlsx: estilo: %w", err)
	}
	return s, nil
}

func setMoneyStyle(f *excelize.File, style int, column string, from, to int) error {
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("%s%d", column, from), fmt.Sprintf("%s%d", column, to), style); err != nil {
		return fmt.Errorf("xlsx: estilo moneda: %w", err)
	}
	return nil
}
