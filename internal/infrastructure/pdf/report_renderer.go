// Package pdf implementa la exportación del relatorio de estoque a PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del sistema  │  Gerado em dd/mm/aaaa        │
//	│  Subtítulo + categoría filtrada                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tag | Peça | Categoria | Preço | Ent. | Saí. | Saldo │
//	│         | Valor Total                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: entradas / saídas / saldo / valor total             │
//	│  FOOTER: línea de la empresa (todas las páginas)             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/application/report"
	"github.com/jhoicas/sipac-estoque/pkg/moeda"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 41, Green: 128, Blue: 185}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDark    = &props.Color{Red: 40, Green: 40, Blue: 40}
)

const subtitle = "Relatório detalhado de entradas e saídas"

// ── Renderer ──────────────────────────────────────────────────────────────────

// ReportRenderer implementa report.Renderer usando Maroto v2.
type ReportRenderer struct {
	companyLine string
}

var _ report.Renderer = (*ReportRenderer)(nil)

// NewReportRenderer construye el renderer. companyLine va al pie de cada página (vacío = sin pie).
func NewReportRenderer(companyLine string) *ReportRenderer {
	return &ReportRenderer{companyLine: companyLine}
}

func (g *ReportRenderer) ContentType() string { return "application/pdf" }
func (g *ReportRenderer) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *ReportRenderer) Render(ctx context.Context, r *dto.ReportDTO) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Titulo, true).
		WithAuthor("SIPAC", true).
		Build()

	m := maroto.New(cfg)
	if g.companyLine != "" {
		if err := m.RegisterFooter(footerRow(g.companyLine)); err != nil {
			return nil, fmt.Errorf("pdf: registrar pie: %w", err)
		}
	}

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	for _, rr := range tableRows(r.Linhas) {
		m.AddRows(rr)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRows(r.Totais)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *dto.ReportDTO) core.Row {
	sub := subtitle
	if r.Categoria != "" {
		sub += " · Categoria: " + r.Categoria
	}
	return row.New(20).Add(
		col.New(8).Add(
			text.New(r.Titulo, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(sub, props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+r.GeradoEm.Format("02/01/2006 15:04:05"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(strconv.Itoa(len(r.Linhas))+" itens", props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: Tag | Peça | Categoria | Preço | Entradas | Saídas | Saldo | Valor Total.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tag", 1, align.Left),
		h("Peça", 2, align.Left),
		h("Categoria", 2, align.Left),
		h("Preço", 2, align.Right),
		h("Entradas", 1, align.Center),
		h("Saídas", 1, align.Center),
		h("Saldo", 1, align.Center),
		h("Valor Total", 2, align.Right),
	)
}

func tableRows(linhas []dto.ReportRowDTO) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: colorDark,
		}))
	}
	result := make([]core.Row, 0, len(linhas))
	for _, l := range linhas {
		result = append(result, row.New(7).Add(
			cell(l.Tag, 1, align.Left),
			cell(l.Nome, 2, align.Left),
			cell(l.Categoria, 2, align.Left),
			cell(moeda.Format(l.Preco), 2, align.Right),
			cell(strconv.Itoa(l.Entrada), 1, align.Center),
			cell(strconv.Itoa(l.Saida), 1, align.Center),
			cell(strconv.Itoa(l.Saldo), 1, align.Center),
			cell(moeda.Format(l.Valor), 2, align.Right),
		))
	}
	return result
}

// summaryRows: bloque "Resumo do Relatório" alineado a la derecha.
func summaryRows(t dto.ReportTotalsDTO) []core.Row {
	title := row.New(9).Add(col.New(12).Add(
		text.New("Resumo do Relatório", props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3,
		}),
	))
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	kv := func(k, v string) core.Row {
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(label(k)),
			col.New(3).Add(value(v)),
		)
	}
	return []core.Row{
		title,
		kv("Total de Entradas:", strconv.Itoa(t.TotalEntradas)),
		kv("Total de Saídas:", strconv.Itoa(t.TotalSaidas)),
		kv("Saldo Total:", strconv.Itoa(t.TotalSaldo)),
		row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New("Valor Total em Estoque:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
			})),
			col.New(3).Add(text.New(moeda.Format(t.ValorTotal), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
			})),
		),
	}
}

func footerRow(companyLine string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(companyLine, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 3}),
	))
}
