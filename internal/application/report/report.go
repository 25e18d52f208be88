// Package report arma el relatorio de estoque (entradas, saídas, saldo y valor por item)
// y lo entrega a los exportadores PDF y XLSX.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/domain/inventory"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

// Renderer convierte el relatorio en un archivo descargable.
type Renderer interface {
	Render(ctx context.Context, r *dto.ReportDTO) ([]byte, error)
	ContentType() string
	Extension() string
}

// File archivo exportado.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// UseCase lee los items frescos del proveedor y construye el relatorio.
type UseCase struct {
	items repository.ItemRepository
	title string
	now   func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(items repository.ItemRepository, title string) *UseCase {
	return &UseCase{items: items, title: title, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Generate devuelve el relatorio, opcionalmente de una sola categoría.
func (uc *UseCase) Generate(ctx context.Context, categoria string) (*dto.ReportDTO, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("relatorio: %w", err)
	}
	r := Build(items, categoria, uc.title, uc.now())
	return &r, nil
}

// Export genera el relatorio y lo pasa por el renderer.
func (uc *UseCase) Export(ctx context.Context, categoria string, renderer Renderer) (*File, error) {
	r, err := uc.Generate(ctx, categoria)
	if err != nil {
		return nil, err
	}
	content, err := renderer.Render(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("relatorio: exportar %s: %w", renderer.Extension(), err)
	}
	return &File{
		Name:        FileName(r.GeradoEm, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}

// Build arma filas y totales. Función pura: saldo y valor salen de las derivaciones del dominio.
func Build(items []*entity.Item, categoria, title string, now time.Time) dto.ReportDTO {
	r := dto.ReportDTO{
		Titulo:    title,
		Categoria: categoria,
		GeradoEm:  now,
		Linhas:    []dto.ReportRowDTO{},
		Totais:    dto.ReportTotalsDTO{ValorTotal: decimal.Zero},
	}
	for _, it := range items {
		if categoria != "" && it.Category != categoria {
			continue
		}
		row := dto.ReportRowDTO{
			Tag:          it.Tag,
			Nome:         it.Name,
			Categoria:    it.Category,
			Arara:        it.Location,
			Preco:        it.Price,
			Quantidade:   it.Quantity,
			Entrada:      it.Inbound,
			Saida:        it.Outbound,
			Saldo:        inventory.Balance(it),
			Valor:        inventory.ItemValue(it),
			Movimentacao: it.InStock,
		}
		r.Linhas = append(r.Linhas, row)
		r.Totais.TotalEntradas += row.Entrada
		r.Totais.TotalSaidas += row.Saida
		r.Totais.TotalSaldo += row.Saldo
		r.Totais.ValorTotal = r.Totais.ValorTotal.Add(row.Valor)
	}
	return r
}

// FileName relatorio-estoque-AAAA-MM-DD_HH-MM-SS.<ext>
func FileName(at time.Time, ext string) string {
	return fmt.Sprintf("relatorio-estoque-%s.%s", at.Format("2006-01-02_15-04-05"), ext)
}
