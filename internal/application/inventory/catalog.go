package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/domain"
)

// DemoCatalog las siete piezas de demostración de la tienda.
func DemoCatalog() []dto.ItemRequest {
	p := decimal.RequireFromString
	return []dto.ItemRequest{
		{Tag: "001", Nome: "Camiseta Tech Dry", Categoria: "Camisetas", Preco: p("89.90"), Quantidade: 22, Arara: "A1"},
		{Tag: "002", Nome: "Calça Cargo Nylon", Categoria: "Calças", Preco: p("199.90"), Quantidade: 12, Arara: "A1"},
		{Tag: "003", Nome: "Jaqueta Corta-Vento", Categoria: "Jaquetas", Preco: p("349.90"), Quantidade: 7, Arara: "A2"},
		{Tag: "004", Nome: "Vestido Midi", Categoria: "Vestidos", Preco: p("229.90"), Quantidade: 14, Arara: "B1"},
		{Tag: "005", Nome: "Boné Logo", Categoria: "Acessórios", Preco: p("79.90"), Quantidade: 4, Arara: "B2"},
		{Tag: "006", Nome: "Camiseta Oversize", Categoria: "Camisetas", Preco: p("99.90"), Quantidade: 28, Arara: "A1"},
		{Tag: "007", Nome: "Cachecol Tricot", Categoria: "Acessórios", Preco: p("59.90"), Quantidade: 9, Arara: "B2"},
	}
}

// Seed crea los items que aún no existen (por tag) y devuelve cuántos creó.
// Los tags que ya existen en el proveedor se saltan.
func (uc *MutationUseCase) Seed(ctx context.Context, reqs []dto.ItemRequest) (int, error) {
	if err := uc.Refresh(ctx); err != nil {
		return 0, err
	}
	created := 0
	for _, in := range reqs {
		_, err := uc.CreateItem(ctx, in)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			continue
		default:
			return created, fmt.Errorf("seed %s: %w", in.Tag, err)
		}
	}
	return created, nil
}
