package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

// ItemRequest entrada para crear o reemplazar un item (formulario completo).
type ItemRequest struct {
	Tag        string          `json:"tag" validate:"required"`
	Nome       string          `json:"nome" validate:"required"`
	Categoria  string          `json:"categoria"`
	Preco      decimal.Decimal `json:"preco"`
	Quantidade int             `json:"quantidade"`
	Arara      string          `json:"arara"`
}

// ItemResponse salida de un item con sus contadores.
type ItemResponse struct {
	ID           string          `json:"id"`
	Tag          string          `json:"tag"`
	Nome         string          `json:"nome"`
	Categoria    string          `json:"categoria"`
	Preco        decimal.Decimal `json:"preco"`
	Quantidade   int             `json:"quantidade"`
	Arara        string          `json:"arara"`
	Entrada      int             `json:"entrada"`
	Saida        int             `json:"saida"`
	Movimentacao bool            `json:"movimentacao"`
	AtualizadoEm time.Time       `json:"atualizadoEm"`
}

// SaleRequest cuerpo de PUT /api/itens/:id/saida.
type SaleRequest struct {
	Qtd int `json:"qtd"`
}

// SaleResponse respuesta de una venta registrada.
type SaleResponse struct {
	Success bool `json:"success"`
	NovaQtd int  `json:"novaQtd"`
}

// SuccessResponse respuesta genérica {success:true}.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// NewItemResponse mapea la entidad al DTO de salida.
func NewItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:           it.ID,
		Tag:          it.Tag,
		Nome:         it.Name,
		Categoria:    it.Category,
		Preco:        it.Price,
		Quantidade:   it.Quantity,
		Arara:        it.Location,
		Entrada:      it.Inbound,
		Saida:        it.Outbound,
		Movimentacao: it.InStock,
		AtualizadoEm: it.UpdatedAt,
	}
}

// NewItemResponses mapea una lista de entidades.
func NewItemResponses(items []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewItemResponse(it))
	}
	return out
}
