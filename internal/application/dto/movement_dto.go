package dto

import (
	"time"

	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

// MovementRequest cuerpo de POST /api/movimentos (botones +/- y feed IoT).
type MovementRequest struct {
	Tag  string `json:"tag" validate:"required"`
	Tipo string `json:"tipo" validate:"required,oneof=entrada saida"`
	Qtd  int    `json:"qtd" validate:"min=1"`
}

// MovementResponse entrada del ledger.
type MovementResponse struct {
	ID        string    `json:"id"`
	Tag       string    `json:"tag"`
	Timestamp time.Time `json:"timestamp"`
	Tipo      string    `json:"tipo"`
	Qtd       int       `json:"qtd"`
}

// MovementListResponse ledger filtrado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// NewMovementResponses mapea movimientos del ledger.
func NewMovementResponses(ms []*entity.Movement) MovementListResponse {
	out := make([]MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, MovementResponse{ID: m.ID, Tag: m.ItemTag, Timestamp: m.Timestamp, Tipo: m.Type, Qtd: m.Quantity})
	}
	return MovementListResponse{Items: out, Total: len(out)}
}
