package repository

import (
	"context"

	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

// MovementFilter restringe la lectura del ledger. Years vacío = todos los años.
type MovementFilter struct {
	Years   []int
	ItemTag string
}

// MovementRepository define el puerto del ledger de movimientos (append-only).
type MovementRepository interface {
	Append(ctx context.Context, movement *entity.Movement) error
	// List devuelve los movimientos en orden cronológico.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}
