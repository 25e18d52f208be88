package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

// ListMovements devuelve el ledger en orden cronológico, filtrado por años y/o tag.
func (uc *MutationUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	ms, err := uc.movements.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	out := dto.NewMovementResponses(ms)
	return &out, nil
}
