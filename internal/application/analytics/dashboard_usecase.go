// Package analytics contiene el motor de agregación (funciones puras sobre items, ledger y filtro)
// y los casos de uso que alimentan el dashboard y la auditoría del ledger.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

// ItemSource entrega el snapshot actual de items (inventory.Store lo implementa).
type ItemSource interface {
	Snapshot() []*entity.Item
}

// DashboardUseCase arma el dashboard a partir del Store y del ledger.
type DashboardUseCase struct {
	items     ItemSource
	movements repository.MovementRepository
	defaults  FilterDefaults
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(items ItemSource, movements repository.MovementRepository, defaults FilterDefaults) *DashboardUseCase {
	return &DashboardUseCase{items: items, movements: movements, defaults: defaults}
}

// NewFilter devuelve un FilterState en el estado por defecto configurado.
func (uc *DashboardUseCase) NewFilter() *FilterState {
	return NewFilterState(uc.defaults)
}

// GetDashboard calcula todas las vistas para el filtro dado.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, f *FilterState) (*dto.DashboardDTO, error) {
	var ledger []*entity.Movement
	if len(f.Years) > 0 {
		var err error
		ledger, err = uc.movements.List(ctx, repository.MovementFilter{Years: f.Years})
		if err != nil {
			return nil, fmt.Errorf("dashboard: ledger: %w", err)
		}
	}
	out := BuildDashboard(uc.items.Snapshot(), ledger, f)
	return &out, nil
}

// Audit compara el ledger completo con los contadores de los items.
func (uc *DashboardUseCase) Audit(ctx context.Context) (*dto.AuditDTO, error) {
	ledger, err := uc.movements.List(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, fmt.Errorf("auditoría: ledger: %w", err)
	}
	out := AuditLedger(uc.items.Snapshot(), ledger)
	return &out, nil
}
