package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/sipac-estoque/internal/domain"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementa el ledger append-only en memoria.
type MovementRepo struct {
	db *DB
	tx *state
}

// Append agrega el movimiento. Asigna ID y timestamp si vienen vacíos.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: registrar movimiento: %w", domain.ErrPersistence, err)
	}
	mv := *m
	if mv.ID == "" {
		mv.ID = uuid.New().String()
	}
	if mv.Timestamp.IsZero() {
		mv.Timestamp = r.db.nowFn()
	}
	return r.db.view(r.tx, func(s *state) error {
		s.movements = append(s.movements, &mv)
		return nil
	})
}

// List devuelve copias en orden cronológico (estable para timestamps iguales).
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: listar movimientos: %w", domain.ErrPersistence, err)
	}
	var out []*entity.Movement
	_ = r.db.view(r.tx, func(s *state) error {
		for _, m := range s.movements {
			if filter.ItemTag != "" && m.ItemTag != filter.ItemTag {
				continue
			}
			if len(filter.Years) > 0 && !slices.Contains(filter.Years, m.Timestamp.Year()) {
				continue
			}
			mv := *m
			out = append(out, &mv)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
