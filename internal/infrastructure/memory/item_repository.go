package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/sipac-estoque/internal/domain"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementa repository.ItemRepository en memoria.
type ItemRepo struct {
	db *DB
	tx *state
}

// List devuelve copias de los items en orden de inserción.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: listar items: %w", domain.ErrPersistence, err)
	}
	var out []*entity.Item
	_ = r.db.view(r.tx, func(s *state) error {
		out = make([]*entity.Item, 0, len(s.items))
		for _, it := range s.items {
			out = append(out, it.Clone())
		}
		return nil
	})
	return out, nil
}

// Create asigna un UUID como ID. Tag duplicado -> domain.ErrDuplicate.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: crear item: %w", domain.ErrPersistence, err)
	}
	var saved *entity.Item
	err := r.db.view(r.tx, func(s *state) error {
		for _, it := range s.items {
			if it.Tag == item.Tag {
				return fmt.Errorf("%w: tag %s", domain.ErrDuplicate, item.Tag)
			}
		}
		saved = item.Clone()
		saved.ID = uuid.New().String()
		if saved.CreatedAt.IsZero() {
			saved.CreatedAt = r.db.nowFn()
		}
		if saved.UpdatedAt.IsZero() {
			saved.UpdatedAt = saved.CreatedAt
		}
		s.items = append(s.items, saved)
		saved = saved.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetForUpdate lee el item por ID. Dentro de TxRunner lee el estado de la transacción, que ya
// tiene el lock de la base tomado.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.find(ctx, "item "+id, func(it *entity.Item) bool { return it.ID == id })
}

// GetByTagForUpdate lee el item por tag.
func (r *ItemRepo) GetByTagForUpdate(ctx context.Context, tag string) (*entity.Item, error) {
	return r.find(ctx, "tag "+tag, func(it *entity.Item) bool { return it.Tag == tag })
}

func (r *ItemRepo) find(ctx context.Context, what string, match func(*entity.Item) bool) (*entity.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: leer %s: %w", domain.ErrPersistence, what, err)
	}
	var found *entity.Item
	_ = r.db.view(r.tx, func(s *state) error {
		for _, it := range s.items {
			if match(it) {
				found = it.Clone()
				return nil
			}
		}
		return nil
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	return found, nil
}

// Replace sobrescribe el registro completo conservando el ID y la fecha de creación.
func (r *ItemRepo) Replace(ctx context.Context, id string, item *entity.Item) (*entity.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: reemplazar item: %w", domain.ErrPersistence, err)
	}
	var saved *entity.Item
	err := r.db.view(r.tx, func(s *state) error {
		for i, it := range s.items {
			if it.ID != id {
				continue
			}
			next := item.Clone()
			next.ID = id
			next.CreatedAt = it.CreatedAt
			s.items[i] = next
			saved = next.Clone()
			return nil
		}
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Remove elimina el item. Sus movimientos permanecen en el ledger.
func (r *ItemRepo) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: eliminar item: %w", domain.ErrPersistence, err)
	}
	return r.db.view(r.tx, func(s *state) error {
		for i, it := range s.items {
			if it.ID == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	})
}
