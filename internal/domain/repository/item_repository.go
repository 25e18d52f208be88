package repository

import (
	"context"

	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

// ItemRepository define el puerto hacia el proveedor de persistencia de items (DIP).
// No hay actualización parcial: Replace sobrescribe el registro completo y el caller
// ya debe haber reconciliado los contadores contra el estado previo.
// Los fallos del proveedor se devuelven envueltos en domain.ErrPersistence.
type ItemRepository interface {
	// List devuelve los items en el orden que entregue el proveedor.
	List(ctx context.Context) ([]*entity.Item, error)
	// Create persiste un item nuevo; el proveedor asigna el ID.
	Create(ctx context.Context, item *entity.Item) (*entity.Item, error)
	// GetForUpdate lee el estado vigente del item. Dentro de TxRunner la fila queda bloqueada
	// (o vigilada, según el proveedor) hasta el commit. domain.ErrNotFound si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// GetByTagForUpdate igual que GetForUpdate, buscando por tag.
	GetByTagForUpdate(ctx context.Context, tag string) (*entity.Item, error)
	// Replace sobrescribe el item con el ID dado y devuelve el registro guardado.
	Replace(ctx context.Context, id string, item *entity.Item) (*entity.Item, error)
	// Remove elimina el item; domain.ErrNotFound si no existe.
	Remove(ctx context.Context, id string) error
}
