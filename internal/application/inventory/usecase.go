package inventory

import (
	"context"
	"fmt"
	"errors"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/domain"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/domain/inventory"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
	"github.com/jhoicas/sipac-estoque/pkg/logger"
)

// MutationUseCase es el único camino de escritura sobre los items: formulario, botones +/-,
// venta por ID y el feed simulado pasan todos por aquí.
//
// Cada mutación toma el lock del tag y, dentro del TxRunner, lee el estado vigente del proveedor,
// reconcilia los contadores y ejecuta Replace + Append. El Store es solo la caché de lectura y se
// actualiza tras el commit.
type MutationUseCase struct {
	txRunner  repository.TxRunner
	items     repository.ItemRepository
	movements repository.MovementRepository
	store     *Store
	locks     *keyedMutex
	refreshMu sync.Mutex
	log       *logger.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewMutationUseCase construye el caso de uso.
func NewMutationUseCase(
	txRunner repository.TxRunner,
	items repository.ItemRepository,
	movements repository.MovementRepository,
	store *Store,
	log *logger.Logger,
) *MutationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MutationUseCase{
		txRunner:  txRunner,
		items:     items,
		movements: movements,
		store:     store,
		locks:     newKeyedMutex(),
		log:       log.Component("mutation"),
		tracer:    otel.Tracer("sipac/inventory"),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj usado para UpdatedAt y los timestamps del ledger.
func (uc *MutationUseCase) WithClock(now func() time.Time) *MutationUseCase {
	uc.now = now
	return uc
}

// Store expone el store para las vistas de lectura.
func (uc *MutationUseCase) Store() *Store { return uc.store }

// Refresh recarga el Store desde el proveedor. Las escrituras confirmadas mientras el listado
// estaba en curso no se pisan.
func (uc *MutationUseCase) Refresh(ctx context.Context) error {
	uc.refreshMu.Lock()
	defer uc.refreshMu.Unlock()

	since := uc.store.Version()
	items, err := uc.items.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	uc.store.LoadSince(items, since)
	return nil
}

// ListItems recarga desde el proveedor y devuelve los items, opcionalmente de una sola categoría.
func (uc *MutationUseCase) ListItems(ctx context.Context, categoria string) ([]dto.ItemResponse, error) {
	if err := uc.Refresh(ctx); err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, uc.store.Len())
	for _, it := range uc.store.Snapshot() {
		if categoria != "" && it.Category != categoria {
			continue
		}
		out = append(out, dto.NewItemResponse(it))
	}
	return out, nil
}

// ApplyDelta aplica un movimiento de tipo entrada o saida sobre el item con ese tag.
//
//   - tag desconocido: domain.ErrNotFound
//   - saida con quantidade <= 0: domain.ErrInvalidOperation, sin escribir en el proveedor ni en el ledger
//   - tipo desconocido o qtd <= 0: domain.ErrInvalidInput
//
// La cantidad resultante se recorta a 0. El movimiento registra las unidades efectivamente movidas.
func (uc *MutationUseCase) ApplyDelta(ctx context.Context, tag, tipo string, qtd int) (*dto.ItemResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.apply_delta",
		trace.WithAttributes(
			attribute.String("item.tag", tag),
			attribute.String("movement.tipo", tipo),
			attribute.Int("movement.qtd", qtd),
		),
	)
	defer span.End()

	out, err := uc.applyDelta(ctx, tag, tipo, qtd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("item.quantidade", out.Quantidade))
	return out, nil
}

func (uc *MutationUseCase) applyDelta(ctx context.Context, tag, tipo string, qtd int) (*dto.ItemResponse, error) {
	if !entity.ValidMovementType(tipo) {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, tipo)
	}
	if qtd <= 0 {
		return nil, fmt.Errorf("%w: qtd debe ser positiva", domain.ErrInvalidInput)
	}

	unlock := uc.locks.Lock(tag)
	defer unlock()

	var saved *entity.Item
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		cur, err := items.GetByTagForUpdate(ctx, tag)
		if err != nil {
			return err
		}
		if tipo == entity.MovementTypeOut && cur.Quantity <= 0 {
			return fmt.Errorf("%w: saida sin estoque (tag %s)", domain.ErrInvalidOperation, tag)
		}

		now := uc.now()
		next := cur.Clone()
		next.Quantity = inventory.NextQuantity(cur.Quantity, tipo, qtd)
		inventory.Reconcile(cur.Quantity, next.Quantity, inventory.CountersOf(cur)).Apply(next)
		next.UpdatedAt = now

		saved, err = write(ctx, items, movements, cur.ID, next, &entity.Movement{
			ItemTag:   tag,
			Timestamp: now,
			Type:      tipo,
			Quantity:  abs(next.Quantity - cur.Quantity),
		})
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.evictTag(tag)
		}
		uc.log.Error().Err(err).Str("tag", tag).Str("tipo", tipo).Int("qtd", qtd).Msg("movimiento no aplicado")
		return nil, err
	}
	uc.store.Put(saved)

	uc.log.Info().
		Str("tag", tag).
		Str("tipo", tipo).
		Int("qtd", qtd).
		Int("novaQtd", saved.Quantity).
		Msg("movimiento aplicado")
	resp := dto.NewItemResponse(saved)
	return &resp, nil
}

// RegisterSale registra una venta sobre el item con ese ID (PUT /api/itens/:id/saida).
func (uc *MutationUseCase) RegisterSale(ctx context.Context, id string, qtd int) (*dto.SaleResponse, error) {
	tag, err := uc.tagOf(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := uc.ApplyDelta(ctx, tag, entity.MovementTypeOut, qtd)
	if err != nil {
		return nil, err
	}
	return &dto.SaleResponse{Success: true, NovaQtd: out.Quantidade}, nil
}

// CreateItem crea un item. La cantidad de apertura cuenta como entrada y queda en el ledger.
func (uc *MutationUseCase) CreateItem(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	in.Tag = strings.TrimSpace(in.Tag)
	if err := validateItemRequest(in); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(in.Tag)
	defer unlock()

	now := uc.now()
	item := &entity.Item{
		Tag:       in.Tag,
		Name:      strings.TrimSpace(in.Nome),
		Category:  strings.TrimSpace(in.Categoria),
		Price:     in.Preco,
		Quantity:  in.Quantidade,
		Location:  strings.TrimSpace(in.Arara),
		CreatedAt: now,
		UpdatedAt: now,
	}
	inventory.Reconcile(0, item.Quantity, inventory.Counters{}).Apply(item)

	var saved *entity.Item
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		var err error
		saved, err = items.Create(ctx, item)
		if err != nil {
			return err
		}
		if item.Quantity == 0 {
			return nil
		}
		return movements.Append(ctx, &entity.Movement{
			ItemTag:   item.Tag,
			Timestamp: now,
			Type:      entity.MovementTypeIn,
			Quantity:  item.Quantity,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("crear item: %w", err)
	}
	uc.store.Put(saved)

	uc.log.Info().Str("tag", saved.Tag).Int("quantidade", saved.Quantity).Msg("item creado")
	resp := dto.NewItemResponse(saved)
	return &resp, nil
}

// UpdateItem reemplaza el item completo (formulario). El tag es inmutable; un cambio de cantidad
// pasa por la misma reconciliación que un movimiento y se registra en el ledger.
func (uc *MutationUseCase) UpdateItem(ctx context.Context, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	tag, err := uc.tagOf(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Tag = strings.TrimSpace(in.Tag)
	if in.Tag == "" {
		in.Tag = tag
	}
	if in.Tag != tag {
		return nil, fmt.Errorf("%w: el tag no se puede modificar", domain.ErrInvalidInput)
	}
	if err := validateItemRequest(in); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(tag)
	defer unlock()

	var saved *entity.Item
	err = uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		cur, err := items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		now := uc.now()
		next := cur.Clone()
		next.Name = strings.TrimSpace(in.Nome)
		next.Category = strings.TrimSpace(in.Categoria)
		next.Price = in.Preco
		next.Location = strings.TrimSpace(in.Arara)
		next.Quantity = inventory.ClampQuantity(in.Quantidade)
		inventory.Reconcile(cur.Quantity, next.Quantity, inventory.CountersOf(cur)).Apply(next)
		next.UpdatedAt = now

		var mov *entity.Movement
		if delta := next.Quantity - cur.Quantity; delta != 0 {
			tipo := entity.MovementTypeIn
			if delta < 0 {
				tipo = entity.MovementTypeOut
			}
			mov = &entity.Movement{ItemTag: cur.Tag, Timestamp: now, Type: tipo, Quantity: abs(delta)}
		}
		saved, err = write(ctx, items, movements, id, next, mov)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.store.Delete(id)
		}
		return nil, fmt.Errorf("actualizar item: %w", err)
	}
	uc.store.Put(saved)

	uc.log.Info().Str("tag", saved.Tag).Int("novaQtd", saved.Quantity).Msg("item actualizado")
	resp := dto.NewItemResponse(saved)
	return &resp, nil
}

// DeleteItem elimina el item. Sus movimientos históricos permanecen en el ledger.
func (uc *MutationUseCase) DeleteItem(ctx context.Context, id string) error {
	if tag, err := uc.tagOf(ctx, id); err == nil {
		unlock := uc.locks.Lock(tag)
		defer unlock()
	}
	if err := uc.items.Remove(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.store.Delete(id)
		}
		return fmt.Errorf("eliminar item: %w", err)
	}
	uc.store.Delete(id)
	uc.log.Info().Str("id", id).Msg("item eliminado")
	return nil
}

// tagOf resuelve el tag de un ID: primero la caché, después el proveedor.
// El tag es inmutable, así que un valor de la caché sirve para elegir el lock.
func (uc *MutationUseCase) tagOf(ctx context.Context, id string) (string, error) {
	if cur, ok := uc.store.ByID(id); ok {
		return cur.Tag, nil
	}
	cur, err := uc.items.GetForUpdate(ctx, id)
	if err != nil {
		return "", err
	}
	return cur.Tag, nil
}

func (uc *MutationUseCase) evictTag(tag string) {
	if cur, ok := uc.store.ByTag(tag); ok {
		uc.store.Delete(cur.ID)
	}
}

// write ejecuta Replace y, si hay movimiento, Append con los repos de la transacción en curso.
func write(
	ctx context.Context,
	items repository.ItemRepository,
	movements repository.MovementRepository,
	id string,
	next *entity.Item,
	mov *entity.Movement,
) (*entity.Item, error) {
	saved, err := items.Replace(ctx, id, next)
	if err != nil {
		return nil, err
	}
	if mov == nil || mov.Quantity == 0 {
		return saved, nil
	}
	if err := movements.Append(ctx, mov); err != nil {
		return nil, err
	}
	return saved, nil
}

func validateItemRequest(in dto.ItemRequest) error {
	switch {
	case strings.TrimSpace(in.Tag) == "":
		return fmt.Errorf("%w: tag es obligatorio", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Nome) == "":
		return fmt.Errorf("%w: nome es obligatorio", domain.ErrInvalidInput)
	case in.Preco.IsNegative():
		return fmt.Errorf("%w: preco no puede ser negativo", domain.ErrInvalidInput)
	case in.Quantidade < 0:
		return fmt.Errorf("%w: quantidade no puede ser negativa", domain.ErrInvalidInput)
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
