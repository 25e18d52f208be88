package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sipac-estoque/internal/domain"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, tag, nome, categoria, preco, quantidade, arara, entrada, saida, movimentacao, atualizado_em, criado_em`

// ItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// List devuelve los items en orden de creación.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM itens ORDER BY criado_em, id`)
	if err != nil {
		return nil, persistErr("listar itens", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, persistErr("scan item", err)
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("listar itens", err)
	}
	return list, nil
}

// GetForUpdate lee el item con SELECT ... FOR UPDATE: dentro de TxRunner la fila queda
// bloqueada hasta el commit o rollback.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	row := r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM itens WHERE id = $1 FOR UPDATE`, id)
	return r.scanOne(row, "item "+id)
}

// GetByTagForUpdate igual que GetForUpdate, por tag.
func (r *ItemRepo) GetByTagForUpdate(ctx context.Context, tag string) (*entity.Item, error) {
	row := r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM itens WHERE tag = $1 FOR UPDATE`, tag)
	return r.scanOne(row, "tag "+tag)
}

func (r *ItemRepo) scanOne(row pgx.Row, what string) (*entity.Item, error) {
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, what)
		}
		return nil, persistErr("leer "+what, err)
	}
	return it, nil
}

// Create inserta el item con un UUID nuevo. Tag repetido -> domain.ErrDuplicate.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := item.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	query := `
		INSERT INTO itens (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + itemColumns
	row := r.q.QueryRow(ctx, query,
		uuid.New().String(), item.Tag, item.Name, item.Category, item.Price, item.Quantity,
		item.Location, item.Inbound, item.Outbound, item.InStock, updatedAt, createdAt,
	)
	saved, err := scanItem(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: tag %s", domain.ErrDuplicate, item.Tag)
		}
		return nil, persistErr("crear item", err)
	}
	return saved, nil
}

// Replace sobrescribe todas las columnas del item con ese ID salvo criado_em.
func (r *ItemRepo) Replace(ctx context.Context, id string, item *entity.Item) (*entity.Item, error) {
	query := `
		UPDATE itens SET tag = $2, nome = $3, categoria = $4, preco = $5, quantidade = $6,
			arara = $7, entrada = $8, saida = $9, movimentacao = $10, atualizado_em = $11
		WHERE id = $1
		RETURNING ` + itemColumns
	row := r.q.QueryRow(ctx, query,
		id, item.Tag, item.Name, item.Category, item.Price, item.Quantity,
		item.Location, item.Inbound, item.Outbound, item.InStock, item.UpdatedAt,
	)
	saved, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: tag %s", domain.ErrDuplicate, item.Tag)
		}
		return nil, persistErr("reemplazar item", err)
	}
	return saved, nil
}

// Remove borra el item; los movimientos quedan en el ledger.
func (r *ItemRepo) Remove(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM itens WHERE id = $1`, id)
	if err != nil {
		return persistErr("eliminar item", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	if err := row.Scan(&it.ID, &it.Tag, &it.Name, &it.Category, &it.Price, &it.Quantity,
		&it.Location, &it.Inbound, &it.Outbound, &it.InStock, &it.UpdatedAt, &it.CreatedAt); err != nil {
		return nil, err
	}
	it.UpdatedAt = it.UpdatedAt.UTC()
	it.CreatedAt = it.CreatedAt.UTC()
	return &it, nil
}
