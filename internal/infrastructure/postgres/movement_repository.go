package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append inserta el movimiento; completa ID y Timestamp si vienen vacíos.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO movimentos (id, tag, ts, tipo, qtd) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.ItemTag, m.Timestamp, m.Type, m.Quantity,
	)
	if err != nil {
		return persistErr("agregar movimiento", err)
	}
	return nil
}

// List devuelve los movimientos en orden cronológico (ts, orden de inserción).
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query, args := movementQuery(f)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistErr("listar movimientos", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemTag, &m.Timestamp, &m.Type, &m.Quantity); err != nil {
			return nil, persistErr("scan movimiento", err)
		}
		m.Timestamp = m.Timestamp.UTC()
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("listar movimientos", err)
	}
	return list, nil
}

// movementQuery arma el SELECT con los filtros presentes. Los años se evalúan en UTC.
func movementQuery(f repository.MovementFilter) (string, []any) {
	query := `SELECT id, tag, ts, tipo, qtd FROM movimentos WHERE 1=1`
	var args []any
	pos := 1
	if len(f.Years) > 0 {
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM ts AT TIME ZONE 'UTC')::int = ANY($%d)", pos)
		args = append(args, toInt32s(f.Years))
		pos++
	}
	if f.ItemTag != "" {
		query += fmt.Sprintf(" AND tag = $%d", pos)
		args = append(args, f.ItemTag)
	}
	query += " ORDER BY ts, seq"
	return query, args
}
