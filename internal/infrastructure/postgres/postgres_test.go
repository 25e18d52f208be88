package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sipac-estoque/internal/domain"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

func TestMovementQuery(t *testing.T) {
	q, args := movementQuery(repository.MovementFilter{})
	assert.Equal(t, "SELECT id, tag, ts, tipo, qtd FROM movimentos WHERE 1=1 ORDER BY ts, seq", q)
	assert.Empty(t, args)

	q, args = movementQuery(repository.MovementFilter{Years: []int{2023, 2024}, ItemTag: "001"})
	assert.Contains(t, q, "= ANY($1)")
	assert.Contains(t, q, "tag = $2")
	assert.Equal(t, []any{[]int32{2023, 2024}, "001"}, args)

	_, args = movementQuery(repository.MovementFilter{ItemTag: "002"})
	assert.Equal(t, []any{"002"}, args)
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", migrateURL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", migrateURL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://ya", migrateURL("pgx5://ya"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
}

func TestPersistErr(t *testing.T) {
	cause := errors.New("timeout")
	err := persistErr("listar itens", cause)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, cause)
}

func TestMigrationsEmbebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.Len(t, entries, 4)
}
