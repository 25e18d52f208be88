package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipac-estoque/internal/application/inventory"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

func withID(id string, it *entity.Item) *entity.Item {
	it.ID = id
	return it
}

func TestStore_LoadSinceConservaEscriturasPosteriores(t *testing.T) {
	s := inventory.NewStore()
	s.Load([]*entity.Item{withID("a", item("001", 10)), withID("b", item("002", 5)), withID("c", item("003", 1))})

	since := s.Version()
	// Escrituras confirmadas mientras el listado estaba en curso.
	s.Put(withID("a", item("001", 9)))
	s.Delete("b")
	s.Put(withID("d", item("004", 2)))

	// El listado se leyó antes de esas escrituras.
	s.LoadSince([]*entity.Item{withID("a", item("001", 10)), withID("b", item("002", 5)), withID("c", item("003", 4))}, since)

	a, ok := s.ByID("a")
	require.True(t, ok)
	assert.Equal(t, 9, a.Quantity)
	_, ok = s.ByID("b")
	assert.False(t, ok, "un borrado local no reaparece")
	c, ok := s.ByID("c")
	require.True(t, ok)
	assert.Equal(t, 4, c.Quantity, "sin escritura local manda el proveedor")
	_, ok = s.ByID("d")
	assert.True(t, ok, "un alta local no desaparece")
	assert.Equal(t, 3, s.Len())

	// Una lectura iniciada después de todo reemplaza el contenido.
	s.LoadSince([]*entity.Item{withID("a", item("001", 7))}, s.Version())
	assert.Equal(t, 1, s.Len())
	a, _ = s.ByID("a")
	assert.Equal(t, 7, a.Quantity)
}
