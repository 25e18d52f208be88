package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa una pieza del inventario de la tienda, identificada por su Tag.
// ID es el identificador asignado por el proveedor de persistencia y nunca se usa como clave de negocio.
type Item struct {
	ID        string
	Tag       string // único e inmutable tras la creación
	Name      string
	Category  string
	Price     decimal.Decimal // precio unitario, >= 0
	Quantity  int             // unidades en la arara, >= 0
	Location  string          // arara (etiqueta libre de ubicación física)
	Inbound   int             // entradas acumuladas desde la creación
	Outbound  int             // salidas acumuladas desde la creación
	InStock   bool            // Quantity > 0, persistido para consultas
	CreatedAt time.Time       // instante de la entrada de apertura; cero en registros importados
	UpdatedAt time.Time
}

// Clone devuelve una copia independiente del item.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	c := *it
	return &c
}
