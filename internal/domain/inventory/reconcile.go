package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

// Counters agrupa los contadores acumulados de un item y su bandera de movimentación.
type Counters struct {
	Inbound  int
	Outbound int
	InStock  bool
}

// CountersOf extrae los contadores actuales del item.
func CountersOf(it *entity.Item) Counters {
	return Counters{Inbound: it.Inbound, Outbound: it.Outbound, InStock: it.InStock}
}

// Apply copia los contadores sobre el item.
func (c Counters) Apply(it *entity.Item) {
	it.Inbound = c.Inbound
	it.Outbound = c.Outbound
	it.InStock = c.InStock
}

// Reconcile ajusta los contadores de entrada/salida a un cambio de cantidad (servicio de dominio puro).
// Si sube la cantidad suma la diferencia a Inbound; si baja, a Outbound; si es igual no toca los contadores.
// InStock siempre queda en next > 0. El caller debe haber aplicado ClampQuantity a next.
func Reconcile(prev, next int, c Counters) Counters {
	switch {
	case next > prev:
		c.Inbound += next - prev
	case next < prev:
		c.Outbound += prev - next
	}
	c.InStock = InStock(next)
	return c
}

// ClampQuantity nunca deja la cantidad por debajo de cero: una reducción excesiva se recorta, no se rechaza.
func ClampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}

// NextQuantity calcula la cantidad resultante de un movimiento, ya recortada.
func NextQuantity(current int, tipo string, qtd int) int {
	if tipo == entity.MovementTypeOut {
		return ClampQuantity(current - qtd)
	}
	return ClampQuantity(current + qtd)
}

// InStock es la derivación de movimentacao.
func InStock(quantity int) bool { return quantity > 0 }

// Value = preco × quantidade.
func Value(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// ItemValue aplica Value sobre un item.
func ItemValue(it *entity.Item) decimal.Decimal {
	return Value(it.Price, it.Quantity)
}

// Balance es el saldo reportado: la cantidad actual si el item sigue en movimentação, 0 en otro caso.
func Balance(it *entity.Item) int {
	if !it.InStock {
		return 0
	}
	return it.Quantity
}
