// Package moeda formatea valores monetarios en reais para los exportadores.
package moeda

import (
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// BRL código ISO del real.
const BRL = "BRL"

var registerOnce sync.Once

// currency registra el BRL con el formato pt-BR: "R$ 1.234,56".
func currency() *money.Currency {
	registerOnce.Do(func() {
		money.AddCurrency(BRL, "R$", "$ 1", ",", ".", 2)
	})
	return money.GetCurrency(BRL)
}

// Format devuelve el valor formateado, redondeado a centavos.
func Format(v decimal.Decimal) string {
	cur := currency()
	cents := v.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(cents.IntPart())
}
