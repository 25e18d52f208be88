package entity

import "time"

// Tipos de movimiento de estoque.
const (
	MovementTypeIn  = "entrada"
	MovementTypeOut = "saida"
)

// Movement es una entrada del ledger de movimientos. Solo se agrega, nunca se modifica ni se borra.
// ItemTag es una referencia débil: el item puede eliminarse y sus movimientos históricos permanecen.
type Movement struct {
	ID        string
	ItemTag   string
	Timestamp time.Time
	Type      string // entrada | saida
	Quantity  int    // unidades movidas, > 0
}

// ValidMovementType indica si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}
