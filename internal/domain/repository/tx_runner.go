package repository

import "context"

// TxRunner ejecuta una función dentro de una unidad de trabajo del proveedor, pasando repositorios
// atados a ella. Si fn devuelve error no queda nada persistido: así el item y el ledger no divergen.
type TxRunner interface {
	Run(ctx context.Context, fn func(items ItemRepository, movements MovementRepository) error) error
}
