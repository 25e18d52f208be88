package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"

	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner envuelve Client.RunTransaction. Firestore puede reintentar fn ante contención,
// por eso fn no debe tener efectos fuera de los repos que recibe.
type TxRunner struct {
	client *firestore.Client
	cols   Collections
}

// NewTxRunner construye el runner.
func NewTxRunner(client *firestore.Client, cols Collections) *TxRunner {
	return &TxRunner{client: client, cols: cols}
}

// Run ejecuta fn dentro de una transacción de Firestore.
func (t *TxRunner) Run(ctx context.Context, fn func(items repository.ItemRepository, movements repository.MovementRepository) error) error {
	var fnErr error
	err := t.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		items := &ItemRepo{client: t.client, collection: t.cols.Items, tx: tx}
		movements := &MovementRepo{client: t.client, collection: t.cols.Movements, tx: tx}
		fnErr = fn(items, movements)
		return fnErr
	})
	if err == nil {
		return nil
	}
	// Errores del dominio salen tal cual; el resto es fallo del proveedor.
	if fnErr != nil && errors.Is(err, fnErr) {
		return fnErr
	}
	return mapErr("transacción", "", err)
}
