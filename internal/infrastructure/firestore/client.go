// Package firestore implementa los puertos de persistencia sobre Cloud Firestore:
// colección de items (por defecto "itens") y ledger de movimientos ("movimentos").
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jhoicas/sipac-estoque/internal/domain"
	"github.com/jhoicas/sipac-estoque/pkg/config"
)

// NewClient inicializa el cliente. Sin CredentialsFile usa las Application Default Credentials
// (o FIRESTORE_EMULATOR_HOST si está definido).
func NewClient(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: crear cliente: %w", err)
	}
	return client, nil
}

// Collections nombres de las colecciones usadas por los repos.
type Collections struct {
	Items     string
	Movements string
}

// CollectionsFrom toma los nombres de la configuración.
func CollectionsFrom(cfg config.FirestoreConfig) Collections {
	return Collections{Items: cfg.ItemsCollection, Movements: cfg.MovementsCollection}
}

// mapErr traduce los códigos gRPC del proveedor a los errores del dominio.
func mapErr(op, id string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, op, id)
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s %s", domain.ErrDuplicate, op, id)
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
	}
}
