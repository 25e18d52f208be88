package firestore

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/jhoicas/sipac-estoque/internal/domain"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger de movimientos en Firestore. Los documentos solo se crean.
type MovementRepo struct {
	client     *firestore.Client
	collection string
	tx         *firestore.Transaction
}

// NewMovementRepository construye el repo fuera de transacción.
func NewMovementRepository(client *firestore.Client, collection string) *MovementRepo {
	return &MovementRepo{client: client, collection: collection}
}

func (r *MovementRepo) col() *firestore.CollectionRef {
	return r.client.Collection(r.collection)
}

// Append crea el documento del movimiento con ID de Firestore.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	ref := r.col().NewDoc()
	var err error
	if r.tx != nil {
		err = r.tx.Create(ref, toMovementDoc(m))
	} else {
		_, err = ref.Create(ctx, toMovementDoc(m))
	}
	if err != nil {
		return mapErr("agregar movimiento", ref.ID, err)
	}
	m.ID = ref.ID
	return nil
}

// List consulta por tag o por rango de años (un solo campo por consulta, sin índices compuestos)
// y completa el filtro en memoria. El resultado sale en orden cronológico.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var q firestore.Query = r.col().Query
	switch {
	case f.ItemTag != "":
		q = q.Where("tag", "==", f.ItemTag)
	case len(f.Years) > 0:
		from, to := yearBounds(f.Years)
		q = q.Where("timestamp", ">=", from).Where("timestamp", "<", to)
	}

	var it *firestore.DocumentIterator
	if r.tx != nil {
		it = r.tx.Documents(q)
	} else {
		it = q.Documents(ctx)
	}
	defer it.Stop()

	var list []*entity.Movement
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, mapErr("listar movimientos", "", err)
		}
		var d movementDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("%w: decodificar movimiento %s: %w", domain.ErrPersistence, doc.Ref.ID, err)
		}
		list = append(list, fromMovementDoc(doc.Ref.ID, d))
	}
	return filterMovements(list, f), nil
}

// yearBounds [1 de enero del menor año, 1 de enero del año siguiente al mayor) en UTC.
func yearBounds(years []int) (time.Time, time.Time) {
	lo, hi := slices.Min(years), slices.Max(years)
	return time.Date(lo, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(hi+1, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// filterMovements aplica el filtro completo y ordena por timestamp (estable).
func filterMovements(list []*entity.Movement, f repository.MovementFilter) []*entity.Movement {
	out := make([]*entity.Movement, 0, len(list))
	for _, m := range list {
		if f.ItemTag != "" && m.ItemTag != f.ItemTag {
			continue
		}
		if len(f.Years) > 0 && !slices.Contains(f.Years, m.Timestamp.Year()) {
			continue
		}
		out = append(out, m)
	}
	slices.SortStableFunc(out, func(a, b *entity.Movement) int {
		return cmp.Compare(a.Timestamp.UnixNano(), b.Timestamp.UnixNano())
	})
	return out
}
