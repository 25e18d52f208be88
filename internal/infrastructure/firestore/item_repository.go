package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/jhoicas/sipac-estoque/internal/domain"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo items en una colección de Firestore. Con tx != nil todas las operaciones
// van por la transacción (lecturas antes que escrituras, como exige Firestore).
type ItemRepo struct {
	client     *firestore.Client
	collection string
	tx         *firestore.Transaction
}

// NewItemRepository construye el repo fuera de transacción.
func NewItemRepository(client *firestore.Client, collection string) *ItemRepo {
	return &ItemRepo{client: client, collection: collection}
}

func (r *ItemRepo) col() *firestore.CollectionRef {
	return r.client.Collection(r.collection)
}

func (r *ItemRepo) documents(ctx context.Context, q firestore.Query) *firestore.DocumentIterator {
	if r.tx != nil {
		return r.tx.Documents(q)
	}
	return q.Documents(ctx)
}

func (r *ItemRepo) get(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if r.tx != nil {
		return r.tx.Get(ref)
	}
	return ref.Get(ctx)
}

// List devuelve los items en el orden de la colección (ID de documento).
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	it := r.documents(ctx, r.col().Query)
	defer it.Stop()

	var list []*entity.Item
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, mapErr("listar itens", "", err)
		}
		item, err := decodeItem(doc)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, nil
}

// GetForUpdate lee el documento. Dentro de TxRunner la lectura va por tx.Get y Firestore
// aborta y reintenta la transacción si el documento cambia antes del commit.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	doc, err := r.get(ctx, r.col().Doc(id))
	if err != nil {
		return nil, mapErr("item", id, err)
	}
	return decodeItem(doc)
}

// GetByTagForUpdate busca el documento con ese tag (consulta transaccional dentro de TxRunner).
func (r *ItemRepo) GetByTagForUpdate(ctx context.Context, tag string) (*entity.Item, error) {
	it := r.documents(ctx, r.col().Where("tag", "==", tag).Limit(1))
	defer it.Stop()
	doc, err := it.Next()
	if errors.Is(err, iterator.Done) {
		return nil, fmt.Errorf("%w: tag %s", domain.ErrNotFound, tag)
	}
	if err != nil {
		return nil, mapErr("buscar tag", tag, err)
	}
	return decodeItem(doc)
}

func decodeItem(doc *firestore.DocumentSnapshot) (*entity.Item, error) {
	var d itemDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("%w: decodificar item %s: %w", domain.ErrPersistence, doc.Ref.ID, err)
	}
	return fromItemDoc(doc.Ref.ID, d), nil
}

// Create verifica unicidad del tag y crea el documento con ID generado por Firestore.
// Fuera de transacción la verificación y la escritura no son atómicas.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	exists, err := r.tagExists(ctx, item.Tag)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: tag %s", domain.ErrDuplicate, item.Tag)
	}

	saved := item.Clone()
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now().UTC()
	}
	ref := r.col().NewDoc()
	if r.tx != nil {
		err = r.tx.Create(ref, toItemDoc(saved))
	} else {
		_, err = ref.Create(ctx, toItemDoc(saved))
	}
	if err != nil {
		return nil, mapErr("crear item", ref.ID, err)
	}
	saved.ID = ref.ID
	return saved, nil
}

func (r *ItemRepo) tagExists(ctx context.Context, tag string) (bool, error) {
	it := r.documents(ctx, r.col().Where("tag", "==", tag).Limit(1))
	defer it.Stop()
	_, err := it.Next()
	if errors.Is(err, iterator.Done) {
		return false, nil
	}
	if err != nil {
		return false, mapErr("buscar tag", tag, err)
	}
	return true, nil
}

// Replace sobrescribe el documento completo conservando criadoEm; domain.ErrNotFound si no existe.
func (r *ItemRepo) Replace(ctx context.Context, id string, item *entity.Item) (*entity.Item, error) {
	prev, err := r.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	saved := item.Clone()
	saved.ID = id
	saved.CreatedAt = prev.CreatedAt

	ref := r.col().Doc(id)
	if r.tx != nil {
		err = r.tx.Set(ref, toItemDoc(saved))
	} else {
		_, err = ref.Set(ctx, toItemDoc(saved))
	}
	if err != nil {
		return nil, mapErr("reemplazar item", id, err)
	}
	return saved, nil
}

// Remove borra el documento; domain.ErrNotFound si no existe.
func (r *ItemRepo) Remove(ctx context.Context, id string) error {
	ref := r.col().Doc(id)
	if _, err := r.get(ctx, ref); err != nil {
		return mapErr("item", id, err)
	}
	var err error
	if r.tx != nil {
		err = r.tx.Delete(ref)
	} else {
		_, err = ref.Delete(ctx)
	}
	if err != nil {
		return mapErr("eliminar item", id, err)
	}
	return nil
}
