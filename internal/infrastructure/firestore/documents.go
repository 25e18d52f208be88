package firestore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

// itemDoc forma del documento en la colección de items. Los nombres de campo son los del frontend.
type itemDoc struct {
	Tag          string    `firestore:"tag"`
	Nome         string    `firestore:"nome"`
	Categoria    string    `firestore:"categoria"`
	Preco        float64   `firestore:"preco"`
	Quantidade   int       `firestore:"quantidade"`
	Arara        string    `firestore:"arara"`
	Entrada      int       `firestore:"entrada"`
	Saida        int       `firestore:"saida"`
	Movimentacao bool      `firestore:"movimentacao"`
	AtualizadoEm time.Time `firestore:"atualizadoEm"`
	CriadoEm     time.Time `firestore:"criadoEm"`
}

type movementDoc struct {
	Tag       string    `firestore:"tag"`
	Timestamp time.Time `firestore:"timestamp"`
	Tipo      string    `firestore:"tipo"`
	Qtd       int       `firestore:"qtd"`
}

func toItemDoc(it *entity.Item) itemDoc {
	return itemDoc{
		Tag:          it.Tag,
		Nome:         it.Name,
		Categoria:    it.Category,
		Preco:        it.Price.InexactFloat64(),
		Quantidade:   it.Quantity,
		Arara:        it.Location,
		Entrada:      it.Inbound,
		Saida:        it.Outbound,
		Movimentacao: it.InStock,
		AtualizadoEm: it.UpdatedAt.UTC(),
		CriadoEm:     it.CreatedAt.UTC(),
	}
}

// fromItemDoc el precio se redondea a centavos: Firestore lo guarda como double.
func fromItemDoc(id string, d itemDoc) *entity.Item {
	return &entity.Item{
		ID:        id,
		Tag:       d.Tag,
		Name:      d.Nome,
		Category:  d.Categoria,
		Price:     decimal.NewFromFloat(d.Preco).Round(2),
		Quantity:  d.Quantidade,
		Location:  d.Arara,
		Inbound:   d.Entrada,
		Outbound:  d.Saida,
		InStock:   d.Movimentacao,
		CreatedAt: d.CriadoEm.UTC(),
		UpdatedAt: d.AtualizadoEm.UTC(),
	}
}

func toMovementDoc(m *entity.Movement) movementDoc {
	return movementDoc{Tag: m.ItemTag, Timestamp: m.Timestamp.UTC(), Tipo: m.Type, Qtd: m.Quantity}
}

func fromMovementDoc(id string, d movementDoc) *entity.Movement {
	return &entity.Movement{ID: id, ItemTag: d.Tag, Timestamp: d.Timestamp.UTC(), Type: d.Tipo, Quantity: d.Qtd}
}
