package analytics

import (
	"time"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

// AuditLedger compara, por tag, la suma del ledger contra los contadores entrada/saida del item.
// Reporta solo los tags con diferencia; los movimientos de items eliminados salen con SemItem.
// Un tag puede reutilizarse tras eliminar el item: los movimientos anteriores a CreatedAt del item
// vigente pertenecen al eliminado. Items creados fuera del orquestador (p. ej. importados sin
// ledger de apertura) aparecen como divergentes.
func AuditLedger(items []*entity.Item, ledger []*entity.Movement) dto.AuditDTO {
	type sums struct{ in, out int }
	add := func(s *sums, m *entity.Movement) {
		if m.Type == entity.MovementTypeIn {
			s.in += m.Quantity
		} else {
			s.out += m.Quantity
		}
	}

	createdAt := make(map[string]time.Time, len(items))
	for _, it := range items {
		createdAt[it.Tag] = it.CreatedAt
	}

	live := make(map[string]*sums)
	orphan := make(map[string]*sums)
	var order []string
	for _, m := range ledger {
		cutoff, ok := createdAt[m.ItemTag]
		if ok && (cutoff.IsZero() || !m.Timestamp.Before(cutoff)) {
			s := live[m.ItemTag]
			if s == nil {
				s = &sums{}
				live[m.ItemTag] = s
			}
			add(s, m)
			continue
		}
		s := orphan[m.ItemTag]
		if s == nil {
			s = &sums{}
			orphan[m.ItemTag] = s
			order = append(order, m.ItemTag)
		}
		add(s, m)
	}

	res := dto.AuditDTO{ItensVerificados: len(items), Divergencias: []dto.LedgerDriftDTO{}}
	for _, it := range items {
		s := live[it.Tag]
		if s == nil {
			s = &sums{}
		}
		if s.in == it.Inbound && s.out == it.Outbound {
			continue
		}
		res.Divergencias = append(res.Divergencias, dto.LedgerDriftDTO{
			Tag:           it.Tag,
			EntradaItem:   it.Inbound,
			EntradaLedger: s.in,
			SaidaItem:     it.Outbound,
			SaidaLedger:   s.out,
		})
	}
	for _, tag := range order {
		s := orphan[tag]
		res.Divergencias = append(res.Divergencias, dto.LedgerDriftDTO{
			Tag:           tag,
			EntradaLedger: s.in,
			SaidaLedger:   s.out,
			SemItem:       true,
		})
	}
	return res
}
