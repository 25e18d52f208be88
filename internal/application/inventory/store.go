package inventory

import (
	"sync"

	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

// Store es la caché de items del proceso que alimenta las vistas de lectura.
// Se carga desde el proveedor al arrancar y en cada listado; las mutaciones lo actualizan
// tras persistir. Las mutaciones no leen de aquí: leen el estado vigente del proveedor.
// Todo lo que sale del Store son copias.
type Store struct {
	mu      sync.RWMutex
	items   []*entity.Item
	version uint64
	written map[string]uint64 // ID -> versión del último Put/Delete
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{written: make(map[string]uint64)}
}

// Version devuelve la versión actual; se toma antes de leer del proveedor para LoadSince.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Load reemplaza el contenido completo (orden del proveedor).
func (s *Store) Load(items []*entity.Item) {
	cp := make([]*entity.Item, 0, len(items))
	for _, it := range items {
		cp = append(cp, it.Clone())
	}
	s.mu.Lock()
	s.items = cp
	s.written = make(map[string]uint64)
	s.mu.Unlock()
}

// LoadSince reemplaza el contenido con una lectura del proveedor iniciada en la versión since.
// Los items escritos (Put o Delete) después de since conservan el estado local: esa lectura
// puede ser anterior a su commit.
func (s *Store) LoadSince(items []*entity.Item, since uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	local := make(map[string]*entity.Item, len(s.items))
	for _, it := range s.items {
		local[it.ID] = it
	}
	cp := make([]*entity.Item, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		seen[it.ID] = true
		if s.written[it.ID] > since {
			if cur, ok := local[it.ID]; ok {
				cp = append(cp, cur)
			}
			continue
		}
		cp = append(cp, it.Clone())
	}
	for _, it := range s.items {
		if !seen[it.ID] && s.written[it.ID] > since {
			cp = append(cp, it)
		}
	}
	s.items = cp
	for id, v := range s.written {
		if v <= since {
			delete(s.written, id)
		}
	}
}

func (s *Store) touch(id string) {
	if s.written == nil {
		s.written = make(map[string]uint64)
	}
	s.version++
	s.written[id] = s.version
}

// Snapshot devuelve copias de todos los items.
func (s *Store) Snapshot() []*entity.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it.Clone())
	}
	return out
}

// ByTag busca por tag.
func (s *Store) ByTag(tag string) (*entity.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.Tag == tag {
			return it.Clone(), true
		}
	}
	return nil, false
}

// ByID busca por el ID del proveedor.
func (s *Store) ByID(id string) (*entity.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it.Clone(), true
		}
	}
	return nil, false
}

// Put inserta o reemplaza por ID. Los nuevos van al final.
func (s *Store) Put(item *entity.Item) {
	cp := item.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(cp.ID)
	for i, it := range s.items {
		if it.ID == cp.ID {
			s.items[i] = cp
			return
		}
	}
	s.items = append(s.items, cp)
}

// Delete quita el item con ese ID si existe.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(id)
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Len cantidad de items cargados.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
