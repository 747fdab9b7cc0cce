// internal/game/table_store.go
package game

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// TableStore is the in-memory registry of live tables.
type TableStore struct {
	mu     sync.Mutex
	tables map[uuid.UUID]*Table
}

func NewTableStore() *TableStore {
	return &TableStore{
		tables: make(map[uuid.UUID]*Table),
	}
}

func (s *TableStore) Add(t *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.ID] = t
}

func (s *TableStore) Get(id uuid.UUID) (*Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[id]
	return t, ok
}

func (s *TableStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, id)
}

// List returns all tables ordered by creation time.
func (s *TableStore) List() []*Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
