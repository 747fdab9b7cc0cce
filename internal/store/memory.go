// internal/store/memory.go
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/eranhirsch/nothanks/internal/models"
)

// MemoryStore is an in-process snapshot store for tests and for running
// the service without redis. Snapshots round-trip through JSON so it
// exercises the same codec as the redis store.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[uuid.UUID][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[uuid.UUID][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, tableID uuid.UUID, snap *models.GameSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[tableID] = data
	return nil
}

func (s *MemoryStore) Load(_ context.Context, tableID uuid.UUID) (*models.GameSnapshot, error) {
	s.mu.Lock()
	data, ok := s.blobs[tableID]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var snap models.GameSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *MemoryStore) Clear(_ context.Context, tableID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, tableID)
	return nil
}
