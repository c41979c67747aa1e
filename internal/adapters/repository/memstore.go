package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gymlab/palaestra/internal/domain/model"
)

// MemStore keeps the blob in memory. It serializes through JSON the
// same way the durable store does, so tests exercise the real
// round-trip behavior without a database file.
type MemStore struct {
	mu   sync.Mutex
	blob []byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load decodes the last saved blob.
func (s *MemStore) Load(_ context.Context) (*model.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blob == nil {
		return nil, ErrNoData
	}
	var data model.AppData
	if err := json.Unmarshal(s.blob, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	data.Normalize()
	return &data, nil
}

// Save encodes and keeps the blob.
func (s *MemStore) Save(_ context.Context, data *model.AppData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	s.mu.Lock()
	s.blob = b
	s.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }

// Corrupt overwrites the stored payload with garbage. Test hook for
// the corrupt-blob fallback path.
func (s *MemStore) Corrupt() {
	s.mu.Lock()
	s.blob = []byte("{not json")
	s.mu.Unlock()
}
