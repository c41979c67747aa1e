package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/asdine/storm"

	"github.com/gymlab/palaestra/internal/domain/model"
)

// Defaults for the storm-backed store. The key is versioned so a
// future layout change can migrate instead of misreading old blobs.
const (
	defaultBucket = "palaestra"
	defaultKey    = "app-data-v2"
)

// StormStore persists the blob in an embedded storm (bbolt) database
// as a single JSON value under a versioned key.
type StormStore struct {
	db     *storm.DB
	bucket string
	key    string
}

// NewStormStore opens (or creates) the database file at path.
func NewStormStore(path string, opts ...Option) (*StormStore, error) {
	db, err := storm.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", path, err)
	}
	s := &StormStore{
		db:     db,
		bucket: defaultBucket,
		key:    defaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load reads and decodes the blob.
func (s *StormStore) Load(_ context.Context) (*model.AppData, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	var data model.AppData
	if err := s.db.Get(s.bucket, s.key, &data); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	data.Normalize()
	return &data, nil
}

// Save writes the blob, replacing the previous version.
func (s *StormStore) Save(_ context.Context, data *model.AppData) error {
	if s.db == nil {
		return ErrClosed
	}
	if err := s.db.Set(s.bucket, s.key, data); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Close releases the underlying database file.
func (s *StormStore) Close() error {
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	if err := db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
