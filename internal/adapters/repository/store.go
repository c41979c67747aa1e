// Package repository persists the application state blob.
package repository

import (
	"context"

	"github.com/gymlab/palaestra/internal/domain/model"
)

// Store provides durable read/write access to the full state blob.
// Writes happen after each successful mutation on a best-effort
// basis; the in-memory copy stays authoritative for the session.
type Store interface {
	// Load reads the persisted blob. Returns ErrNoData when nothing
	// was ever saved and ErrCorrupt when the payload cannot be
	// decoded; callers fall back to defaults in both cases.
	Load(ctx context.Context) (*model.AppData, error)

	// Save writes the blob, replacing any previous version.
	Save(ctx context.Context, data *model.AppData) error

	// Close releases the underlying storage.
	Close() error
}
