// Package saves stores in-progress game sessions in named slots. The
// Service sits over a Repository with SQLite, Redis and PostgreSQL
// implementations.
package saves

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=savesmock github.com/vovakirdan/icearena/internal/saves Repository

// Slot is one saved session. Data is the session's JSON document and is
// never interpreted here.
type Slot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Mode      string    `json:"mode"`
	LevelID   string    `json:"level_id"`
	Score     int       `json:"score"`
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the storage operations for save slots.
type Repository interface {
	// Put inserts or replaces a slot by ID.
	Put(ctx context.Context, slot *Slot) error

	// Get returns a NOT_FOUND error for unknown IDs.
	Get(ctx context.Context, id string) (*Slot, error)

	// List returns every slot, most recently updated first.
	List(ctx context.Context) ([]*Slot, error)

	// Delete returns a NOT_FOUND error for unknown IDs.
	Delete(ctx context.Context, id string) error
}
