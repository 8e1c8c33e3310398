package saves

import (
	"context"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/storage"
)

// SlotStore is the part of storage.Store the SQLite repository uses.
type SlotStore interface {
	PutSlot(ctx context.Context, r storage.SlotRecord) error
	GetSlot(ctx context.Context, id string) (*storage.SlotRecord, error)
	ListSlots(ctx context.Context) ([]*storage.SlotRecord, error)
	DeleteSlot(ctx context.Context, id string) error
}

type sqliteRepository struct {
	store SlotStore
}

// NewSQLiteRepository keeps slots in the local score database.
func NewSQLiteRepository(store SlotStore) (Repository, error) {
	if store == nil {
		return nil, errors.InvalidArgument("store is required")
	}
	return &sqliteRepository{store: store}, nil
}

var _ Repository = (*sqliteRepository)(nil)

func toRecord(s *Slot) storage.SlotRecord {
	return storage.SlotRecord{
		ID:        s.ID,
		Name:      s.Name,
		Mode:      s.Mode,
		LevelID:   s.LevelID,
		Score:     s.Score,
		Data:      s.Data,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func fromRecord(r *storage.SlotRecord) *Slot {
	return &Slot{
		ID:        r.ID,
		Name:      r.Name,
		Mode:      r.Mode,
		LevelID:   r.LevelID,
		Score:     r.Score,
		Data:      r.Data,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *sqliteRepository) Put(ctx context.Context, slot *Slot) error {
	if slot == nil {
		return errors.InvalidArgument(errSlotNil)
	}
	return r.store.PutSlot(ctx, toRecord(slot))
}

func (r *sqliteRepository) Get(ctx context.Context, id string) (*Slot, error) {
	rec, err := r.store.GetSlot(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromRecord(rec), nil
}

func (r *sqliteRepository) List(ctx context.Context) ([]*Slot, error) {
	recs, err := r.store.ListSlots(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Slot, len(recs))
	for i, rec := range recs {
		out[i] = fromRecord(rec)
	}
	return out, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteSlot(ctx, id)
}
