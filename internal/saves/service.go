package saves

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/pkg/clock"
	"github.com/vovakirdan/icearena/internal/pkg/idgen"
)

// Config wires a Service.
type Config struct {
	Repository Repository
	Clock      clock.Clock
	IDGen      idgen.Generator
	// Logger may be nil.
	Logger *log.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Repository == nil {
		return errors.InvalidArgument("repository is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.IDGen == nil {
		return errors.InvalidArgument("id generator is required")
	}
	return nil
}

// Service validates and stamps slots before handing them to a Repository.
type Service struct {
	repo  Repository
	clock clock.Clock
	ids   idgen.Generator
	log   *log.Logger
}

// NewService creates a save-slot service.
func NewService(cfg *Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		repo:  cfg.Repository,
		clock: cfg.Clock,
		ids:   cfg.IDGen,
		log:   logger,
	}, nil
}

// SaveInput describes a slot to write. An empty ID creates a new slot; an
// existing ID overwrites it and keeps its creation time and, when Name is
// empty, its name.
type SaveInput struct {
	ID      string
	Name    string
	Mode    string
	LevelID string
	Score   int
	Data    []byte
}

// Save writes a slot and returns what was stored.
func (s *Service) Save(ctx context.Context, in SaveInput) (*Slot, error) {
	if len(in.Data) == 0 || !json.Valid(in.Data) {
		return nil, errors.InvalidArgument("slot data must be a JSON document")
	}
	if in.Mode == "" {
		return nil, errors.InvalidArgument("mode is required")
	}

	now := s.clock.Now().UTC()
	slot := &Slot{
		ID:        in.ID,
		Name:      strings.TrimSpace(in.Name),
		Mode:      in.Mode,
		LevelID:   in.LevelID,
		Score:     in.Score,
		Data:      in.Data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if slot.ID == "" {
		slot.ID = s.ids.Generate()
	} else {
		prev, err := s.repo.Get(ctx, slot.ID)
		switch {
		case err == nil:
			slot.CreatedAt = prev.CreatedAt
			if slot.Name == "" {
				slot.Name = prev.Name
			}
		case !errors.IsNotFound(err):
			return nil, errors.Wrapf(err, "failed to read slot %s", slot.ID)
		}
	}
	if slot.Name == "" {
		slot.Name = slot.LevelID + " " + now.Format("2006-01-02 15:04")
	}

	if err := s.repo.Put(ctx, slot); err != nil {
		return nil, errors.Wrapf(err, "failed to save slot %s", slot.ID)
	}
	s.log.Info("saved session", "id", slot.ID, "mode", slot.Mode, "level", slot.LevelID)
	return slot, nil
}

// Load returns one slot.
func (s *Service) Load(ctx context.Context, id string) (*Slot, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	slot, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load slot %s", id)
	}
	return slot, nil
}

// Latest returns the most recently updated slot, or NOT_FOUND if there is
// none.
func (s *Service) Latest(ctx context.Context) (*Slot, error) {
	slots, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, errors.NotFound("no saved sessions")
	}
	return slots[0], nil
}

// List returns every slot, most recently updated first.
func (s *Service) List(ctx context.Context) ([]*Slot, error) {
	slots, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list slots")
	}
	return slots, nil
}

// Delete removes a slot.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.InvalidArgument(errIDEmpty)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "failed to delete slot %s", id)
	}
	s.log.Info("deleted session", "id", id)
	return nil
}

// Export returns the slot's session document, indented for reading.
func (s *Service) Export(ctx context.Context, id string) (string, error) {
	slot, err := s.Load(ctx, id)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, slot.Data, "", "  "); err != nil {
		return "", errors.WrapWithCode(err, errors.CodeInternal, "stored slot is not valid JSON")
	}
	return buf.String(), nil
}
