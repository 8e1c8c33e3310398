package saves

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/vovakirdan/icearena/internal/errors"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS icearena_save_slots (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		mode TEXT NOT NULL,
		level_id TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		data JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_icearena_save_slots_updated ON icearena_save_slots(updated_at DESC);
`

// PostgresRepository keeps slots in a PostgreSQL table.
type PostgresRepository struct {
	db *sql.DB
}

var _ Repository = (*PostgresRepository)(nil)

// OpenPostgres connects with the given DSN and creates the table if needed.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepository, error) {
	if dsn == "" {
		return nil, errors.InvalidArgument("postgres DSN is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping database")
	}
	repo, err := NewPostgresRepository(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewPostgresRepository wraps an open database and creates the table if
// needed.
func NewPostgresRepository(ctx context.Context, db *sql.DB) (*PostgresRepository, error) {
	if db == nil {
		return nil, errors.InvalidArgument("database is required")
	}
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return nil, errors.Wrap(err, "failed to initialize schema")
	}
	return &PostgresRepository{db: db}, nil
}

// Close closes the underlying database.
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) Put(ctx context.Context, slot *Slot) error {
	if slot == nil {
		return errors.InvalidArgument(errSlotNil)
	}
	if slot.ID == "" {
		return errors.InvalidArgument(errIDEmpty)
	}
	query := `
	INSERT INTO icearena_save_slots (id, name, mode, level_id, score, data, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id)
	DO UPDATE SET
		name = $2, mode = $3, level_id = $4, score = $5, data = $6, updated_at = $8
	`
	_, err := r.db.ExecContext(ctx, query,
		slot.ID, slot.Name, slot.Mode, slot.LevelID, slot.Score,
		string(slot.Data), slot.CreatedAt, slot.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to save slot")
	}
	return nil
}

const postgresColumns = `id, name, mode, level_id, score, data, created_at, updated_at`

func scanPostgresSlot(scan func(dest ...any) error) (*Slot, error) {
	var s Slot
	var data string
	if err := scan(&s.ID, &s.Name, &s.Mode, &s.LevelID, &s.Score, &data, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Data = []byte(data)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return &s, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Slot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postgresColumns+` FROM icearena_save_slots WHERE id = $1`, id)
	s, err := scanPostgresSlot(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("save slot %q not found", id).WithMeta("id", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load slot")
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Slot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postgresColumns+` FROM icearena_save_slots ORDER BY updated_at DESC, id ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list slots")
	}
	defer rows.Close()

	var out []*Slot
	for rows.Next() {
		s, err := scanPostgresSlot(rows.Scan)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan slot")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list slots")
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM icearena_save_slots WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete slot")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to delete slot")
	}
	if n == 0 {
		return errors.NotFoundf("save slot %q not found", id).WithMeta("id", id)
	}
	return nil
}
