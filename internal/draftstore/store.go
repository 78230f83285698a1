package draftstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"presskit/internal/config"
	"presskit/internal/release"
	"presskit/internal/wizard"
)

// Record is one persisted draft together with its wizard position.
type Record struct {
	Draft     *release.Draft
	Stage     wizard.Stage
	State     wizard.State
	ReleaseID string
}

// Store manages draft persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the drafts database. The data directory
// lock is held for the lifetime of the store; a second process opening the
// same directory fails fast instead of corrupting the database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "presskit.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another presskit instance is using this data directory")
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "drafts.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the directory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Save upserts a draft record keyed by the draft identifier.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	if rec == nil || rec.Draft == nil {
		return errors.New("record is nil")
	}

	payload, err := json.Marshal(rec.Draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO drafts (id, state, stage, title, primary_artist, release_id, payload_json, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             state = excluded.state,
             stage = excluded.stage,
             title = excluded.title,
             primary_artist = excluded.primary_artist,
             release_id = excluded.release_id,
             payload_json = excluded.payload_json,
             updated_at = excluded.updated_at`,
		rec.Draft.ID,
		string(rec.State),
		rec.Stage.String(),
		nullableString(rec.Draft.Title),
		nullableString(rec.Draft.PrimaryArtist),
		nullableString(rec.ReleaseID),
		string(payload),
		rec.Draft.CreatedAt.UTC().Format(time.RFC3339Nano),
		now,
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// GetByID fetches a draft record by identifier. A missing draft returns
// (nil, nil).
func (s *Store) GetByID(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT state, stage, release_id, payload_json FROM drafts WHERE id = ?`, id)

	var (
		state     string
		stage     string
		releaseID sql.NullString
		payload   string
	)
	err := row.Scan(&state, &stage, &releaseID, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return decodeRecord(state, stage, releaseID.String, payload)
}

// List returns draft records filtered by state (or all records when no state
// is provided), most recently updated first.
func (s *Store) List(ctx context.Context, states ...wizard.State) ([]*Record, error) {
	query := `SELECT state, stage, release_id, payload_json FROM drafts`
	args := make([]any, 0, len(states))
	if len(states) > 0 {
		query += ` WHERE state IN (` + makePlaceholders(len(states)) + `)`
		for _, state := range states {
			args = append(args, string(state))
		}
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			state     string
			stage     string
			releaseID sql.NullString
			payload   string
		)
		if err := rows.Scan(&state, &stage, &releaseID, &payload); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		rec, err := decodeRecord(state, stage, releaseID.String, payload)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes a draft by identifier and reports whether a row was
// removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete draft: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// MarkSubmitted records the catalog release identifier and flips the draft
// to the submitted state.
func (s *Store) MarkSubmitted(ctx context.Context, id, releaseID string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE drafts SET state = ?, release_id = ?, updated_at = ? WHERE id = ?`,
		string(wizard.StateSubmitted),
		releaseID,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("mark submitted: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("draft %s not found", id)
	}
	return nil
}

// Stats returns a count of drafts grouped by state.
func (s *Store) Stats(ctx context.Context) (map[wizard.State]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT state, COUNT(1) FROM drafts GROUP BY state`)
	if err != nil {
		return nil, fmt.Errorf("draft stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[wizard.State]int)
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		stats[wizard.State(state)] = count
	}
	return stats, rows.Err()
}

func decodeRecord(state, stage, releaseID, payload string) (*Record, error) {
	var draft release.Draft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	parsedStage, ok := wizard.ParseStage(stage)
	if !ok {
		parsedStage = wizard.StageBasics
	}
	return &Record{
		Draft:     &draft,
		Stage:     parsedStage,
		State:     wizard.State(state),
		ReleaseID: releaseID,
	}, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
