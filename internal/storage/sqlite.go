// Package storage persists the working selection, recorded rounds, and the
// activity log between CLI invocations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/calebward/fueltally/internal/common"
	"github.com/calebward/fueltally/internal/model"
)

// Session state keys carried between commands.
const (
	StateRoundName     = "round_name"
	StateJustification = "ai_justification"
	StatePeriodFrom    = "period_from"
	StatePeriodTo      = "period_to"
)

// Store implements persistence on SQLite.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates a Store at the given path, creating the directory and schema
// as needed.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path: %w", common.ErrMissingConfig)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS selection_items (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	hours REAL NOT NULL,
	idle_hours REAL NOT NULL,
	fuel_per_unit REAL,
	rate REAL,
	idle_rate REAL,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS rounds (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	period_from TEXT NOT NULL,
	period_to TEXT NOT NULL,
	total_fuel REAL NOT NULL,
	recorded_at TEXT NOT NULL,
	ai_justification TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS round_items (
	round_id TEXT NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	id TEXT NOT NULL,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	hours REAL NOT NULL,
	idle_hours REAL NOT NULL,
	fuel_per_unit REAL,
	rate REAL,
	idle_rate REAL,
	PRIMARY KEY (round_id, position)
);

CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	logged_at TEXT NOT NULL,
	level TEXT NOT NULL,
	message TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS session_state (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SaveSelection replaces the stored selection with the given items.
func (s *Store) SaveSelection(ctx context.Context, items []model.LineItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM selection_items`); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}

	const insert = `INSERT INTO selection_items
		(id, name, category, quantity, hours, idle_hours, fuel_per_unit, rate, idle_rate, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range items {
		it := &items[i]
		if _, err := tx.ExecContext(ctx, insert,
			it.ID, it.Name, it.Category, it.Quantity, it.Hours, it.IdleHours,
			nullable(it.FuelPerUnit), nullable(it.Rate), nullable(it.IdleRate), i); err != nil {
			return fmt.Errorf("failed to save line item %s: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit selection: %w", err)
	}
	return nil
}

// GetSelection loads the stored selection in its saved order.
func (s *Store) GetSelection(ctx context.Context) ([]model.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, category, quantity, hours, idle_hours,
		fuel_per_unit, rate, idle_rate FROM selection_items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query selection: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanLineItems(rows)
}

// ClearSelection removes every stored line item.
func (s *Store) ClearSelection(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM selection_items`); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}

// SaveRound appends a recorded round. Rounds are append-only except for
// explicit deletion; there is no update path.
func (s *Store) SaveRound(ctx context.Context, round model.Round) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO rounds
		(id, name, period_from, period_to, total_fuel, recorded_at, ai_justification)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		round.ID, round.Name,
		round.Period.From.Format(time.RFC3339),
		round.Period.To.Format(time.RFC3339),
		round.TotalFuel,
		round.Timestamp.Format(time.RFC3339Nano),
		round.AIJustification); err != nil {
		return fmt.Errorf("failed to save round %s: %w", round.ID, err)
	}

	const insert = `INSERT INTO round_items
		(round_id, position, id, name, category, quantity, hours, idle_hours, fuel_per_unit, rate, idle_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range round.Items {
		it := &round.Items[i]
		if _, err := tx.ExecContext(ctx, insert,
			round.ID, i, it.ID, it.Name, it.Category, it.Quantity, it.Hours, it.IdleHours,
			nullable(it.FuelPerUnit), nullable(it.Rate), nullable(it.IdleRate)); err != nil {
			return fmt.Errorf("failed to save round item %s: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit round: %w", err)
	}
	return nil
}

// GetRounds loads all recorded rounds, newest first, with their item
// snapshots.
func (s *Store) GetRounds(ctx context.Context) ([]model.Round, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, period_from, period_to, total_fuel,
		recorded_at, ai_justification FROM rounds ORDER BY recorded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rounds []model.Round
	for rows.Next() {
		var r model.Round
		var from, to, recordedAt string
		if err := rows.Scan(&r.ID, &r.Name, &from, &to, &r.TotalFuel, &recordedAt, &r.AIJustification); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		if r.Period.From, err = time.Parse(time.RFC3339, from); err != nil {
			return nil, fmt.Errorf("failed to parse round period: %w", err)
		}
		if r.Period.To, err = time.Parse(time.RFC3339, to); err != nil {
			return nil, fmt.Errorf("failed to parse round period: %w", err)
		}
		if r.Timestamp, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("failed to parse round timestamp: %w", err)
		}
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rounds: %w", err)
	}

	for i := range rounds {
		items, err := s.getRoundItems(ctx, rounds[i].ID)
		if err != nil {
			return nil, err
		}
		rounds[i].Items = items
	}
	return rounds, nil
}

func (s *Store) getRoundItems(ctx context.Context, roundID string) ([]model.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, category, quantity, hours, idle_hours,
		fuel_per_unit, rate, idle_rate FROM round_items WHERE round_id = ? ORDER BY position`, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query round items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanLineItems(rows)
}

// DeleteRound removes one round and its items.
func (s *Store) DeleteRound(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rounds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete round: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("round %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// AppendLog records one activity log entry.
func (s *Store) AppendLog(ctx context.Context, entry model.LogEntry) error {
	if _, err := s.db.ExecContext(ctx, `INSERT INTO activity_log (id, logged_at, level, message)
		VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Timestamp.Format(time.RFC3339Nano), entry.Level, entry.Message); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}

// GetLog loads all activity log entries, oldest first.
func (s *Store) GetLog(ctx context.Context) ([]model.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, logged_at, level, message
		FROM activity_log ORDER BY logged_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.LogEntry
	for rows.Next() {
		var e model.LogEntry
		var loggedAt string
		if err := rows.Scan(&e.ID, &loggedAt, &e.Level, &e.Message); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, loggedAt); err != nil {
			return nil, fmt.Errorf("failed to parse log timestamp: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity log: %w", err)
	}
	return entries, nil
}

// ClearLog removes every activity log entry.
func (s *Store) ClearLog(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM activity_log`); err != nil {
		return fmt.Errorf("failed to clear activity log: %w", err)
	}
	return nil
}

// SetState stores one session key/value pair (round name, justification,
// period) carried between commands.
func (s *Store) SetState(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, `INSERT INTO session_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
		return fmt.Errorf("failed to set state %q: %w", key, err)
	}
	return nil
}

// GetState loads one session value; missing keys return the empty string.
func (s *Store) GetState(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get state %q: %w", key, err)
	}
	return value, nil
}

// ClearState removes all session key/value pairs.
func (s *Store) ClearState(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_state`); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func scanLineItems(rows *sql.Rows) ([]model.LineItem, error) {
	var items []model.LineItem
	for rows.Next() {
		var it model.LineItem
		var fuel, rate, idleRate sql.NullFloat64
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Quantity, &it.Hours, &it.IdleHours,
			&fuel, &rate, &idleRate); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		// fuel_per_unit is never stored without its rates.
		if fuel.Valid && rate.Valid && idleRate.Valid {
			it.SetEstimate(fuel.Float64, rate.Float64, idleRate.Float64)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}
	return items, nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
