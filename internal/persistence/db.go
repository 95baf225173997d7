// Package persistence provides SQLite-based storage for run telemetry.
// The core never depends on it; external layers decide when to snapshot.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/manifold/internal/agents"
	"github.com/talgya/manifold/internal/engine"
)

// DB wraps a SQLite connection for telemetry storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS telemetry (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		agent_id TEXT NOT NULL,
		name TEXT NOT NULL,
		state TEXT NOT NULL,
		xi REAL NOT NULL,
		gamma REAL NOT NULL,
		total_distance REAL NOT NULL,
		healing_count INTEGER NOT NULL,
		evolution_count INTEGER NOT NULL,
		generation INTEGER NOT NULL,
		fitness REAL NOT NULL,
		position_json TEXT NOT NULL,
		curvature_json TEXT NOT NULL,
		navigation_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_telemetry_tick ON telemetry(tick);
	CREATE INDEX IF NOT EXISTS idx_telemetry_agent ON telemetry(agent_id);
	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveTelemetry appends one telemetry row per agent for the given tick.
func (db *DB) SaveTelemetry(tick uint64, records []agents.Telemetry) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO telemetry
		(tick, agent_id, name, state, xi, gamma, total_distance,
		 healing_count, evolution_count, generation, fitness,
		 position_json, curvature_json, navigation_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range records {
		posJSON, _ := json.Marshal(t.Position)
		curvJSON, _ := json.Marshal(t.Curvature)
		navJSON, _ := json.Marshal(t.Navigation)

		_, err := stmt.Exec(
			tick, t.AgentID, t.Name, t.State,
			t.Position.Xi, t.Position.Gamma, t.Metrics.TotalDistance,
			t.Metrics.HealingCount, t.Metrics.EvolutionCount,
			t.Metrics.Generation, t.Metrics.Fitness,
			string(posJSON), string(curvJSON), string(navJSON),
		)
		if err != nil {
			return fmt.Errorf("insert telemetry for %s: %w", t.AgentID, err)
		}
	}

	return tx.Commit()
}

// SaveEvents appends events to the database.
func (db *DB) SaveEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (tick, description, category) VALUES (?, ?, ?)",
			e.Tick, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in run metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// TelemetryRow is the flattened form read back from the store.
type TelemetryRow struct {
	Tick           uint64  `db:"tick"`
	AgentID        string  `db:"agent_id"`
	Name           string  `db:"name"`
	State          string  `db:"state"`
	Xi             float64 `db:"xi"`
	Gamma          float64 `db:"gamma"`
	TotalDistance  float64 `db:"total_distance"`
	HealingCount   int     `db:"healing_count"`
	EvolutionCount int     `db:"evolution_count"`
	Generation     int     `db:"generation"`
	Fitness        float64 `db:"fitness"`
}

// RecentTelemetry returns the most recent N telemetry rows.
func (db *DB) RecentTelemetry(limit int) ([]TelemetryRow, error) {
	var rows []TelemetryRow
	err := db.conn.Select(&rows,
		`SELECT tick, agent_id, name, state, xi, gamma, total_distance,
		        healing_count, evolution_count, generation, fitness
		 FROM telemetry ORDER BY id DESC LIMIT ?`,
		limit,
	)
	return rows, err
}

// RecentEvents returns the most recent N events.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

// SaveRun snapshots telemetry for all agents plus buffered events.
func (db *DB) SaveRun(sim *engine.Simulation) error {
	all := sim.AllAgents()
	records := make([]agents.Telemetry, 0, len(all))
	for _, a := range all {
		records = append(records, a.Telemetry())
	}

	slog.Info("saving run state", "tick", sim.LastTick, "agents", len(records), "events", len(sim.Events))

	if err := db.SaveTelemetry(sim.LastTick, records); err != nil {
		return fmt.Errorf("save telemetry: %w", err)
	}
	if err := db.SaveEvents(sim.Events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	sim.Events = sim.Events[:0]

	if err := db.SaveMeta("last_tick", fmt.Sprintf("%d", sim.LastTick)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	return nil
}
