// Package results persists simulation run summaries.
package results

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bratMaciek/Yacht-Port-Simulation/core/stats"
)

// SQLiteStore persists run summaries in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS runs (
        run_id TEXT PRIMARY KEY,
        serviced INTEGER,
        refuels INTEGER,
        cleanings INTEGER,
        repairs INTEGER,
        cumulative_wait INTEGER,
        max_wait INTEGER,
        average_wait REAL,
        finished_at INTEGER
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Save inserts or replaces the run summary.
func (s *SQLiteStore) Save(r stats.RunSummary) error {
	_, err := s.db.Exec(`INSERT INTO runs
        (run_id, serviced, refuels, cleanings, repairs, cumulative_wait, max_wait, average_wait, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(run_id) DO UPDATE SET
            serviced = excluded.serviced,
            refuels = excluded.refuels,
            cleanings = excluded.cleanings,
            repairs = excluded.repairs,
            cumulative_wait = excluded.cumulative_wait,
            max_wait = excluded.max_wait,
            average_wait = excluded.average_wait,
            finished_at = excluded.finished_at`,
		r.RunID, r.Stats.Serviced, r.Stats.Refuels, r.Stats.Cleanings, r.Stats.Repairs,
		r.Stats.CumulativeWaitTicks, r.Stats.MaxWaitTicks, r.AverageWait, r.FinishedAt.Unix())
	return err
}

// Query returns summaries finished in the range [start,end] ordered by time.
func (s *SQLiteStore) Query(start, end time.Time) ([]stats.RunSummary, error) {
	rows, err := s.db.Query(`SELECT run_id, serviced, refuels, cleanings, repairs,
        cumulative_wait, max_wait, average_wait, finished_at
        FROM runs WHERE finished_at >= ? AND finished_at <= ? ORDER BY finished_at`,
		start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []stats.RunSummary
	for rows.Next() {
		var r stats.RunSummary
		var ts int64
		if err := rows.Scan(&r.RunID, &r.Stats.Serviced, &r.Stats.Refuels, &r.Stats.Cleanings,
			&r.Stats.Repairs, &r.Stats.CumulativeWaitTicks, &r.Stats.MaxWaitTicks,
			&r.AverageWait, &ts); err != nil {
			return nil, err
		}
		r.FinishedAt = time.Unix(ts, 0).UTC()
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
