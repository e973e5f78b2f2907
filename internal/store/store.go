// Package store handles SQLite persistence of ingested statements.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edmetric/lrslens/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the local statement snapshot.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS statements (
			id TEXT PRIMARY KEY,
			actor_name TEXT NOT NULL,
			actor_mbox TEXT NOT NULL,
			verb_id TEXT NOT NULL,
			verb_display TEXT NOT NULL,
			object_id TEXT NOT NULL,
			object_name TEXT NOT NULL,
			object_type TEXT NOT NULL,
			score_scaled REAL,
			score_raw REAL,
			score_min REAL,
			score_max REAL,
			success INTEGER,
			completion INTEGER,
			duration TEXT NOT NULL,
			timestamp TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_statements_timestamp ON statements(timestamp);`,
		`CREATE INDEX IF NOT EXISTS idx_statements_actor_mbox ON statements(actor_mbox);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// PutStatements inserts a batch, skipping ids already present. It returns
// the number of newly inserted statements.
func (s *Store) PutStatements(ctx context.Context, stmts []model.Statement) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	ins, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO statements (id, actor_name, actor_mbox, verb_id, verb_display, object_id, object_name, object_type, score_scaled, score_raw, score_min, score_max, success, completion, duration, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := ins.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	inserted := 0
	for _, st := range stmts {
		var scaled, raw, minScore, maxScore sql.NullFloat64
		var success, completion sql.NullBool
		duration := ""
		if st.Result != nil {
			success = nullBool(st.Result.Success)
			completion = nullBool(st.Result.Completion)
			duration = st.Result.Duration
			if st.Result.Score != nil {
				scaled = nullFloat(st.Result.Score.Scaled)
				raw = nullFloat(st.Result.Score.Raw)
				minScore = nullFloat(st.Result.Score.Min)
				maxScore = nullFloat(st.Result.Score.Max)
			}
		}
		timestamp := ""
		if !st.Timestamp.IsZero() {
			timestamp = st.Timestamp.UTC().Format(time.RFC3339Nano)
		}
		res, err := ins.ExecContext(ctx,
			st.ID,
			st.Actor.Name,
			st.Actor.Mbox,
			st.Verb.ID,
			st.Verb.Display.Best(),
			st.Object.ID,
			st.Object.Definition.Name.Best(),
			st.Object.Definition.Type,
			scaled, raw, minScore, maxScore,
			success, completion,
			duration,
			timestamp,
		)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// ListStatements returns stored statements matching the report filters,
// ordered by timestamp ascending. The actor filter matches the mbox exactly
// or the name case-insensitively.
func (s *Store) ListStatements(ctx context.Context, cfg model.ReportConfig) ([]model.Statement, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Actor != "" {
		clauses = append(clauses, "(actor_mbox = ? OR actor_name = ? COLLATE NOCASE)")
		args = append(args, cfg.Actor, cfg.Actor)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, actor_name, actor_mbox, verb_id, verb_display, object_id, object_name, object_type, score_scaled, score_raw, score_min, score_max, success, completion, duration, timestamp
		FROM statements
		WHERE %s
		ORDER BY timestamp ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var stmts []model.Statement
	for rows.Next() {
		st, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stmts, nil
}

// CountStatements returns the total number of stored statements.
func (s *Store) CountStatements(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM statements`).Scan(&count)
	return count, err
}

func scanStatement(rows *sql.Rows) (model.Statement, error) {
	var st model.Statement
	var verbDisplay, objectName string
	var scaled, raw, minScore, maxScore sql.NullFloat64
	var success, completion sql.NullBool
	var duration, timestamp string
	if err := rows.Scan(
		&st.ID,
		&st.Actor.Name,
		&st.Actor.Mbox,
		&st.Verb.ID,
		&verbDisplay,
		&st.Object.ID,
		&objectName,
		&st.Object.Definition.Type,
		&scaled, &raw, &minScore, &maxScore,
		&success, &completion,
		&duration,
		&timestamp,
	); err != nil {
		return model.Statement{}, err
	}
	if verbDisplay != "" {
		st.Verb.Display = model.LanguageMap{"en": verbDisplay}
	}
	if objectName != "" {
		st.Object.Definition.Name = model.LanguageMap{"en": objectName}
	}
	if scaled.Valid || raw.Valid || success.Valid || completion.Valid || duration != "" {
		result := &model.Result{
			Success:    boolPtr(success),
			Completion: boolPtr(completion),
			Duration:   duration,
		}
		if scaled.Valid || raw.Valid {
			result.Score = &model.Score{
				Scaled: floatPtr(scaled),
				Raw:    floatPtr(raw),
				Min:    floatPtr(minScore),
				Max:    floatPtr(maxScore),
			}
		}
		st.Result = result
	}
	if timestamp != "" {
		parsed, err := time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return model.Statement{}, err
		}
		st.Timestamp = model.Timestamp{Time: parsed}
	}
	return st, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}
