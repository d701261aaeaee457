package pattern

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqlSchema = `
CREATE TABLE IF NOT EXISTS patterns (
	id                   TEXT PRIMARY KEY,
	problem_domain       TEXT NOT NULL,
	solution_approach    TEXT NOT NULL,
	implementation_steps TEXT NOT NULL,
	success_metrics      TEXT NOT NULL,
	prerequisites        TEXT NOT NULL,
	connections_enhanced INTEGER NOT NULL,
	confidence_score     REAL NOT NULL,
	source               TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS problem_signatures (
	id               TEXT PRIMARY KEY,
	domain           TEXT NOT NULL,
	complexity       TEXT NOT NULL,
	constraints      TEXT NOT NULL,
	stakeholders     TEXT NOT NULL,
	success_criteria TEXT NOT NULL
);
`

// SQLStore persists the snapshot in SQLite. List fields are stored as JSON
// columns; the record set is replaced wholesale on Save, matching the
// snapshot semantics of the file store.
type SQLStore struct {
	db *sql.DB
}

// OpenSQL opens or creates the SQLite store at path.
func OpenSQL(path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(sqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// OpenSQLMemory opens an in-memory SQLite store for testing.
func OpenSQLMemory() (*SQLStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open memory sqlite: %w", err)
	}
	if _, err := db.Exec(sqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Load implements Store.
func (s *SQLStore) Load() (*Snapshot, error) {
	snap := emptySnapshot()

	rows, err := s.db.Query(`SELECT id, problem_domain, solution_approach, implementation_steps,
		success_metrics, prerequisites, connections_enhanced, confidence_score, source FROM patterns`)
	if err != nil {
		return nil, fmt.Errorf("query patterns: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p SolutionPattern
		var steps, metrics, prereqs string
		if err := rows.Scan(&p.ID, &p.ProblemDomain, &p.SolutionApproach, &steps,
			&metrics, &prereqs, &p.ConnectionsEnhanced, &p.ConfidenceScore, &p.Source); err != nil {
			return nil, fmt.Errorf("scan pattern: %w", err)
		}
		if err := decodeList(steps, &p.ImplementationSteps); err != nil {
			return nil, fmt.Errorf("pattern %s steps: %w", p.ID, err)
		}
		if err := decodeList(metrics, &p.SuccessMetrics); err != nil {
			return nil, fmt.Errorf("pattern %s metrics: %w", p.ID, err)
		}
		if err := decodeList(prereqs, &p.Prerequisites); err != nil {
			return nil, fmt.Errorf("pattern %s prerequisites: %w", p.ID, err)
		}
		snap.Patterns[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patterns: %w", err)
	}

	sigRows, err := s.db.Query(`SELECT id, domain, complexity, constraints, stakeholders, success_criteria
		FROM problem_signatures`)
	if err != nil {
		return nil, fmt.Errorf("query signatures: %w", err)
	}
	defer sigRows.Close()
	for sigRows.Next() {
		var id string
		var sig ProblemSignature
		var constraints, stakeholders, criteria string
		if err := sigRows.Scan(&id, &sig.Domain, &sig.Complexity, &constraints, &stakeholders, &criteria); err != nil {
			return nil, fmt.Errorf("scan signature: %w", err)
		}
		if err := decodeList(constraints, &sig.Constraints); err != nil {
			return nil, fmt.Errorf("signature %s constraints: %w", id, err)
		}
		if err := decodeList(stakeholders, &sig.Stakeholders); err != nil {
			return nil, fmt.Errorf("signature %s stakeholders: %w", id, err)
		}
		if err := decodeList(criteria, &sig.SuccessCriteria); err != nil {
			return nil, fmt.Errorf("signature %s criteria: %w", id, err)
		}
		snap.Signatures[id] = sig
	}
	if err := sigRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signatures: %w", err)
	}

	return snap, nil
}

// Save implements Store.
func (s *SQLStore) Save(snap *Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM patterns`); err != nil {
		return fmt.Errorf("clear patterns: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM problem_signatures`); err != nil {
		return fmt.Errorf("clear signatures: %w", err)
	}

	for id, p := range snap.Patterns {
		steps, err := encodeList(p.ImplementationSteps)
		if err != nil {
			return fmt.Errorf("pattern %s steps: %w", id, err)
		}
		metrics, err := encodeList(p.SuccessMetrics)
		if err != nil {
			return fmt.Errorf("pattern %s metrics: %w", id, err)
		}
		prereqs, err := encodeList(p.Prerequisites)
		if err != nil {
			return fmt.Errorf("pattern %s prerequisites: %w", id, err)
		}
		if _, err := tx.Exec(`INSERT INTO patterns(id, problem_domain, solution_approach,
			implementation_steps, success_metrics, prerequisites, connections_enhanced,
			confidence_score, source) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, p.ProblemDomain, p.SolutionApproach, steps, metrics, prereqs,
			p.ConnectionsEnhanced, p.ConfidenceScore, p.Source); err != nil {
			return fmt.Errorf("insert pattern %s: %w", id, err)
		}
	}

	for id, sig := range snap.Signatures {
		constraints, err := encodeList(sig.Constraints)
		if err != nil {
			return fmt.Errorf("signature %s constraints: %w", id, err)
		}
		stakeholders, err := encodeList(sig.Stakeholders)
		if err != nil {
			return fmt.Errorf("signature %s stakeholders: %w", id, err)
		}
		criteria, err := encodeList(sig.SuccessCriteria)
		if err != nil {
			return fmt.Errorf("signature %s criteria: %w", id, err)
		}
		if _, err := tx.Exec(`INSERT INTO problem_signatures(id, domain, complexity,
			constraints, stakeholders, success_criteria) VALUES(?, ?, ?, ?, ?, ?)`,
			id, sig.Domain, sig.Complexity, constraints, stakeholders, criteria); err != nil {
			return fmt.Errorf("insert signature %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// Close implements Store.
func (s *SQLStore) Close() error { return s.db.Close() }

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(data string, out *[]string) error {
	if data == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return err
	}
	if len(list) > 0 {
		*out = list
	}
	return nil
}
