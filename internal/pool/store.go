// Package pool persists question pools locally. One process, one author:
// this is deliberately not multi-user storage, there is no locking and no
// concurrent-writer support.
package pool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite

	"github.com/quizforge/quizforge/internal/question"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ErrNotFound reports a pool id with no stored pool.
var ErrNotFound = errors.New("pool: not found")

type Store struct {
	db *sql.DB
}

// Open opens the pool database and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite"
		if dsn == "" {
			dsn = "file:quizforge.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx"
		if dsn == "" {
			dsn = "postgres://localhost:5432/quizforge?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("pool: unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

const schema = `
CREATE TABLE IF NOT EXISTS pools (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  questions_json TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
`

// Info summarizes one stored pool.
type Info struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Save stores a named question pool and returns its id.
func (s *Store) Save(ctx context.Context, name string, qs []question.Question) (string, error) {
	qj, err := question.MarshalList(qs)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO pools (id,name,questions_json,created_at) VALUES ($1,$2,$3,$4)`,
		id, name, string(qj), time.Now().Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

// Load returns the questions of the pool with the given id.
func (s *Store) Load(ctx context.Context, id string) ([]question.Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT questions_json FROM pools WHERE id=$1`, id)
	var qjson string
	if err := row.Scan(&qjson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return question.UnmarshalList([]byte(qjson))
}

// List returns stored pools, newest first.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,name,created_at FROM pools ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Info
	for rows.Next() {
		var in Info
		var ts int64
		if err := rows.Scan(&in.ID, &in.Name, &ts); err != nil {
			return nil, err
		}
		in.CreatedAt = time.Unix(ts, 0)
		out = append(out, in)
	}
	return out, rows.Err()
}

// Delete removes a stored pool.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pools WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
