package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"cyber_champions/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

// Record is one row of a read statement keyed by column name.
type Record map[string]any

// Result is what Execute hands back for any statement.
type Result struct {
	Rows         []Record
	LastInsertID int64
	RowsAffected int64
}

// Querier is satisfied by both *Store and *Tx so repositories can run
// inside or outside a transaction.
type Querier interface {
	Execute(ctx context.Context, stmt string, args ...any) (*Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// conn is the subset shared by *sql.DB and *sql.Tx.
type conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open picks the backend from configuration: DATABASE_URL wins, the
// embedded file is the fallback.
func Open(cfg *config.Config) (*Store, error) {
	if cfg.UsesPostgres() {
		return Connect(Postgres, cfg.DatabaseURL)
	}
	return Connect(SQLite, SQLiteDSN(cfg.SQLitePath))
}

func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

func Connect(dialect Dialect, dsn string) (*Store, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening %s database: %w", dialect.Name(), err)
	}

	if dialect == SQLite {
		// One writer at a time; keeps the file free of SQLITE_BUSY under load.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to %s database: %w", dialect.Name(), err)
	}

	log.Printf("Successfully connected to %s database!", dialect.Name())
	return &Store{db: db, dialect: dialect}, nil
}

func (s *Store) Dialect() Dialect { return s.dialect }

func (s *Store) Close() {
	if s != nil && s.db != nil {
		s.db.Close()
		log.Println("Database connection closed.")
	}
}

func (s *Store) Execute(ctx context.Context, stmt string, args ...any) (*Result, error) {
	return execute(ctx, s.db, s.dialect, stmt, args)
}

func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) BeginTx(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, dialect: s.dialect}, nil
}

type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

func (t *Tx) Execute(ctx context.Context, stmt string, args ...any) (*Result, error) {
	return execute(ctx, t.tx, t.dialect, stmt, args)
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.Rebind(query), args...)
}

func execute(ctx context.Context, c conn, d Dialect, stmt string, args []any) (*Result, error) {
	stmt = strings.TrimRight(strings.TrimSpace(stmt), ";")
	switch leadingKeyword(stmt) {
	case "SELECT", "WITH", "PRAGMA", "VALUES":
		rows, err := c.QueryContext(ctx, d.Rebind(stmt), args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		records, err := collectRecords(rows)
		if err != nil {
			return nil, err
		}
		return &Result{Rows: records}, nil

	case "INSERT":
		if d.ReturningID() {
			return insertReturning(ctx, c, d, stmt, args)
		}
		res, err := c.ExecContext(ctx, d.Rebind(stmt), args...)
		if err != nil {
			return nil, err
		}
		out := &Result{}
		out.RowsAffected, _ = res.RowsAffected()
		out.LastInsertID, _ = res.LastInsertId()
		return out, nil

	default:
		res, err := c.ExecContext(ctx, d.Rebind(stmt), args...)
		if err != nil {
			return nil, err
		}
		affected, _ := res.RowsAffected()
		return &Result{RowsAffected: affected}, nil
	}
}

func insertReturning(ctx context.Context, c conn, d Dialect, stmt string, args []any) (*Result, error) {
	var id any
	err := c.QueryRowContext(ctx, d.Rebind(stmt)+" RETURNING id", args...).Scan(&id)
	if err == sql.ErrNoRows {
		// ON CONFLICT DO NOTHING and friends
		return &Result{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := &Result{RowsAffected: 1}
	switch v := id.(type) {
	case int64:
		out.LastInsertID = v
	case int32:
		out.LastInsertID = int64(v)
	}
	return out, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	records := []Record{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(Record, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				rec[col] = string(b)
			} else {
				rec[col] = values[i]
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func leadingKeyword(stmt string) string {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(strings.TrimLeft(fields[0], "("))
}

// Int64 reads an integer column out of a Record regardless of how the
// driver typed it.
func (r Record) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
