package database

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Dialect captures everything that differs between the embedded and the
// networked backend. Statements are always written with `?` placeholders.
type Dialect interface {
	Name() string
	DriverName() string
	Rebind(query string) string
	AutoIncrementKey() string
	TimestampColumn() string
	// ReturningID reports whether inserted ids are fetched with RETURNING
	// instead of the driver's LastInsertId.
	ReturningID() bool
	IsUniqueViolation(err error) bool
}

var (
	SQLite   Dialect = sqliteDialect{}
	Postgres Dialect = postgresDialect{}
)

type sqliteDialect struct{}

func (sqliteDialect) Name() string               { return "sqlite" }
func (sqliteDialect) DriverName() string         { return "sqlite3" }
func (sqliteDialect) Rebind(query string) string { return query }
func (sqliteDialect) AutoIncrementKey() string   { return "INTEGER PRIMARY KEY AUTOINCREMENT" }
func (sqliteDialect) TimestampColumn() string    { return "DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP" }
func (sqliteDialect) ReturningID() bool          { return false }

func (sqliteDialect) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

type postgresDialect struct{}

func (postgresDialect) Name() string             { return "postgres" }
func (postgresDialect) DriverName() string       { return "pgx" }
func (postgresDialect) AutoIncrementKey() string { return "BIGSERIAL PRIMARY KEY" }
func (postgresDialect) TimestampColumn() string {
	return "TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP"
}
func (postgresDialect) ReturningID() bool { return true }

func (postgresDialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Rebind turns `?` placeholders into `$1, $2, ...`, leaving quoted text alone.
func (postgresDialect) Rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, ch := range query {
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteRune(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// IsUniqueViolation reports whether err is a unique-key clash on either backend.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return SQLite.IsUniqueViolation(err) || Postgres.IsUniqueViolation(err)
}
