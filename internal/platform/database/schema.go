package database

import (
	"context"
	"fmt"
	"strings"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id {{pk}},
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at {{ts}}
	)`,
	`CREATE TABLE IF NOT EXISTS competitions (
		id {{pk}},
		title TEXT NOT NULL,
		type TEXT NOT NULL,
		prize TEXT,
		description TEXT,
		time_left TEXT,
		participants INTEGER NOT NULL DEFAULT 0,
		color TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS leaderboard (
		id {{pk}},
		rank INTEGER NOT NULL,
		name TEXT,
		username TEXT,
		score INTEGER NOT NULL DEFAULT 0,
		competitions INTEGER NOT NULL DEFAULT 0,
		country TEXT,
		status TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS challenges (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT,
		difficulty TEXT,
		points INTEGER NOT NULL DEFAULT 0,
		description TEXT,
		hint TEXT,
		flag TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quizzes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		category TEXT,
		min_score INTEGER NOT NULL DEFAULT 70
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_questions (
		id {{pk}},
		quiz_id TEXT NOT NULL REFERENCES quizzes(id),
		question TEXT NOT NULL,
		options TEXT NOT NULL,
		correct_answer INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_quiz_results (
		id {{pk}},
		user_id BIGINT NOT NULL REFERENCES users(id),
		quiz_id TEXT NOT NULL REFERENCES quizzes(id),
		score INTEGER NOT NULL,
		passed BOOLEAN NOT NULL,
		submitted_at {{ts}}
	)`,
	`CREATE TABLE IF NOT EXISTS certificates (
		id TEXT PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		quiz_id TEXT NOT NULL REFERENCES quizzes(id),
		issue_date {{ts}},
		certificate_code TEXT NOT NULL UNIQUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_questions_quiz ON quiz_questions (quiz_id)`,
	`CREATE INDEX IF NOT EXISTS idx_certificates_user ON certificates (user_id)`,
}

// SchemaStatements renders the DDL for the given backend.
func SchemaStatements(d Dialect) []string {
	r := strings.NewReplacer("{{pk}}", d.AutoIncrementKey(), "{{ts}}", d.TimestampColumn())
	out := make([]string, len(schemaStatements))
	for i, stmt := range schemaStatements {
		out[i] = r.Replace(stmt)
	}
	return out
}

// CreateSchema creates every table that does not exist yet. Safe to rerun.
func CreateSchema(ctx context.Context, s *Store) error {
	for _, stmt := range SchemaStatements(s.dialect) {
		if _, err := s.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema (%s): %w", s.dialect.Name(), err)
		}
	}
	return nil
}
