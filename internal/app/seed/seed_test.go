package seed

import (
	"context"
	"path/filepath"
	"testing"

	"cyber_champions/internal/common/security"
	"cyber_champions/internal/platform/database"
)

func openStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Connect(database.SQLite, database.SQLiteDSN(filepath.Join(t.TempDir(), "seed.db")))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func tableCounts(t *testing.T, store *database.Store) map[string]int64 {
	t.Helper()
	counts := map[string]int64{}
	for _, table := range []string{"users", "competitions", "leaderboard", "challenges", "quizzes", "quiz_questions"} {
		n, err := count(context.Background(), store, table)
		if err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		counts[table] = n
	}
	return counts
}

func TestRunSeedsEmptyStore(t *testing.T) {
	store := openStore(t)
	if err := Run(context.Background(), store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	questions := 0
	for _, q := range Quizzes {
		questions += len(q.Questions)
	}
	want := map[string]int64{
		"users":          1,
		"competitions":   int64(len(Competitions)),
		"leaderboard":    int64(len(Leaderboard)),
		"challenges":     int64(len(Challenges)),
		"quizzes":        int64(len(Quizzes)),
		"quiz_questions": int64(questions),
	}
	got := tableCounts(t, store)
	for table, n := range want {
		if got[table] != n {
			t.Errorf("%s: expected %d rows, got %d", table, n, got[table])
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	if err := Run(ctx, store); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	before := tableCounts(t, store)

	if err := Run(ctx, store); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	after := tableCounts(t, store)

	for table, n := range before {
		if after[table] != n {
			t.Errorf("%s: row count changed from %d to %d", table, n, after[table])
		}
	}
}

func TestAdminPasswordIsStoredHashed(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	if err := Run(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	res, err := store.Execute(ctx, `SELECT password, role FROM users WHERE username = ?`, Admin.Username)
	if err != nil {
		t.Fatalf("select admin: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("expected one admin row, got %d", len(res.Rows))
	}
	stored, _ := res.Rows[0]["password"].(string)
	if stored == Admin.Password || !security.CheckPassword(Admin.Password, stored) {
		t.Errorf("admin password not stored as a matching hash")
	}
	if res.Rows[0]["role"] != "admin" {
		t.Errorf("expected admin role, got %v", res.Rows[0]["role"])
	}
}

func TestSeedQuizQ1(t *testing.T) {
	q1 := Quizzes[0]
	if q1.Quiz.ID != "q1" || q1.Quiz.MinScore != 70 || len(q1.Questions) != 5 {
		t.Errorf("quiz q1 must have min score 70 and five questions, got %+v", q1.Quiz)
	}
	for _, qs := range Quizzes {
		for _, question := range qs.Questions {
			if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
				t.Errorf("%s: correct answer index out of range for %q", qs.Quiz.ID, question.Question)
			}
		}
	}
}
