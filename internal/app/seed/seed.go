package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cyber_champions/internal/common/security"
	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/platform/database"
)

// Run creates the schema and inserts the demo rows for every empty table.
// Running it again against a populated store changes nothing.
func Run(ctx context.Context, store *database.Store) error {
	if err := database.CreateSchema(ctx, store); err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func(context.Context, *database.Store) error
	}{
		{"admin user", seedAdmin},
		{"quizzes", seedQuizzes},
		{"competitions", seedCompetitions},
		{"leaderboard", seedLeaderboard},
		{"challenges", seedChallenges},
	}
	for _, step := range steps {
		if err := step.fn(ctx, store); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	return nil
}

func count(ctx context.Context, store *database.Store, table string) (int64, error) {
	res, err := store.Execute(ctx, "SELECT COUNT(*) AS count FROM "+table)
	if err != nil {
		return 0, err
	}
	return res.Rows[0].Int64("count"), nil
}

func seedAdmin(ctx context.Context, store *database.Store) error {
	res, err := store.Execute(ctx, `SELECT id FROM users WHERE username = ?`, Admin.Username)
	if err != nil {
		return err
	}
	if len(res.Rows) > 0 {
		return nil
	}
	hash, err := security.HashPassword(Admin.Password)
	if err != nil {
		return err
	}
	_, err = store.Execute(ctx, `INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?)`,
		Admin.Username, Admin.Email, hash, model.RoleAdmin)
	if err != nil {
		return err
	}
	log.Printf("INFO: seeded admin user %q", Admin.Username)
	return nil
}

func seedQuizzes(ctx context.Context, store *database.Store) error {
	n, err := count(ctx, store, "quizzes")
	if err != nil || n > 0 {
		return err
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, qs := range Quizzes {
		q := qs.Quiz
		if _, err := tx.Execute(ctx, `INSERT INTO quizzes (id, title, description, category, min_score) VALUES (?, ?, ?, ?, ?)`,
			q.ID, q.Title, q.Description, q.Category, q.MinScore); err != nil {
			return err
		}
		for _, question := range qs.Questions {
			options, err := json.Marshal(question.Options)
			if err != nil {
				return err
			}
			if _, err := tx.Execute(ctx, `INSERT INTO quiz_questions (quiz_id, question, options, correct_answer) VALUES (?, ?, ?, ?)`,
				q.ID, question.Question, string(options), question.CorrectAnswer); err != nil {
				return err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("INFO: seeded %d quizzes", len(Quizzes))
	return nil
}

func seedCompetitions(ctx context.Context, store *database.Store) error {
	n, err := count(ctx, store, "competitions")
	if err != nil || n > 0 {
		return err
	}
	for _, c := range Competitions {
		if _, err := store.Execute(ctx, `INSERT INTO competitions (title, type, prize, description, time_left, participants, color) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.Title, c.Type, c.Prize, c.Description, c.TimeLeft, c.Participants, c.Color); err != nil {
			return err
		}
	}
	log.Printf("INFO: seeded %d competitions", len(Competitions))
	return nil
}

func seedLeaderboard(ctx context.Context, store *database.Store) error {
	n, err := count(ctx, store, "leaderboard")
	if err != nil || n > 0 {
		return err
	}
	for _, e := range Leaderboard {
		if _, err := store.Execute(ctx, `INSERT INTO leaderboard (rank, name, username, score, competitions, country, status) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.Rank, e.Name, e.Username, e.Score, e.Competitions, e.Country, e.Status); err != nil {
			return err
		}
	}
	log.Printf("INFO: seeded %d leaderboard entries", len(Leaderboard))
	return nil
}

func seedChallenges(ctx context.Context, store *database.Store) error {
	n, err := count(ctx, store, "challenges")
	if err != nil || n > 0 {
		return err
	}
	for _, c := range Challenges {
		if _, err := store.Execute(ctx, `INSERT INTO challenges (id, title, category, difficulty, points, description, hint, flag) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Title, c.Category, c.Difficulty, c.Points, c.Description, c.Hint, c.Flag); err != nil {
			return err
		}
	}
	log.Printf("INFO: seeded %d challenges", len(Challenges))
	return nil
}
