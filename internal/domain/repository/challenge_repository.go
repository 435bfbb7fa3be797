package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cyber_champions/internal/common"
	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/platform/database"
)

type ChallengeRepository interface {
	// List never selects the flag column.
	List(ctx context.Context) ([]model.Challenge, error)
	FindFlag(ctx context.Context, id string) (string, error)
}

type sqlChallengeRepository struct {
	db *database.Store
}

func NewChallengeRepository(db *database.Store) ChallengeRepository {
	return &sqlChallengeRepository{db: db}
}

func (r *sqlChallengeRepository) List(ctx context.Context) ([]model.Challenge, error) {
	query := `SELECT id, title, COALESCE(category, ''), COALESCE(difficulty, ''), points,
	                 COALESCE(description, ''), COALESCE(hint, '')
	          FROM challenges ORDER BY points ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("challengeRepository.List: %w", err)
	}
	defer rows.Close()

	challenges := []model.Challenge{}
	for rows.Next() {
		var c model.Challenge
		if err := rows.Scan(&c.ID, &c.Title, &c.Category, &c.Difficulty, &c.Points, &c.Description, &c.Hint); err != nil {
			return nil, fmt.Errorf("challengeRepository.List scan: %w", err)
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

func (r *sqlChallengeRepository) FindFlag(ctx context.Context, id string) (string, error) {
	var flag string
	err := r.db.QueryRowContext(ctx, `SELECT flag FROM challenges WHERE id = ?`, id).Scan(&flag)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("challengeRepository.FindFlag: %w", err)
	}
	return flag, nil
}
