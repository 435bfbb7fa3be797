package repository

import (
	"context"
	"fmt"

	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/platform/database"
)

type StatsRepository interface {
	Counts(ctx context.Context) (*model.PlatformStats, error)
}

type sqlStatsRepository struct {
	db *database.Store
}

func NewStatsRepository(db *database.Store) StatsRepository {
	return &sqlStatsRepository{db: db}
}

func (r *sqlStatsRepository) Counts(ctx context.Context) (*model.PlatformStats, error) {
	query := `SELECT
	            (SELECT COUNT(*) FROM users),
	            (SELECT COUNT(*) FROM competitions),
	            (SELECT COUNT(*) FROM challenges),
	            (SELECT COUNT(*) FROM quizzes),
	            (SELECT COUNT(*) FROM certificates)`
	s := &model.PlatformStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(&s.Users, &s.Competitions, &s.Challenges, &s.Quizzes, &s.Certificates)
	if err != nil {
		return nil, fmt.Errorf("statsRepository.Counts: %w", err)
	}
	return s, nil
}
