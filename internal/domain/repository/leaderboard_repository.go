package repository

import (
	"context"
	"fmt"

	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/platform/database"
)

type LeaderboardRepository interface {
	List(ctx context.Context) ([]model.LeaderboardEntry, error)
}

type sqlLeaderboardRepository struct {
	db *database.Store
}

func NewLeaderboardRepository(db *database.Store) LeaderboardRepository {
	return &sqlLeaderboardRepository{db: db}
}

func (r *sqlLeaderboardRepository) List(ctx context.Context) ([]model.LeaderboardEntry, error) {
	query := `SELECT id, rank, COALESCE(name, ''), COALESCE(username, ''), score, competitions,
	                 COALESCE(country, ''), COALESCE(status, '')
	          FROM leaderboard ORDER BY rank ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("leaderboardRepository.List: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.Rank, &e.Name, &e.Username, &e.Score, &e.Competitions, &e.Country, &e.Status); err != nil {
			return nil, fmt.Errorf("leaderboardRepository.List scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
