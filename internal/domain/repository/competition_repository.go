package repository

import (
	"context"
	"fmt"

	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/platform/database"
)

type CompetitionRepository interface {
	List(ctx context.Context) ([]model.Competition, error)
	Create(ctx context.Context, c *model.Competition) error
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id int64) error
}

type sqlCompetitionRepository struct {
	db *database.Store
}

func NewCompetitionRepository(db *database.Store) CompetitionRepository {
	return &sqlCompetitionRepository{db: db}
}

func (r *sqlCompetitionRepository) List(ctx context.Context) ([]model.Competition, error) {
	query := `SELECT id, title, type, COALESCE(prize, ''), COALESCE(description, ''),
	                 COALESCE(time_left, ''), participants, COALESCE(color, '')
	          FROM competitions ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("competitionRepository.List: %w", err)
	}
	defer rows.Close()

	competitions := []model.Competition{}
	for rows.Next() {
		var c model.Competition
		if err := rows.Scan(&c.ID, &c.Title, &c.Type, &c.Prize, &c.Description, &c.TimeLeft, &c.Participants, &c.Color); err != nil {
			return nil, fmt.Errorf("competitionRepository.List scan: %w", err)
		}
		competitions = append(competitions, c)
	}
	return competitions, rows.Err()
}

func (r *sqlCompetitionRepository) Create(ctx context.Context, c *model.Competition) error {
	query := `INSERT INTO competitions (title, type, prize, description, time_left, participants, color)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.Execute(ctx, query, c.Title, c.Type, c.Prize, c.Description, c.TimeLeft, c.Participants, c.Color)
	if err != nil {
		return fmt.Errorf("competitionRepository.Create: %w", err)
	}
	c.ID = res.LastInsertID
	return nil
}

func (r *sqlCompetitionRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Execute(ctx, `DELETE FROM competitions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("competitionRepository.Delete: %w", err)
	}
	return nil
}
