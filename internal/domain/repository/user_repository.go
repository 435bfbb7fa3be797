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

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdatePassword(ctx context.Context, id int64, password string) error
}

type sqlUserRepository struct {
	db *database.Store
}

func NewUserRepository(db *database.Store) UserRepository {
	return &sqlUserRepository{db: db}
}

func (r *sqlUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?)`
	res, err := r.db.Execute(ctx, query, user.Username, user.Email, user.Password, user.Role)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("username or email already taken: %w", common.ErrAlreadyExists)
		}
		return fmt.Errorf("userRepository.Create: %w", err)
	}
	user.ID = res.LastInsertID
	return nil
}

const userColumns = `id, username, email, password, role, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *sqlUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("userRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *sqlUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("userRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *sqlUserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("userRepository.List: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("userRepository.List scan: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *sqlUserRepository) UpdatePassword(ctx context.Context, id int64, password string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET password = ? WHERE id = ?`, password, id); err != nil {
		return fmt.Errorf("userRepository.UpdatePassword: %w", err)
	}
	return nil
}
