package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"cyber_champions/internal/common"
	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/platform/database"
)

type QuizRepository interface {
	List(ctx context.Context) ([]model.Quiz, error)
	FindByID(ctx context.Context, id string) (*model.Quiz, error)
	// ListQuestions returns the questions in insertion order with options decoded.
	ListQuestions(ctx context.Context, quizID string) ([]model.QuizQuestion, error)

	CreateResult(ctx context.Context, tx *database.Tx, result *model.QuizResult) error
	CreateCertificate(ctx context.Context, tx *database.Tx, cert *model.Certificate) error
	ListCertificatesByUser(ctx context.Context, userID int64) ([]model.Certificate, error)
}

type sqlQuizRepository struct {
	db *database.Store
}

func NewQuizRepository(db *database.Store) QuizRepository {
	return &sqlQuizRepository{db: db}
}

func (r *sqlQuizRepository) List(ctx context.Context) ([]model.Quiz, error) {
	query := `SELECT id, title, COALESCE(description, ''), COALESCE(category, ''), min_score
	          FROM quizzes ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("quizRepository.List: %w", err)
	}
	defer rows.Close()

	quizzes := []model.Quiz{}
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.Category, &q.MinScore); err != nil {
			return nil, fmt.Errorf("quizRepository.List scan: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func (r *sqlQuizRepository) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	query := `SELECT id, title, COALESCE(description, ''), COALESCE(category, ''), min_score
	          FROM quizzes WHERE id = ?`
	q := &model.Quiz{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.Title, &q.Description, &q.Category, &q.MinScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("quizRepository.FindByID: %w", err)
	}
	return q, nil
}

func (r *sqlQuizRepository) ListQuestions(ctx context.Context, quizID string) ([]model.QuizQuestion, error) {
	query := `SELECT id, quiz_id, question, options, correct_answer
	          FROM quiz_questions WHERE quiz_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("quizRepository.ListQuestions: %w", err)
	}
	defer rows.Close()

	questions := []model.QuizQuestion{}
	for rows.Next() {
		var (
			q       model.QuizQuestion
			options string
		)
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Question, &options, &q.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("quizRepository.ListQuestions scan: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("quizRepository.ListQuestions: question %d has malformed options: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *sqlQuizRepository) CreateResult(ctx context.Context, tx *database.Tx, result *model.QuizResult) error {
	query := `INSERT INTO user_quiz_results (user_id, quiz_id, score, passed, submitted_at) VALUES (?, ?, ?, ?, ?)`
	res, err := on(r.db, tx).Execute(ctx, query, result.UserID, result.QuizID, result.Score, result.Passed, result.Timestamp)
	if err != nil {
		return fmt.Errorf("quizRepository.CreateResult: %w", err)
	}
	result.ID = res.LastInsertID
	return nil
}

func (r *sqlQuizRepository) CreateCertificate(ctx context.Context, tx *database.Tx, cert *model.Certificate) error {
	query := `INSERT INTO certificates (id, user_id, quiz_id, issue_date, certificate_code) VALUES (?, ?, ?, ?, ?)`
	_, err := on(r.db, tx).ExecContext(ctx, query, cert.ID, cert.UserID, cert.QuizID, cert.IssueDate, cert.CertificateCode)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("certificate code already issued: %w", common.ErrAlreadyExists)
		}
		return fmt.Errorf("quizRepository.CreateCertificate: %w", err)
	}
	return nil
}

func (r *sqlQuizRepository) ListCertificatesByUser(ctx context.Context, userID int64) ([]model.Certificate, error) {
	query := `SELECT c.id, c.user_id, c.quiz_id, q.title, c.issue_date, c.certificate_code
	          FROM certificates c
	          JOIN quizzes q ON c.quiz_id = q.id
	          WHERE c.user_id = ?
	          ORDER BY c.issue_date DESC, c.id ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("quizRepository.ListCertificatesByUser: %w", err)
	}
	defer rows.Close()

	certs := []model.Certificate{}
	for rows.Next() {
		var c model.Certificate
		if err := rows.Scan(&c.ID, &c.UserID, &c.QuizID, &c.QuizTitle, &c.IssueDate, &c.CertificateCode); err != nil {
			return nil, fmt.Errorf("quizRepository.ListCertificatesByUser scan: %w", err)
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}
