package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cyber_champions/internal/common"
	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/domain/repository"
	"cyber_champions/internal/platform/cache"
	"cyber_champions/internal/platform/database"
	"cyber_champions/internal/platform/metrics"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type QuizService struct {
	quizRepo    repository.QuizRepository
	userRepo    repository.UserRepository
	db          *database.Store // For transactions
	cache       cache.Cache
	cacheTTL    time.Duration
	requireAuth bool
	now         func() time.Time
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	userRepo repository.UserRepository,
	db *database.Store,
	c cache.Cache,
	ttl time.Duration,
	requireAuth bool,
) *QuizService {
	return &QuizService{
		quizRepo:    quizRepo,
		userRepo:    userRepo,
		db:          db,
		cache:       c,
		cacheTTL:    ttl,
		requireAuth: requireAuth,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type SubmitQuizRequest struct {
	UserID int64  `json:"userId" validate:"required,gt=0"`
	QuizID string `json:"quizId" validate:"required"`
	// Answers maps question id to the selected option index.
	Answers map[string]int `json:"answers"`
}

type SubmitQuizResponse struct {
	Score       int                `json:"score"`
	Passed      bool               `json:"passed"`
	Certificate *model.Certificate `json:"certificate,omitempty"`
}

func (s *QuizService) List(ctx context.Context) ([]model.Quiz, error) {
	return cache.Remember(ctx, s.cache, cache.KeyQuizzes, s.cacheTTL, s.quizRepo.List)
}

func (s *QuizService) Questions(ctx context.Context, quizID string) ([]model.QuizQuestion, error) {
	if _, err := s.findQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	questions, err := s.quizRepo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	return questions, nil
}

// Submit scores the answers, records the attempt and issues a certificate
// when the score reaches the quiz's minimum. callerID is the identity from
// a bearer token, nil when the request carried none.
func (s *QuizService) Submit(ctx context.Context, callerID *int64, req SubmitQuizRequest) (*SubmitQuizResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if callerID == nil && s.requireAuth {
		return nil, common.NewError(common.ErrUnauthorized, "Authorization token required")
	}
	if callerID != nil && *callerID != req.UserID {
		return nil, common.NewError(common.ErrForbidden, "cannot submit quiz results for another user")
	}

	quiz, err := s.findQuiz(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	questions, err := s.quizRepo.ListQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, common.NewError(common.ErrBadRequest, "quiz has no questions")
	}

	score := ScoreAnswers(questions, req.Answers)
	resp := &SubmitQuizResponse{Score: score, Passed: score >= quiz.MinScore}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	result := &model.QuizResult{
		UserID:    req.UserID,
		QuizID:    quiz.ID,
		Score:     resp.Score,
		Passed:    resp.Passed,
		Timestamp: s.now(),
	}
	if err := s.quizRepo.CreateResult(ctx, tx, result); err != nil {
		return nil, common.Errorf("failed to record quiz result: %w", err)
	}

	if resp.Passed {
		cert := &model.Certificate{
			ID:              uuid.NewString(),
			UserID:          req.UserID,
			QuizID:          quiz.ID,
			QuizTitle:       quiz.Title,
			IssueDate:       result.Timestamp,
			CertificateCode: NewCertificateCode(quiz.ID),
		}
		if err := s.quizRepo.CreateCertificate(ctx, tx, cert); err != nil {
			return nil, common.Errorf("failed to issue certificate: %w", err)
		}
		resp.Certificate = cert
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit quiz submission: %w", err)
	}

	metrics.QuizSubmissions.WithLabelValues(quiz.ID, strconv.FormatBool(resp.Passed)).Inc()
	if resp.Certificate != nil {
		metrics.CertificatesIssued.Inc()
	}
	return resp, nil
}

func (s *QuizService) Certificates(ctx context.Context, userID int64) ([]model.Certificate, error) {
	certs, err := s.quizRepo.ListCertificatesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificates: %w", err)
	}
	return certs, nil
}

func (s *QuizService) findQuiz(ctx context.Context, id string) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Quiz not found")
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}
	return quiz, nil
}

// ScoreAnswers returns round(100 * correct / total). Answers for ids that
// are not part of questions are ignored. questions must be non-empty.
func ScoreAnswers(questions []model.QuizQuestion, answers map[string]int) int {
	correct := 0
	for _, q := range questions {
		selected, ok := answers[strconv.FormatInt(q.ID, 10)]
		if ok && selected == q.CorrectAnswer {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}

// NewCertificateCode builds a human-readable unique code, e.g. CERT-Q1-3F9A0C1B7E2D.
func NewCertificateCode(quizID string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:12]
	return fmt.Sprintf("CERT-%s-%s", strings.ToUpper(slug.Make(quizID)), suffix)
}
