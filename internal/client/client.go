package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cyber_champions/internal/domain/model"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type AuthResult struct {
	Success bool       `json:"success"`
	User    model.User `json:"user"`
	Token   string     `json:"token"`
}

type FlagResult struct {
	Success bool `json:"success"`
}

type QuizResult struct {
	Score       int                `json:"score"`
	Passed      bool               `json:"passed"`
	Certificate *model.Certificate `json:"certificate,omitempty"`
}

type NewCompetition struct {
	Title        string `json:"title"`
	Type         string `json:"type"`
	Prize        string `json:"prize"`
	Description  string `json:"description"`
	TimeLeft     string `json:"timeLeft"`
	Participants int    `json:"participants"`
	Color        string `json:"color"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Competitions(ctx context.Context) ([]model.Competition, error) {
	var out []model.Competition
	return out, c.do(ctx, http.MethodGet, "/api/competitions", nil, &out)
}

func (c *Client) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	var out []model.LeaderboardEntry
	return out, c.do(ctx, http.MethodGet, "/api/leaderboard", nil, &out)
}

func (c *Client) Challenges(ctx context.Context) ([]model.Challenge, error) {
	var out []model.Challenge
	return out, c.do(ctx, http.MethodGet, "/api/challenges", nil, &out)
}

func (c *Client) SubmitFlag(ctx context.Context, challengeID, flag string) (bool, error) {
	var out FlagResult
	err := c.do(ctx, http.MethodPost, "/api/challenges/submit", map[string]string{"id": challengeID, "flag": flag}, &out)
	return out.Success, err
}

func (c *Client) Quizzes(ctx context.Context) ([]model.Quiz, error) {
	var out []model.Quiz
	return out, c.do(ctx, http.MethodGet, "/api/quizzes", nil, &out)
}

func (c *Client) Questions(ctx context.Context, quizID string) ([]model.QuizQuestion, error) {
	var out []model.QuizQuestion
	return out, c.do(ctx, http.MethodGet, "/api/quizzes/"+url.PathEscape(quizID)+"/questions", nil, &out)
}

func (c *Client) SubmitQuiz(ctx context.Context, userID int64, quizID string, answers map[string]int) (*QuizResult, error) {
	body := map[string]any{"userId": userID, "quizId": quizID, "answers": answers}
	var out QuizResult
	if err := c.do(ctx, http.MethodPost, "/api/quizzes/submit", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Certificates(ctx context.Context, userID int64) ([]model.Certificate, error) {
	var out []model.Certificate
	return out, c.do(ctx, http.MethodGet, "/api/users/"+strconv.FormatInt(userID, 10)+"/certificates", nil, &out)
}

func (c *Client) Stats(ctx context.Context) (*model.PlatformStats, error) {
	var out model.PlatformStats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Ask(ctx context.Context, message string) (string, error) {
	var out struct {
		Reply string `json:"reply"`
	}
	err := c.do(ctx, http.MethodPost, "/api/assistant/chat", map[string]string{"message": message}, &out)
	return out.Reply, err
}

func (c *Client) AdminUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	return out, c.do(ctx, http.MethodGet, "/api/admin/users", nil, &out)
}

func (c *Client) AddCompetition(ctx context.Context, comp NewCompetition) (int64, error) {
	var out struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/api/admin/competitions", comp, &out)
	return out.ID, err
}

func (c *Client) DeleteCompetition(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/competitions/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
