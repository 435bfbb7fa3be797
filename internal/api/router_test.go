package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"cyber_champions/internal/api/middleware"
	"cyber_champions/internal/app/seed"
	"cyber_champions/internal/app/service"
	"cyber_champions/internal/common/security"
	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/domain/repository"
	"cyber_champions/internal/platform/assistant"
	"cyber_champions/internal/platform/cache"
	"cyber_champions/internal/platform/database"
)

type stubResponder struct{}

func (stubResponder) Reply(_ context.Context, message string) (string, error) {
	return "echo: " + message, nil
}

type testServer struct {
	handler http.Handler
	store   *database.Store
}

func newTestServer(t *testing.T, opts Options, responder assistant.Responder) *testServer {
	t.Helper()
	security.InitJWT([]byte("router-test-secret"), time.Hour)

	store, err := database.Connect(database.SQLite, database.SQLiteDSN(filepath.Join(t.TempDir(), "api.db")))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(store.Close)
	if err := seed.Run(context.Background(), store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	userRepo := repository.NewUserRepository(store)
	noop := cache.Noop{}
	services := Services{
		Auth:         service.NewAuthService(userRepo),
		Competitions: service.NewCompetitionService(repository.NewCompetitionRepository(store), noop, time.Minute),
		Leaderboard:  service.NewLeaderboardService(repository.NewLeaderboardRepository(store), noop, time.Minute),
		Challenges:   service.NewChallengeService(repository.NewChallengeRepository(store), noop, time.Minute),
		Quizzes:      service.NewQuizService(repository.NewQuizRepository(store), userRepo, store, noop, time.Minute, opts.EnforceAuth),
		Admin:        service.NewAdminService(userRepo),
		Stats:        service.NewStatsService(repository.NewStatsRepository(store)),
		Assistant:    service.NewAssistantService(responder),
	}
	return &testServer{handler: NewRouter(services, opts), store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) countRows(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	if err := s.store.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func (s *testServer) register(t *testing.T, username string) service.AuthResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cret-pass",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	return decode[service.AuthResponse](t, rec)
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t, Options{}, nil)

	resp := srv.register(t, "alice")
	if !resp.Success || resp.User == nil || resp.Token == "" {
		t.Fatalf("unexpected register response: %+v", resp)
	}
	if resp.User.Role != model.RoleUser {
		t.Errorf("expected role %q, got %q", model.RoleUser, resp.User.Role)
	}

	dup := srv.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "whatever1",
	}, "")
	if dup.Code != http.StatusBadRequest {
		t.Errorf("duplicate register: expected 400, got %d", dup.Code)
	}
	if strings.Contains(dup.Body.String(), "UNIQUE") {
		t.Errorf("duplicate register leaked driver error: %s", dup.Body.String())
	}
	emailClash := srv.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice2", "email": "alice@example.com", "password": "whatever1",
	}, "")
	if emailClash.Code != http.StatusBadRequest {
		t.Errorf("duplicate email: expected 400, got %d", emailClash.Code)
	}
	// seeded admin plus alice
	if n := srv.countRows(t, "users"); n != 2 {
		t.Errorf("expected 2 users after rejected duplicates, got %d", n)
	}

	ok := srv.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "alice", "password": "s3cret-pass"}, "")
	if ok.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", ok.Code, ok.Body.String())
	}
	login := decode[service.AuthResponse](t, ok)
	if login.User.Username != "alice" || login.Token == "" {
		t.Errorf("unexpected login response: %+v", login)
	}
	if strings.Contains(ok.Body.String(), "s3cret-pass") {
		t.Error("login response contains the password")
	}

	bad := srv.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "alice", "password": "nope"}, "")
	if bad.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", bad.Code)
	}
	admin := srv.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": seed.Admin.Username, "password": seed.Admin.Password}, "")
	if admin.Code != http.StatusOK {
		t.Fatalf("seeded admin login: expected 200, got %d", admin.Code)
	}
	if got := decode[service.AuthResponse](t, admin).User.Role; got != model.RoleAdmin {
		t.Errorf("seeded admin role = %q", got)
	}
}

func TestChallengesHideFlags(t *testing.T) {
	srv := newTestServer(t, Options{}, nil)

	rec := srv.do(t, http.MethodGet, "/api/challenges", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var raw []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(raw) != len(seed.Challenges) {
		t.Fatalf("expected %d challenges, got %d", len(seed.Challenges), len(raw))
	}
	for _, c := range raw {
		if _, ok := c["flag"]; ok {
			t.Errorf("challenge %v exposes its flag", c["id"])
		}
	}
}

func TestSubmitFlag(t *testing.T) {
	srv := newTestServer(t, Options{}, nil)
	challenge := seed.Challenges[0]

	tests := []struct {
		name       string
		id, flag   string
		wantStatus int
		wantOK     bool
	}{
		{"correct", challenge.ID, challenge.Flag, http.StatusOK, true},
		{"wrong", challenge.ID, "CTF{nope}", http.StatusOK, false},
		{"case differs", challenge.ID, strings.ToLower(challenge.Flag), http.StatusOK, false},
		{"unknown challenge", "does-not-exist", "x", http.StatusNotFound, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/api/challenges/submit", map[string]string{"id": tc.id, "flag": tc.flag}, "")
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d (%s)", tc.wantStatus, rec.Code, rec.Body.String())
			}
			if rec.Code == http.StatusOK {
				if got := decode[service.SubmitFlagResponse](t, rec).Success; got != tc.wantOK {
					t.Errorf("success = %v, want %v", got, tc.wantOK)
				}
			}
		})
	}
}

// answersFor answers the first `correct` questions of quiz right and the
// rest wrong.
func answersFor(t *testing.T, srv *testServer, quiz seed.QuizSeed, correct int) map[string]int {
	t.Helper()
	rec := srv.do(t, http.MethodGet, "/api/quizzes/"+quiz.Quiz.ID+"/questions", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("questions: expected 200, got %d", rec.Code)
	}
	questions := decode[[]model.QuizQuestion](t, rec)
	if len(questions) != len(quiz.Questions) {
		t.Fatalf("expected %d questions, got %d", len(quiz.Questions), len(questions))
	}
	if strings.Contains(rec.Body.String(), "correct_answer") {
		t.Error("questions expose the answer key")
	}

	answers := map[string]int{}
	for i, q := range questions {
		key := quiz.Questions[i]
		if key.Question != q.Question {
			t.Fatalf("question %d out of order: %q", i, q.Question)
		}
		answer := key.CorrectAnswer
		if i >= correct {
			answer = (key.CorrectAnswer + 1) % len(key.Options)
		}
		answers[strconv.FormatInt(q.ID, 10)] = answer
	}
	return answers
}

func TestQuizSubmissionIssuesCertificate(t *testing.T) {
	srv := newTestServer(t, Options{}, nil)
	user := srv.register(t, "bob")
	q1 := seed.Quizzes[0]

	rec := srv.do(t, http.MethodPost, "/api/quizzes/submit", map[string]any{
		"userId":  user.User.ID,
		"quizId":  q1.Quiz.ID,
		"answers": answersFor(t, srv, q1, 4),
	}, user.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	result := decode[service.SubmitQuizResponse](t, rec)
	if result.Score != 80 || !result.Passed {
		t.Fatalf("expected score 80 passed, got %+v", result)
	}
	if result.Certificate == nil || !strings.HasPrefix(result.Certificate.CertificateCode, "CERT-Q1-") {
		t.Fatalf("expected a certificate, got %+v", result.Certificate)
	}

	certs := srv.do(t, http.MethodGet, "/api/users/"+strconv.FormatInt(user.User.ID, 10)+"/certificates", nil, "")
	if certs.Code != http.StatusOK {
		t.Fatalf("certificates: expected 200, got %d", certs.Code)
	}
	list := decode[[]model.Certificate](t, certs)
	if len(list) != 1 {
		t.Fatalf("expected 1 certificate, got %d", len(list))
	}
	if list[0].QuizTitle != q1.Quiz.Title || list[0].CertificateCode != result.Certificate.CertificateCode {
		t.Errorf("unexpected certificate: %+v", list[0])
	}
}

func TestQuizSubmissionFailingScore(t *testing.T) {
	srv := newTestServer(t, Options{}, nil)
	user := srv.register(t, "carol")
	q1 := seed.Quizzes[0]

	rec := srv.do(t, http.MethodPost, "/api/quizzes/submit", map[string]any{
		"userId":  user.User.ID,
		"quizId":  q1.Quiz.ID,
		"answers": answersFor(t, srv, q1, 3),
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	result := decode[service.SubmitQuizResponse](t, rec)
	if result.Score != 60 || result.Passed || result.Certificate != nil {
		t.Errorf("expected 60 without certificate, got %+v", result)
	}

	var results int64
	if err := srv.store.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM user_quiz_results WHERE user_id = ?", user.User.ID).Scan(&results); err != nil {
		t.Fatalf("count results: %v", err)
	}
	if results != 1 {
		t.Errorf("expected the attempt to be recorded, got %d rows", results)
	}
}

func TestQuizSubmissionErrors(t *testing.T) {
	srv := newTestServer(t, Options{}, nil)
	alice := srv.register(t, "alice")
	bob := srv.register(t, "bob")

	tests := []struct {
		name  string
		body  map[string]any
		token string
		want  int
	}{
		{"token for another user", map[string]any{"userId": bob.User.ID, "quizId": "q1", "answers": map[string]int{}}, alice.Token, http.StatusForbidden},
		{"unknown quiz", map[string]any{"userId": alice.User.ID, "quizId": "nope", "answers": map[string]int{}}, "", http.StatusNotFound},
		{"unknown user", map[string]any{"userId": 9999, "quizId": "q1", "answers": map[string]int{}}, "", http.StatusNotFound},
		{"missing quiz id", map[string]any{"userId": alice.User.ID}, "", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/api/quizzes/submit", tc.body, tc.token)
			if rec.Code != tc.want {
				t.Errorf("expected %d, got %d (%s)", tc.want, rec.Code, rec.Body.String())
			}
		})
	}

	missing := srv.do(t, http.MethodGet, "/api/quizzes/nope/questions", nil, "")
	if missing.Code != http.StatusNotFound {
		t.Errorf("questions for unknown quiz: expected 404, got %d", missing.Code)
	}
}

func TestAdminCompetitions(t *testing.T) {
	srv := newTestServer(t, Options{}, nil)

	created := srv.do(t, http.MethodPost, "/api/admin/competitions", map[string]any{
		"title":        "Kuzgi CTF",
		"type":         "CTF",
		"prize":        "$1,000",
		"description":  "Test musobaqasi",
		"timeLeft":     "01:00:00",
		"participants": 0,
		"color":        "#00ff41",
	}, "")
	if created.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d (%s)", created.Code, created.Body.String())
	}
	resp := decode[service.CreateCompetitionResponse](t, created)
	if !resp.Success || resp.ID == 0 {
		t.Fatalf("unexpected create response: %+v", resp)
	}

	list := decode[[]model.Competition](t, srv.do(t, http.MethodGet, "/api/competitions", nil, ""))
	if len(list) != len(seed.Competitions)+1 || list[len(list)-1].TimeLeft != "01:00:00" {
		t.Fatalf("new competition not listed: %+v", list)
	}

	id := strconv.FormatInt(resp.ID, 10)
	for _, path := range []string{"/api/admin/competitions/" + id, "/api/admin/competitions/" + id, "/api/admin/competitions/424242"} {
		rec := srv.do(t, http.MethodDelete, path, nil, "")
		if rec.Code != http.StatusOK {
			t.Errorf("DELETE %s: expected 200, got %d", path, rec.Code)
		}
	}
	if got := decode[[]model.Competition](t, srv.do(t, http.MethodGet, "/api/competitions", nil, "")); len(got) != len(seed.Competitions) {
		t.Errorf("expected %d competitions after delete, got %d", len(seed.Competitions), len(got))
	}

	if rec := srv.do(t, http.MethodDelete, "/api/admin/competitions/abc", nil, ""); rec.Code != http.StatusOK {
		t.Errorf("DELETE non-numeric id: expected 200, got %d", rec.Code)
	}
	if n := srv.countRows(t, "competitions"); n != int64(len(seed.Competitions)) {
		t.Errorf("non-numeric delete removed rows: %d left", n)
	}

	invalid := srv.do(t, http.MethodPost, "/api/admin/competitions", map[string]any{"title": "x", "type": "ROBOTICS"}, "")
	if invalid.Code != http.StatusBadRequest {
		t.Errorf("invalid type: expected 400, got %d", invalid.Code)
	}
}

func TestAdminRoutesEnforceAuth(t *testing.T) {
	srv := newTestServer(t, Options{EnforceAuth: true}, nil)
	user := srv.register(t, "mallory")
	adminLogin := srv.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": seed.Admin.Username, "password": seed.Admin.Password}, "")
	admin := decode[service.AuthResponse](t, adminLogin)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"regular user", user.Token, http.StatusForbidden},
		{"admin", admin.Token, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, "/api/admin/users", nil, tc.token)
			if rec.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, rec.Code)
			}
			if rec.Code == http.StatusOK && strings.Contains(rec.Body.String(), "password") {
				t.Error("user listing exposes passwords")
			}
		})
	}

	anon := srv.do(t, http.MethodPost, "/api/quizzes/submit", map[string]any{"userId": user.User.ID, "quizId": "q1", "answers": map[string]int{}}, "")
	if anon.Code != http.StatusUnauthorized {
		t.Errorf("anonymous quiz submission with enforced auth: expected 401, got %d", anon.Code)
	}
}

func TestStatsAndLeaderboard(t *testing.T) {
	srv := newTestServer(t, Options{}, nil)
	srv.register(t, "dave")

	stats := decode[model.PlatformStats](t, srv.do(t, http.MethodGet, "/api/stats", nil, ""))
	want := model.PlatformStats{
		Users:        2,
		Competitions: int64(len(seed.Competitions)),
		Challenges:   int64(len(seed.Challenges)),
		Quizzes:      int64(len(seed.Quizzes)),
	}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	board := decode[[]model.LeaderboardEntry](t, srv.do(t, http.MethodGet, "/api/leaderboard", nil, ""))
	for i := 1; i < len(board); i++ {
		if board[i-1].Rank > board[i].Rank {
			t.Fatalf("leaderboard not ordered by rank: %+v", board)
		}
	}
}

func TestAssistantChat(t *testing.T) {
	disabled := newTestServer(t, Options{}, nil)
	if rec := disabled.do(t, http.MethodPost, "/api/assistant/chat", map[string]string{"message": "salom"}, ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("without responder: expected 503, got %d", rec.Code)
	}

	enabled := newTestServer(t, Options{}, stubResponder{})
	rec := enabled.do(t, http.MethodPost, "/api/assistant/chat", map[string]string{"message": "salom"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decode[service.ChatResponse](t, rec).Reply; got != "echo: salom" {
		t.Errorf("reply = %q", got)
	}
	if rec := enabled.do(t, http.MethodPost, "/api/assistant/chat", map[string]string{"message": "  "}, ""); rec.Code != http.StatusBadRequest {
		t.Errorf("empty message: expected 400, got %d", rec.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	srv := newTestServer(t, Options{RateLimiter: middleware.NewRateLimiter(0.001, 1)}, nil)
	body := map[string]string{"username": "nobody", "password": "x"}

	if rec := srv.do(t, http.MethodPost, "/api/auth/login", body, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("first attempt: expected 401, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodPost, "/api/auth/login", body, ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second attempt: expected 429, got %d", rec.Code)
	}
}

func TestHealthAndFallbacks(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>spa</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := newTestServer(t, Options{StaticDir: dir}, nil)

	if rec := srv.do(t, http.MethodGet, "/health", nil, ""); rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("health: %d %q", rec.Code, rec.Body.String())
	}
	if rec := srv.do(t, http.MethodGet, "/metrics", nil, ""); rec.Code != http.StatusOK {
		t.Errorf("metrics: expected 200, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/quizzes/q1", nil, ""); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "spa") {
		t.Errorf("spa fallback: %d %q", rec.Code, rec.Body.String())
	}
	if rec := srv.do(t, http.MethodGet, "/api/nothing-here", nil, ""); rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "error") {
		t.Errorf("unknown api route: %d %q", rec.Code, rec.Body.String())
	}
	if rec := srv.do(t, http.MethodGet, "/api/competitions", nil, "not-a-jwt"); rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: expected 401, got %d", rec.Code)
	}
}

func loginWithForwardedFor(t *testing.T, srv *testServer, forwarded string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"nobody","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwarded)
	req.RemoteAddr = "203.0.113.7:40000"
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitIgnoresForwardedHeaders(t *testing.T) {
	srv := newTestServer(t, Options{RateLimiter: middleware.NewRateLimiter(0.001, 2)}, nil)

	blocked := 0
	for i := 0; i < 20; i++ {
		if loginWithForwardedFor(t, srv, "10.0.0."+strconv.Itoa(i)) == http.StatusTooManyRequests {
			blocked++
		}
	}
	if blocked != 18 {
		t.Errorf("expected 18 of 20 requests from one socket to be limited, got %d", blocked)
	}
}

func TestRateLimitTrustsProxyWhenConfigured(t *testing.T) {
	srv := newTestServer(t, Options{RateLimiter: middleware.NewRateLimiter(0.001, 1), TrustProxy: true}, nil)

	if code := loginWithForwardedFor(t, srv, "198.51.100.1"); code != http.StatusUnauthorized {
		t.Fatalf("first client: expected 401, got %d", code)
	}
	if code := loginWithForwardedFor(t, srv, "198.51.100.2"); code != http.StatusUnauthorized {
		t.Errorf("second client behind the proxy: expected 401, got %d", code)
	}
	if code := loginWithForwardedFor(t, srv, "198.51.100.1"); code != http.StatusTooManyRequests {
		t.Errorf("repeat client behind the proxy: expected 429, got %d", code)
	}
}
