package service

import (
	"context"
	"time"

	"cyber_champions/internal/common"
	"cyber_champions/internal/domain/model"
	"cyber_champions/internal/platform/database"
)

type fakeUserRepo struct {
	users   map[int64]*model.User
	nextID  int64
	updated map[int64]string
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]*model.User{}, updated: map[int64]string{}}
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return common.ErrAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) List(context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id int64, password string) error {
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Password = password
	r.updated[id] = password
	return nil
}

type fakeQuizRepo struct {
	quizzes   map[string]model.Quiz
	questions map[string][]model.QuizQuestion
}

func (r *fakeQuizRepo) List(context.Context) ([]model.Quiz, error) {
	out := []model.Quiz{}
	for _, q := range r.quizzes {
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuizRepo) FindByID(_ context.Context, id string) (*model.Quiz, error) {
	q, ok := r.quizzes[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &q, nil
}

func (r *fakeQuizRepo) ListQuestions(_ context.Context, quizID string) ([]model.QuizQuestion, error) {
	return r.questions[quizID], nil
}

func (r *fakeQuizRepo) CreateResult(context.Context, *database.Tx, *model.QuizResult) error {
	return nil
}

func (r *fakeQuizRepo) CreateCertificate(context.Context, *database.Tx, *model.Certificate) error {
	return nil
}

func (r *fakeQuizRepo) ListCertificatesByUser(context.Context, int64) ([]model.Certificate, error) {
	return nil, nil
}

type fakeCompetitionRepo struct {
	items   []model.Competition
	deleted []int64
}

func (r *fakeCompetitionRepo) List(context.Context) ([]model.Competition, error) {
	return append([]model.Competition(nil), r.items...), nil
}

func (r *fakeCompetitionRepo) Create(_ context.Context, c *model.Competition) error {
	c.ID = int64(len(r.items) + 1)
	r.items = append(r.items, *c)
	return nil
}

func (r *fakeCompetitionRepo) Delete(_ context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

// recordingCache remembers which keys were invalidated.
type recordingCache struct {
	deleted []string
}

func (c *recordingCache) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (c *recordingCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (c *recordingCache) Delete(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}
