package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cyber_champions/internal/domain/model"
)

type QuizState int

const (
	StateBrowsing QuizState = iota
	StateInProgress
	StateSubmitted
)

func (s QuizState) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateInProgress:
		return "in_progress"
	case StateSubmitted:
		return "submitted"
	}
	return "unknown"
}

var (
	ErrNotInProgress = errors.New("quiz is not in progress")
	ErrNotLastStep   = errors.New("quiz can only be submitted from the last question")
	ErrNoQuestions   = errors.New("quiz has no questions")
	ErrUnanswered    = errors.New("answer the current question first")
)

// QuizSubmitter sends a finished attempt; *Client implements it.
type QuizSubmitter interface {
	SubmitQuiz(ctx context.Context, userID int64, quizID string, answers map[string]int) (*QuizResult, error)
}

// QuizRun walks one quiz attempt: browsing -> in_progress(i) -> submitted.
// Answers are recorded locally and sent in a single Submit.
type QuizRun struct {
	state     QuizState
	quiz      model.Quiz
	questions []model.QuizQuestion
	index     int
	answers   map[string]int
	result    *QuizResult
}

func NewQuizRun() *QuizRun {
	return &QuizRun{state: StateBrowsing}
}

// Start selects quiz and moves to its first question. Starting again, even
// after a submission, discards the previous attempt.
func (r *QuizRun) Start(quiz model.Quiz, questions []model.QuizQuestion) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	r.quiz = quiz
	r.questions = questions
	r.index = 0
	r.answers = make(map[string]int, len(questions))
	r.result = nil
	r.state = StateInProgress
	return nil
}

func (r *QuizRun) State() QuizState { return r.state }
func (r *QuizRun) Index() int       { return r.index }
func (r *QuizRun) Total() int       { return len(r.questions) }
func (r *QuizRun) Quiz() model.Quiz { return r.quiz }

// Result is nil until the attempt has been submitted.
func (r *QuizRun) Result() *QuizResult { return r.result }

func (r *QuizRun) Current() (model.QuizQuestion, error) {
	if r.state != StateInProgress {
		return model.QuizQuestion{}, ErrNotInProgress
	}
	return r.questions[r.index], nil
}

// Answer records option for the current question, replacing any earlier choice.
func (r *QuizRun) Answer(option int) error {
	q, err := r.Current()
	if err != nil {
		return err
	}
	if option < 0 || option >= len(q.Options) {
		return fmt.Errorf("option %d out of range (0-%d)", option, len(q.Options)-1)
	}
	r.answers[strconv.FormatInt(q.ID, 10)] = option
	return nil
}

func (r *QuizRun) IsLast() bool {
	return r.state == StateInProgress && r.index == len(r.questions)-1
}

// Next advances to the following question once the current one is
// answered. It reports false on the last one.
func (r *QuizRun) Next() (bool, error) {
	if r.state != StateInProgress {
		return false, ErrNotInProgress
	}
	if !r.currentAnswered() {
		return false, ErrUnanswered
	}
	if r.IsLast() {
		return false, nil
	}
	r.index++
	return true, nil
}

func (r *QuizRun) currentAnswered() bool {
	_, ok := r.answers[strconv.FormatInt(r.questions[r.index].ID, 10)]
	return ok
}

// Answers returns a copy of the recorded answers keyed by question id.
func (r *QuizRun) Answers() map[string]int {
	out := make(map[string]int, len(r.answers))
	for k, v := range r.answers {
		out[k] = v
	}
	return out
}

func (r *QuizRun) Submit(ctx context.Context, s QuizSubmitter, userID int64) (*QuizResult, error) {
	if r.state != StateInProgress {
		return nil, ErrNotInProgress
	}
	if !r.IsLast() {
		return nil, ErrNotLastStep
	}
	if !r.currentAnswered() {
		return nil, ErrUnanswered
	}
	result, err := s.SubmitQuiz(ctx, userID, r.quiz.ID, r.Answers())
	if err != nil {
		return nil, err
	}
	r.result = result
	r.state = StateSubmitted
	return result, nil
}
