package model

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

type Quiz struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	MinScore    int    `json:"min_score"`
}

type QuizQuestion struct {
	ID            int64    `json:"id"`
	QuizID        string   `json:"quiz_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"-"`
}

type QuizResult struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	QuizID    string    `json:"quiz_id"`
	Score     int       `json:"score"`
	Passed    bool      `json:"passed"`
	Timestamp time.Time `json:"timestamp"`
}

type Certificate struct {
	ID              string    `json:"id"`
	UserID          int64     `json:"user_id"`
	QuizID          string    `json:"quiz_id"`
	QuizTitle       string    `json:"quiz_title,omitempty"`
	IssueDate       time.Time `json:"issue_date"`
	CertificateCode string    `json:"certificate_code"`
}

// FileName is the download name for an exported copy of the certificate.
func (c Certificate) FileName(ext string) string {
	return fmt.Sprintf("Certificate-%s-%s.%s", slug.Make(c.QuizTitle), c.ID, ext)
}
