package model

type PlatformStats struct {
	Users        int64 `json:"users"`
	Competitions int64 `json:"competitions"`
	Challenges   int64 `json:"challenges"`
	Quizzes      int64 `json:"quizzes"`
	Certificates int64 `json:"certificates"`
}
