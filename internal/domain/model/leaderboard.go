package model

type LeaderboardEntry struct {
	ID           int64  `json:"id"`
	Rank         int    `json:"rank"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Score        int    `json:"score"`
	Competitions int    `json:"competitions"`
	Country      string `json:"country"`
	Status       string `json:"status"` // online / offline
}
