package model

type ChallengeDifficulty string

const (
	DifficultyEasy   ChallengeDifficulty = "Easy"
	DifficultyMedium ChallengeDifficulty = "Medium"
	DifficultyHard   ChallengeDifficulty = "Hard"
	DifficultyInsane ChallengeDifficulty = "Insane"
)

type Challenge struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Category    string              `json:"category"`
	Difficulty  ChallengeDifficulty `json:"difficulty"`
	Points      int                 `json:"points"`
	Description string              `json:"description"`
	Hint        string              `json:"hint"`
	Flag        string              `json:"-"` // never serialised
}
