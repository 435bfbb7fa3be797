package model

type CompetitionType string

const (
	CompetitionCTF        CompetitionType = "CTF"
	CompetitionBugBounty  CompetitionType = "BUG BOUNTY"
	CompetitionCoding     CompetitionType = "CODING"
	CompetitionWebPentest CompetitionType = "WEB PENTEST"
)

func (t CompetitionType) Valid() bool {
	switch t {
	case CompetitionCTF, CompetitionBugBounty, CompetitionCoding, CompetitionWebPentest:
		return true
	}
	return false
}

// Competition is display data; Participants is not derived from registrations.
type Competition struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Type         CompetitionType `json:"type"`
	Prize        string          `json:"prize"`
	Description  string          `json:"description"`
	TimeLeft     string          `json:"timeLeft"`
	Participants int             `json:"participants"`
	Color        string          `json:"color"`
}
