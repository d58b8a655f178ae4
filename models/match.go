package models

type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "pending"
	MatchStatusInProgress MatchStatus = "in-progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

// BracketMatch is one slot of a round. Task1/Task2 are nil while undetermined or for a bye.
type BracketMatch struct {
	ID       string      `json:"id"`
	Round    int         `json:"round"`
	Position int         `json:"position"`
	Task1    *Task       `json:"task1"`
	Task2    *Task       `json:"task2"`
	Winner   *Task       `json:"winner"`
	Status   MatchStatus `json:"status"`
}

// Ready reports whether both sides are known and the match still needs a decision.
func (m *BracketMatch) Ready() bool {
	return m.Task1 != nil && m.Task2 != nil && m.Status != MatchStatusCompleted
}

// HasTask reports whether a task with the given id sits in one of the two slots.
func (m *BracketMatch) HasTask(id string) bool {
	return (m.Task1 != nil && m.Task1.ID == id) || (m.Task2 != nil && m.Task2.ID == id)
}

func (m BracketMatch) clone() BracketMatch {
	c := m
	c.Task1 = cloneTaskPtr(m.Task1)
	c.Task2 = cloneTaskPtr(m.Task2)
	c.Winner = cloneTaskPtr(m.Winner)
	return c
}

type BracketRound struct {
	Round   int            `json:"round"`
	Matches []BracketMatch `json:"matches"`
}
