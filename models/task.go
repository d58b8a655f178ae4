package models

// Priority is derived from how far a task got in the tournament. It is never authored by the user.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Task is a single entrant of a task battle.
// Winner and Priority are nil until computed (or read back from an exported CSV).
type Task struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Winner      *bool     `json:"winner,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
}

func (t Task) clone() Task {
	c := t
	if t.Winner != nil {
		w := *t.Winner
		c.Winner = &w
	}
	if t.Priority != nil {
		p := *t.Priority
		c.Priority = &p
	}
	return c
}

func cloneTaskPtr(t *Task) *Task {
	if t == nil {
		return nil
	}
	c := t.clone()
	return &c
}
