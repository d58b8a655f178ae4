package models

// Tournament is the aggregate root of a task battle.
type Tournament struct {
	Tasks  []Task         `json:"tasks"`
	Rounds []BracketRound `json:"rounds"`
	Winner *Task          `json:"winner"`
}

// Clone returns a deep copy, so updates on the result never leak into t.
func (t *Tournament) Clone() *Tournament {
	if t == nil {
		return nil
	}
	c := &Tournament{
		Tasks:  make([]Task, len(t.Tasks)),
		Rounds: make([]BracketRound, len(t.Rounds)),
		Winner: cloneTaskPtr(t.Winner),
	}
	for i, task := range t.Tasks {
		c.Tasks[i] = task.clone()
	}
	for i, r := range t.Rounds {
		matches := make([]BracketMatch, len(r.Matches))
		for j, m := range r.Matches {
			matches[j] = m.clone()
		}
		c.Rounds[i] = BracketRound{Round: r.Round, Matches: matches}
	}
	return c
}

// FindMatch returns the round and match indexes of the match with the given id.
func (t *Tournament) FindMatch(matchID string) (roundIdx, matchIdx int, ok bool) {
	for ri := range t.Rounds {
		for mi := range t.Rounds[ri].Matches {
			if t.Rounds[ri].Matches[mi].ID == matchID {
				return ri, mi, true
			}
		}
	}
	return 0, 0, false
}

// FinalMatch returns the sole match of the last round, or nil when there are no rounds.
func (t *Tournament) FinalMatch() *BracketMatch {
	if len(t.Rounds) == 0 {
		return nil
	}
	last := &t.Rounds[len(t.Rounds)-1]
	if len(last.Matches) == 0 {
		return nil
	}
	return &last.Matches[0]
}

// Completed reports whether the tournament has a champion.
func (t *Tournament) Completed() bool {
	return t.Winner != nil
}
