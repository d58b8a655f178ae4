package brackets

import "github.com/Dosada05/task-battle/models"

// AssignTaskPriorities returns a copy of the tournament tasks with Winner and Priority filled in.
//
// The champion is high priority. Tasks whose furthest round is the last or the one before it
// are medium. Everyone else is low. The tournament is not modified.
func AssignTaskPriorities(t *models.Tournament) []models.Task {
	furthest := furthestRounds(t)
	maxRound := len(t.Rounds)

	out := make([]models.Task, len(t.Tasks))
	for i, task := range t.Tasks {
		isWinner := t.Winner != nil && task.ID == t.Winner.ID
		reached := furthest[task.ID]

		priority := models.PriorityLow
		switch {
		case isWinner:
			priority = models.PriorityHigh
		case reached == maxRound || reached == maxRound-1:
			priority = models.PriorityMedium
		}

		task.Winner = &isWinner
		task.Priority = &priority
		out[i] = task
	}
	return out
}

// furthestRounds maps task id to the highest round number it appeared in.
// Tasks that never appear are absent from the map, i.e. round 0.
func furthestRounds(t *models.Tournament) map[string]int {
	furthest := make(map[string]int, len(t.Tasks))
	mark := func(task *models.Task, round int) {
		if task == nil || task.ID == "" {
			return
		}
		if round > furthest[task.ID] {
			furthest[task.ID] = round
		}
	}
	for _, round := range t.Rounds {
		for i := range round.Matches {
			m := &round.Matches[i]
			mark(m.Task1, round.Round)
			mark(m.Task2, round.Round)
			mark(m.Winner, round.Round)
		}
	}
	return furthest
}
