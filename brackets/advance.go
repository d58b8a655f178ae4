package brackets

import (
	"fmt"

	"github.com/Dosada05/task-battle/models"
)

// Advance records winner as the result of matchID and moves it into the next round.
//
// The input tournament is left untouched; the returned tournament is a full copy with the
// update applied. The winner must be one of the two tasks of a match that is not yet completed.
func Advance(t *models.Tournament, matchID string, winner models.Task) (*models.Tournament, error) {
	ri, mi, ok := t.FindMatch(matchID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	if err := checkPlayable(&t.Rounds[ri].Matches[mi]); err != nil {
		return nil, err
	}

	match := &t.Rounds[ri].Matches[mi]
	var decided *models.Task
	switch {
	case match.Task1.ID == winner.ID:
		decided = match.Task1
	case match.Task2.ID == winner.ID:
		decided = match.Task2
	default:
		return nil, fmt.Errorf("%w: task %s in match %s", ErrInvalidWinner, winner.ID, matchID)
	}

	updated := t.Clone()
	complete(updated, ri, mi, copyTask(decided))
	updated.Winner = finalWinner(updated)
	return updated, nil
}

// StartMatch marks a ready match as in progress. Starting a match twice is not an error.
func StartMatch(t *models.Tournament, matchID string) (*models.Tournament, error) {
	ri, mi, ok := t.FindMatch(matchID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	if err := checkPlayable(&t.Rounds[ri].Matches[mi]); err != nil {
		return nil, err
	}

	updated := t.Clone()
	updated.Rounds[ri].Matches[mi].Status = models.MatchStatusInProgress
	return updated, nil
}

func checkPlayable(m *models.BracketMatch) error {
	if m.Status == models.MatchStatusCompleted {
		return fmt.Errorf("%w: %s", ErrMatchCompleted, m.ID)
	}
	if m.Task1 == nil || m.Task2 == nil {
		return fmt.Errorf("%w: %s", ErrMatchNotReady, m.ID)
	}
	return nil
}

// complete closes match (ri, mi) with winner and walks the winner forward. The walk keeps
// going while the destination match turns out to be a bye, i.e. its other feeder was void.
func complete(t *models.Tournament, ri, mi int, winner *models.Task) {
	for {
		match := &t.Rounds[ri].Matches[mi]
		match.Winner = winner
		match.Status = models.MatchStatusCompleted

		if ri+1 >= len(t.Rounds) {
			return
		}

		nextIdx := match.Position / 2
		next := &t.Rounds[ri+1].Matches[nextIdx]
		if match.Position%2 == 0 {
			next.Task1 = copyTask(winner)
		} else {
			next.Task2 = copyTask(winner)
		}

		sibling := &t.Rounds[ri].Matches[match.Position^1]
		if !isVoid(sibling) {
			return
		}
		ri, mi = ri+1, nextIdx
		winner = copyTask(winner)
	}
}

// isVoid reports a match that was decided with nobody in it (two byes).
func isVoid(m *models.BracketMatch) bool {
	return m.Status == models.MatchStatusCompleted && m.Winner == nil
}

func finalWinner(t *models.Tournament) *models.Task {
	final := t.FinalMatch()
	if final == nil || final.Winner == nil {
		return nil
	}
	return copyTask(final.Winner)
}
