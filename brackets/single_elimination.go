package brackets

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/Dosada05/task-battle/models"
)

// node is one entrant slot while the bracket is being laid out, round by round.
// Exactly one of: task is known, the slot is a bye, or the slot waits for an earlier match.
type node struct {
	task             *models.Task
	isByePlaceholder bool
}

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Tournament, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Generate(params.Tasks), nil
}

// MatchID is the stable id of the match at the given round (1-based) and position (0-based).
func MatchID(round, position int) string {
	return fmt.Sprintf("round-%d-match-%d", round, position)
}

// BracketSize is the smallest power of two >= n, never less than 2.
func BracketSize(n int) int {
	if n <= 1 {
		return 2
	}
	return 1 << bits.Len(uint(n-1))
}

// Generate seeds tasks in input order into a single elimination bracket.
//
// Byes are resolved eagerly: a task paired with a bye wins its match right away and is
// placed into its next-round slot. Two byes meeting produce a void match (completed, no
// winner), and a task facing a void match later on advances the same way.
func Generate(tasks []models.Task) *models.Tournament {
	t := &models.Tournament{
		Tasks:  tasks,
		Rounds: []models.BracketRound{},
	}

	n := len(tasks)
	if n == 0 {
		return t
	}
	if n == 1 {
		winner := tasks[0]
		t.Winner = &winner
		return t
	}

	sizeOfFullBracket := BracketSize(n)
	numRounds := bits.TrailingZeros(uint(sizeOfFullBracket))

	currentRoundNodes := make([]node, sizeOfFullBracket)
	for i := range currentRoundNodes {
		if i < n {
			task := tasks[i]
			currentRoundNodes[i] = node{task: &task}
		} else {
			currentRoundNodes[i] = node{isByePlaceholder: true}
		}
	}

	for r := 1; r <= numRounds; r++ {
		round := models.BracketRound{
			Round:   r,
			Matches: make([]models.BracketMatch, 0, len(currentRoundNodes)/2),
		}
		nextRoundNodes := make([]node, 0, len(currentRoundNodes)/2)

		for i := 0; i < len(currentRoundNodes); i += 2 {
			node1 := currentRoundNodes[i]
			node2 := currentRoundNodes[i+1]

			bm := models.BracketMatch{
				ID:       MatchID(r, i/2),
				Round:    r,
				Position: i / 2,
				Task1:    copyTask(node1.task),
				Task2:    copyTask(node2.task),
				Status:   models.MatchStatusPending,
			}

			switch {
			case node1.isByePlaceholder && node2.isByePlaceholder:
				bm.Status = models.MatchStatusCompleted
				nextRoundNodes = append(nextRoundNodes, node{isByePlaceholder: true})

			case node2.isByePlaceholder && node1.task != nil:
				bm.Winner = copyTask(node1.task)
				bm.Status = models.MatchStatusCompleted
				nextRoundNodes = append(nextRoundNodes, node{task: node1.task})

			case node1.isByePlaceholder && node2.task != nil:
				bm.Winner = copyTask(node2.task)
				bm.Status = models.MatchStatusCompleted
				nextRoundNodes = append(nextRoundNodes, node{task: node2.task})

			default:
				// Either both sides are real, or one side still waits for an earlier match.
				// A bye facing a pending side is settled by Advance once that side is decided.
				nextRoundNodes = append(nextRoundNodes, node{})
			}

			round.Matches = append(round.Matches, bm)
		}

		t.Rounds = append(t.Rounds, round)
		currentRoundNodes = nextRoundNodes
	}

	t.Winner = finalWinner(t)
	return t
}

func copyTask(task *models.Task) *models.Task {
	if task == nil {
		return nil
	}
	c := *task
	return &c
}
