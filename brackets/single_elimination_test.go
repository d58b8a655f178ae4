package brackets

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/Dosada05/task-battle/models"
)

func makeTasks(n int) []models.Task {
	tasks := make([]models.Task, n)
	for i := range tasks {
		id := fmt.Sprintf("t%d", i+1)
		tasks[i] = models.Task{ID: id, Name: "Task " + id, Description: "desc " + id}
	}
	return tasks
}

func matchAt(t *testing.T, tour *models.Tournament, round, position int) *models.BracketMatch {
	t.Helper()
	ri, mi, ok := tour.FindMatch(MatchID(round, position))
	if !ok {
		t.Fatalf("match %s not found", MatchID(round, position))
	}
	return &tour.Rounds[ri].Matches[mi]
}

func taskID(task *models.Task) string {
	if task == nil {
		return "<nil>"
	}
	return task.ID
}

func TestBracketSize(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 2}, {1, 2}, {2, 2}, {3, 4}, {4, 4}, {5, 8}, {8, 8}, {9, 16}, {17, 32},
	}
	for _, tt := range tests {
		if got := BracketSize(tt.n); got != tt.want {
			t.Errorf("BracketSize(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestGenerate_NoTasks(t *testing.T) {
	tour := Generate(nil)
	if len(tour.Rounds) != 0 {
		t.Fatalf("expected no rounds, got %d", len(tour.Rounds))
	}
	if tour.Winner != nil {
		t.Fatalf("expected no winner, got %s", tour.Winner.ID)
	}
}

func TestGenerate_SingleTaskWinsImmediately(t *testing.T) {
	tasks := makeTasks(1)
	tour := Generate(tasks)
	if len(tour.Rounds) != 0 {
		t.Fatalf("expected no rounds, got %d", len(tour.Rounds))
	}
	if tour.Winner == nil || tour.Winner.ID != "t1" {
		t.Fatalf("expected t1 to win, got %s", taskID(tour.Winner))
	}
}

func TestGenerate_Shape(t *testing.T) {
	for n := 2; n <= 33; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			tasks := makeTasks(n)
			tour := Generate(tasks)

			if !reflect.DeepEqual(tour.Tasks, tasks) {
				t.Fatalf("tasks not preserved")
			}

			size := BracketSize(n)
			wantRounds := 0
			for s := size; s > 1; s /= 2 {
				wantRounds++
			}
			if len(tour.Rounds) != wantRounds {
				t.Fatalf("rounds = %d, want %d", len(tour.Rounds), wantRounds)
			}
			if got := len(tour.Rounds[0].Matches); got != size/2 {
				t.Fatalf("round 1 matches = %d, want %d", got, size/2)
			}
			for i := 1; i < len(tour.Rounds); i++ {
				if got, want := len(tour.Rounds[i].Matches), len(tour.Rounds[i-1].Matches)/2; got != want {
					t.Fatalf("round %d matches = %d, want %d", i+1, got, want)
				}
			}
			if got := len(tour.Rounds[len(tour.Rounds)-1].Matches); got != 1 {
				t.Fatalf("final round matches = %d, want 1", got)
			}
			for ri, r := range tour.Rounds {
				if r.Round != ri+1 {
					t.Fatalf("round number = %d, want %d", r.Round, ri+1)
				}
				for pos, m := range r.Matches {
					if m.ID != MatchID(ri+1, pos) || m.Position != pos || m.Round != ri+1 {
						t.Fatalf("bad match identity %+v at round %d position %d", m, ri+1, pos)
					}
				}
			}
			if tour.Winner != nil {
				t.Fatalf("fresh bracket should not have a winner")
			}
		})
	}
}

func TestGenerate_SeedsInInputOrder(t *testing.T) {
	tour := Generate(makeTasks(4))
	want := [][2]string{{"t1", "t2"}, {"t3", "t4"}}
	for i, pair := range want {
		m := tour.Rounds[0].Matches[i]
		if taskID(m.Task1) != pair[0] || taskID(m.Task2) != pair[1] {
			t.Fatalf("match %d = (%s, %s), want (%s, %s)", i, taskID(m.Task1), taskID(m.Task2), pair[0], pair[1])
		}
		if m.Status != models.MatchStatusPending {
			t.Fatalf("match %d status = %s, want pending", i, m.Status)
		}
	}
}

func TestGenerate_ThreeTasksByePropagatesEagerly(t *testing.T) {
	tour := Generate(makeTasks(3))

	m0 := matchAt(t, tour, 1, 0)
	if taskID(m0.Task1) != "t1" || taskID(m0.Task2) != "t2" || m0.Status != models.MatchStatusPending {
		t.Fatalf("unexpected first match: %+v", m0)
	}

	bye := matchAt(t, tour, 1, 1)
	if bye.Status != models.MatchStatusCompleted || taskID(bye.Winner) != "t3" || bye.Task2 != nil {
		t.Fatalf("expected completed bye won by t3, got %+v", bye)
	}

	final := matchAt(t, tour, 2, 0)
	if final.Status != models.MatchStatusPending {
		t.Fatalf("final status = %s, want pending", final.Status)
	}
	if final.Task1 != nil || taskID(final.Task2) != "t3" {
		t.Fatalf("final slots = (%s, %s), want (<nil>, t3)", taskID(final.Task1), taskID(final.Task2))
	}
}

func TestGenerate_DoubleByeCascades(t *testing.T) {
	tour := Generate(makeTasks(5))

	void := matchAt(t, tour, 1, 3)
	if void.Status != models.MatchStatusCompleted || void.Winner != nil || void.Task1 != nil || void.Task2 != nil {
		t.Fatalf("expected void match, got %+v", void)
	}

	walkover := matchAt(t, tour, 2, 1)
	if walkover.Status != models.MatchStatusCompleted || taskID(walkover.Winner) != "t5" {
		t.Fatalf("expected t5 to walk over round 2, got %+v", walkover)
	}

	final := matchAt(t, tour, 3, 0)
	if final.Task1 != nil || taskID(final.Task2) != "t5" {
		t.Fatalf("final slots = (%s, %s), want (<nil>, t5)", taskID(final.Task1), taskID(final.Task2))
	}
}

func TestSingleEliminationGenerator(t *testing.T) {
	g := NewSingleEliminationGenerator()
	if g.GetName() != "SingleElimination" {
		t.Fatalf("unexpected name %q", g.GetName())
	}

	tour, err := g.GenerateBracket(context.Background(), GenerateBracketParams{Tasks: makeTasks(4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tour.Rounds) != 2 {
		t.Fatalf("rounds = %d, want 2", len(tour.Rounds))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.GenerateBracket(ctx, GenerateBracketParams{Tasks: makeTasks(4)}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
