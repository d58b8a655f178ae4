package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/Dosada05/task-battle/brackets"
	"github.com/Dosada05/task-battle/models"
	"github.com/Dosada05/task-battle/storage"
	"github.com/Dosada05/task-battle/taskcsv"
)

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, message.(brackets.WebSocketMessage))
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.messages))
	for i, m := range b.messages {
		out[i] = m.Type
	}
	return out
}

type memoryUploader struct {
	objects map[string]string
	err     error
}

func (u *memoryUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.objects[key] = string(data)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) Delete(ctx context.Context, key string) error {
	delete(u.objects, key)
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func newTestService(uploader storage.FileUploader) (TournamentService, *recordingBroadcaster) {
	b := &recordingBroadcaster{}
	return NewTournamentService(brackets.NewSingleEliminationGenerator(), b, uploader, nil), b
}

func threeTasks() []models.Task {
	return []models.Task{
		{ID: "a", Name: "A", Description: "first"},
		{ID: "b", Name: "B", Description: "second"},
		{ID: "c", Name: "C", Description: "third"},
	}
}

func TestCreateAndGet(t *testing.T) {
	svc, b := newTestService(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, threeTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an id")
	}
	if len(created.Tournament.Rounds) != 2 {
		t.Fatalf("rounds = %d, want 2", len(created.Tournament.Rounds))
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != created.ID || len(got.Tournament.Tasks) != 3 {
		t.Fatalf("unexpected record %+v", got)
	}

	// callers get copies
	got.Tournament.Rounds[0].Matches[0].Status = models.MatchStatusCompleted
	again, _ := svc.Get(ctx, created.ID)
	if again.Tournament.Rounds[0].Matches[0].Status != models.MatchStatusPending {
		t.Fatal("stored tournament was modified through a returned record")
	}

	if types := b.types(); len(types) != 1 || types[0] != brackets.MessageBracketCreated {
		t.Fatalf("broadcasts = %v", types)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(nil)
	tests := []struct {
		name  string
		tasks []models.Task
		want  error
	}{
		{"missing id", []models.Task{{ID: "a"}, {ID: " "}}, ErrTaskIDRequired},
		{"duplicate id", []models.Task{{ID: "a"}, {ID: "a"}}, ErrDuplicateTaskID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.tasks)
			if !errors.Is(err, tt.want) || !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreate_EmptyAndSingle(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	empty, err := svc.Create(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.Tournament.Winner != nil || len(empty.Tournament.Rounds) != 0 {
		t.Fatalf("unexpected empty tournament %+v", empty.Tournament)
	}

	single, err := svc.Create(ctx, threeTasks()[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if single.Tournament.Winner == nil || single.Tournament.Winner.ID != "a" {
		t.Fatal("single task should win immediately")
	}
}

func TestAdvanceToCompletion(t *testing.T) {
	svc, b := newTestService(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, threeTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.StartMatch(ctx, created.ID, brackets.MatchID(1, 0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Advance(ctx, created.ID, brackets.MatchID(1, 0), "b"); err != nil {
		t.Fatalf("advance round 1: %v", err)
	}
	done, err := svc.Advance(ctx, created.ID, brackets.MatchID(2, 0), "c")
	if err != nil {
		t.Fatalf("advance final: %v", err)
	}
	if done.Tournament.Winner == nil || done.Tournament.Winner.ID != "c" {
		t.Fatalf("winner = %+v, want c", done.Tournament.Winner)
	}

	want := []string{
		brackets.MessageBracketCreated,
		brackets.MessageBracketUpdated,
		brackets.MessageBracketUpdated,
		brackets.MessageBracketUpdated,
		brackets.MessageTournamentCompleted,
	}
	got := b.types()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("broadcasts = %v, want %v", got, want)
	}

	tasks, err := svc.Priorities(ctx, created.ID)
	if err != nil {
		t.Fatalf("priorities: %v", err)
	}
	if *tasks[2].Priority != models.PriorityHigh || !*tasks[2].Winner {
		t.Fatalf("c should be the high priority winner, got %+v", tasks[2])
	}
}

func TestAdvance_Errors(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	created, err := svc.Create(ctx, threeTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name                  string
		id, matchID, winnerID string
		want                  error
	}{
		{"unknown tournament", "nope", brackets.MatchID(1, 0), "a", ErrTournamentNotFound},
		{"unknown task", created.ID, brackets.MatchID(1, 0), "zzz", ErrTaskNotFound},
		{"unknown match", created.ID, "round-7-match-0", "a", brackets.ErrMatchNotFound},
		{"winner not in match", created.ID, brackets.MatchID(1, 0), "c", brackets.ErrInvalidWinner},
		{"bye already decided", created.ID, brackets.MatchID(1, 1), "c", brackets.ErrMatchCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Advance(ctx, tt.id, tt.matchID, tt.winnerID)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	got, _ := svc.Get(ctx, created.ID)
	if got.Tournament.Rounds[0].Matches[0].Status != models.MatchStatusPending {
		t.Fatal("failed advance changed the stored tournament")
	}
}

func TestConcurrentAdvancesAreSerialized(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	created, err := svc.Create(ctx, []models.Task{{ID: "a"}, {ID: "b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, winner := range []string{"a", "b"} {
		wg.Add(1)
		go func(winner string) {
			defer wg.Done()
			_, err := svc.Advance(ctx, created.ID, brackets.MatchID(1, 0), winner)
			errs <- err
		}(winner)
	}
	wg.Wait()
	close(errs)

	succeeded, conflicted := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, brackets.ErrMatchCompleted):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || conflicted != 1 {
		t.Fatalf("succeeded=%d conflicted=%d, want 1 and 1", succeeded, conflicted)
	}
}

func TestImport(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	csv := "id,name,description,winner,priority\n1,A,a,true,high\n2,B,b,false,low"
	created, err := svc.Import(ctx, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, task := range created.Tournament.Tasks {
		if task.Winner != nil || task.Priority != nil {
			t.Fatalf("computed fields should be dropped on import, got %+v", task)
		}
	}

	if _, err := svc.Import(ctx, strings.NewReader("id,title\n1,A")); !errors.Is(err, taskcsv.ErrFormat) {
		t.Fatalf("err = %v, want taskcsv.ErrFormat", err)
	}
}

func TestExportCSV(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	created, _ := svc.Create(ctx, threeTasks())

	got, err := svc.ExportCSV(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 4 || lines[0] != `"id","name","description","winner","priority"` {
		t.Fatalf("unexpected export:\n%s", got)
	}
}

func TestUploadExport(t *testing.T) {
	ctx := context.Background()

	disabled, _ := newTestService(nil)
	created, _ := disabled.Create(ctx, threeTasks())
	if _, err := disabled.UploadExport(ctx, created.ID); !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("err = %v, want ErrStorageDisabled", err)
	}

	up := &memoryUploader{objects: map[string]string{}}
	svc, _ := newTestService(up)
	created, _ = svc.Create(ctx, threeTasks())

	res, err := svc.UploadExport(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	key := ExportKey(created.ID)
	if res.Key != key || res.Location != "https://cdn.test/"+key {
		t.Fatalf("unexpected result %+v", res)
	}
	want, _ := svc.ExportCSV(ctx, created.ID)
	if up.objects[key] != want {
		t.Fatalf("stored %q, want %q", up.objects[key], want)
	}

	up.err = errors.New("bucket gone")
	if _, err := svc.UploadExport(ctx, created.ID); !errors.Is(err, ErrExportFailed) {
		t.Fatalf("err = %v, want ErrExportFailed", err)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	created, _ := svc.Create(ctx, threeTasks())

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("err = %v, want ErrTournamentNotFound", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("err = %v, want ErrTournamentNotFound", err)
	}
}
