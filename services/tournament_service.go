package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/task-battle/brackets"
	"github.com/Dosada05/task-battle/models"
	"github.com/Dosada05/task-battle/storage"
	"github.com/Dosada05/task-battle/taskcsv"
	"github.com/google/uuid"
)

const exportContentType = "text/csv; charset=utf-8"

// Broadcaster pushes bracket updates to connected clients.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// TournamentRecord is a stored tournament with its bookkeeping fields.
type TournamentRecord struct {
	ID         string             `json:"id"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Tournament *models.Tournament `json:"tournament"`
}

type TournamentService interface {
	Create(ctx context.Context, tasks []models.Task) (*TournamentRecord, error)
	Import(ctx context.Context, csv io.Reader) (*TournamentRecord, error)
	Get(ctx context.Context, id string) (*TournamentRecord, error)
	Delete(ctx context.Context, id string) error
	StartMatch(ctx context.Context, id, matchID string) (*TournamentRecord, error)
	Advance(ctx context.Context, id, matchID, winnerID string) (*TournamentRecord, error)
	Priorities(ctx context.Context, id string) ([]models.Task, error)
	ExportCSV(ctx context.Context, id string) (string, error)
	UploadExport(ctx context.Context, id string) (*storage.UploadResult, error)
}

type tournamentService struct {
	mu          sync.Mutex
	tournaments map[string]*TournamentRecord

	generator   brackets.BracketGenerator
	broadcaster Broadcaster
	uploader    storage.FileUploader // nil disables UploadExport
	logger      *slog.Logger
	now         func() time.Time
}

// NewTournamentService keeps tournaments in memory. broadcaster and uploader may be nil.
func NewTournamentService(
	generator brackets.BracketGenerator,
	broadcaster Broadcaster,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		tournaments: make(map[string]*TournamentRecord),
		generator:   generator,
		broadcaster: broadcaster,
		uploader:    uploader,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *tournamentService) Create(ctx context.Context, tasks []models.Task) (*TournamentRecord, error) {
	if err := validateTasks(tasks); err != nil {
		return nil, err
	}

	owned := make([]models.Task, len(tasks))
	copy(owned, tasks)

	tournament, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{Tasks: owned})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s bracket: %w", s.generator.GetName(), err)
	}

	now := s.now().UTC()
	record := &TournamentRecord{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		UpdatedAt:  now,
		Tournament: tournament,
	}

	s.mu.Lock()
	s.tournaments[record.ID] = record
	out := record.clone()
	s.mu.Unlock()

	s.logger.Info("tournament created",
		slog.String("tournament_id", record.ID),
		slog.Int("tasks", len(tasks)),
		slog.Int("rounds", len(tournament.Rounds)))
	s.broadcast(brackets.MessageBracketCreated, out)
	return out, nil
}

func (s *tournamentService) Import(ctx context.Context, csv io.Reader) (*TournamentRecord, error) {
	tasks, err := taskcsv.Decode(csv)
	if err != nil {
		return nil, err
	}
	// computed columns from an earlier export do not carry into a new bracket
	for i := range tasks {
		tasks[i].Winner = nil
		tasks[i].Priority = nil
	}
	return s.Create(ctx, tasks)
}

func (s *tournamentService) Get(ctx context.Context, id string) (*TournamentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.tournaments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTournamentNotFound, id)
	}
	return record.clone(), nil
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.tournaments[id]
	delete(s.tournaments, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrTournamentNotFound, id)
	}
	s.logger.Info("tournament discarded", slog.String("tournament_id", id))
	return nil
}

func (s *tournamentService) StartMatch(ctx context.Context, id, matchID string) (*TournamentRecord, error) {
	return s.update(id, func(t *models.Tournament) (*models.Tournament, error) {
		return brackets.StartMatch(t, matchID)
	})
}

// Advance decides matchID in favour of the task with winnerID.
func (s *tournamentService) Advance(ctx context.Context, id, matchID, winnerID string) (*TournamentRecord, error) {
	record, err := s.update(id, func(t *models.Tournament) (*models.Tournament, error) {
		winner, ok := findTask(t.Tasks, winnerID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, winnerID)
		}
		return brackets.Advance(t, matchID, winner)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("match decided",
		slog.String("tournament_id", id),
		slog.String("match_id", matchID),
		slog.String("winner_id", winnerID))
	if record.Tournament.Completed() {
		s.logger.Info("tournament completed",
			slog.String("tournament_id", id),
			slog.String("winner_id", record.Tournament.Winner.ID))
		s.broadcast(brackets.MessageTournamentCompleted, record)
	}
	return record, nil
}

// update applies fn to the stored tournament and swaps in the result. The lock is held
// for the whole read-modify-write so advances on one tournament are serialized.
func (s *tournamentService) update(id string, fn func(*models.Tournament) (*models.Tournament, error)) (*TournamentRecord, error) {
	s.mu.Lock()
	record, ok := s.tournaments[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrTournamentNotFound, id)
	}

	updated, err := fn(record.Tournament)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	record.Tournament = updated
	record.UpdatedAt = s.now().UTC()
	out := record.clone()
	s.mu.Unlock()

	s.broadcast(brackets.MessageBracketUpdated, out)
	return out, nil
}

func (s *tournamentService) Priorities(ctx context.Context, id string) ([]models.Task, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return brackets.AssignTaskPriorities(record.Tournament), nil
}

func (s *tournamentService) ExportCSV(ctx context.Context, id string) (string, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return taskcsv.ExportTournament(record.Tournament), nil
}

// UploadExport stores the CSV export under exports/<id>.csv.
func (s *tournamentService) UploadExport(ctx context.Context, id string) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrStorageDisabled
	}
	data, err := s.ExportCSV(ctx, id)
	if err != nil {
		return nil, err
	}

	key := ExportKey(id)
	result, err := s.uploader.Upload(ctx, key, exportContentType, strings.NewReader(data))
	if err != nil {
		s.logger.Error("export upload failed", slog.String("tournament_id", id), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	s.logger.Info("export uploaded", slog.String("tournament_id", id), slog.String("key", result.Key))
	return result, nil
}

// ExportKey is the storage key of a tournament CSV export.
func ExportKey(id string) string {
	return "exports/" + id + ".csv"
}

func (s *tournamentService) broadcast(messageType string, record *TournamentRecord) {
	if s.broadcaster == nil {
		return
	}
	room := brackets.RoomName(record.ID)
	s.broadcaster.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    messageType,
		Payload: record,
		RoomID:  room,
	})
}

func (r *TournamentRecord) clone() *TournamentRecord {
	c := *r
	c.Tournament = r.Tournament.Clone()
	return &c
}

func validateTasks(tasks []models.Task) error {
	seen := make(map[string]struct{}, len(tasks))
	for i, task := range tasks {
		if strings.TrimSpace(task.ID) == "" {
			return fmt.Errorf("%w: %w (task #%d)", ErrValidationFailed, ErrTaskIDRequired, i+1)
		}
		if _, dup := seen[task.ID]; dup {
			return fmt.Errorf("%w: %w (%s)", ErrValidationFailed, ErrDuplicateTaskID, task.ID)
		}
		seen[task.ID] = struct{}{}
	}
	return nil
}

func findTask(tasks []models.Task, id string) (models.Task, bool) {
	for _, task := range tasks {
		if task.ID == id {
			return task, true
		}
	}
	return models.Task{}, false
}
