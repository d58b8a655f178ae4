package brackets

import (
	"context"

	"github.com/Dosada05/task-battle/models"
)

type GenerateBracketParams struct {
	Tasks []models.Task
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Tournament, error)

	GetName() string
}
