// Package taskcsv reads and writes task lists as flat CSV text.
//
// The format is deliberately simple: fields are split on commas, and double quotes are
// stripped rather than unescaped, so values cannot contain commas or quotes.
package taskcsv

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/task-battle/models"
)

const (
	ColumnID          = "id"
	ColumnName        = "name"
	ColumnDescription = "description"
	ColumnWinner      = "winner"
	ColumnPriority    = "priority"
)

// maxDecodeBytes caps Decode input; task lists are tens of rows.
const maxDecodeBytes = 1 << 20

type columnIndex struct {
	id, name, description int
	winner, priority      int // -1 when the column is absent
}

func newColumnIndex(header []string) (columnIndex, error) {
	idx := columnIndex{id: -1, name: -1, description: -1, winner: -1, priority: -1}
	for i, h := range header {
		var dst *int
		switch h {
		case ColumnID:
			dst = &idx.id
		case ColumnName:
			dst = &idx.name
		case ColumnDescription:
			dst = &idx.description
		case ColumnWinner:
			dst = &idx.winner
		case ColumnPriority:
			dst = &idx.priority
		default:
			continue
		}
		// first occurrence wins
		if *dst == -1 {
			*dst = i
		}
	}

	var missing []string
	if idx.id == -1 {
		missing = append(missing, ColumnID)
	}
	if idx.name == -1 {
		missing = append(missing, ColumnName)
	}
	if idx.description == -1 {
		missing = append(missing, ColumnDescription)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w (missing: %s)", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

// task maps a data row onto a Task. Short rows read missing fields as empty, extra fields are ignored.
func (c columnIndex) task(values []string) models.Task {
	task := models.Task{
		ID:          field(values, c.id),
		Name:        field(values, c.name),
		Description: field(values, c.description),
	}
	if c.winner != -1 {
		winner := field(values, c.winner) == "true"
		task.Winner = &winner
	}
	if c.priority != -1 {
		priority := models.Priority(field(values, c.priority))
		task.Priority = &priority
	}
	return task
}

func field(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}

func splitLine(line string) []string {
	values := strings.Split(line, ",")
	for i, v := range values {
		values[i] = strings.TrimSpace(strings.ReplaceAll(v, `"`, ""))
	}
	return values
}

// Parse reads a header line followed by one task per line.
// The header must name the id, name and description columns; winner and priority are optional.
func Parse(text string) ([]models.Task, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	cols, err := newColumnIndex(splitLine(lines[0]))
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tasks = append(tasks, cols.task(splitLine(line)))
	}
	return tasks, nil
}

// Decode reads the whole of r and parses it with Parse.
func Decode(r io.Reader) ([]models.Task, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDecodeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(data) > maxDecodeBytes {
		return nil, fmt.Errorf("%w: input larger than %d bytes", ErrFormat, maxDecodeBytes)
	}
	return Parse(string(data))
}
