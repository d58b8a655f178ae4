package taskcsv

import (
	"strings"

	"github.com/Dosada05/task-battle/brackets"
	"github.com/Dosada05/task-battle/models"
)

var exportHeader = []string{ColumnID, ColumnName, ColumnDescription, ColumnWinner, ColumnPriority}

// Export renders tasks with the fixed header id, name, description, winner, priority.
// Every field is double quoted; a nil winner renders as false and a nil priority as empty.
func Export(tasks []models.Task) string {
	var b strings.Builder
	writeRow(&b, exportHeader)
	for _, task := range tasks {
		winner := "false"
		if task.Winner != nil && *task.Winner {
			winner = "true"
		}
		priority := ""
		if task.Priority != nil {
			priority = string(*task.Priority)
		}
		b.WriteByte('\n')
		writeRow(&b, []string{task.ID, task.Name, task.Description, winner, priority})
	}
	return b.String()
}

// ExportTournament exports the tournament tasks with their computed winner flag and priority.
func ExportTournament(t *models.Tournament) string {
	return Export(brackets.AssignTaskPriorities(t))
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(f)
		b.WriteByte('"')
	}
}
