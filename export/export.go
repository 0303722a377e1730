// Package export writes the task data as portable JSON or CSV
// documents and restores the persisted task slot from an exported
// JSON file.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"focusdo/model"
	"focusdo/store"
)

// Version identifies the export document schema.
const Version = 1

// ErrInvalidDocument reports an import file that is not a valid
// export document.
var ErrInvalidDocument = errors.New("invalid export document")

// Document is the JSON export schema.
type Document struct {
	Tasks      []model.Task    `json:"tasks"`
	Projects   []model.Project `json:"projects"`
	ExportedAt time.Time       `json:"exportedAt"`
	Version    int             `json:"version"`
}

// CSVHeader is the fixed header row of CSV exports. Unlike data rows
// it is written unquoted.
const CSVHeader = "Title,Description,Priority,Status,Due Date,Tags,Project,Created At"

// WriteJSON writes tasks and projects as a JSON export document.
func WriteJSON(path string, tasks []model.Task, projects []model.Project) error {
	doc := Document{
		Tasks:      tasks,
		Projects:   projects,
		ExportedAt: time.Now().UTC(),
		Version:    Version,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// WriteCSV writes tasks as CSV. The header is unquoted and every data
// field is quoted; tags are joined with "; "; the project column
// carries the project name when it resolves, otherwise the raw id.
func WriteCSV(path string, tasks []model.Task, projects []model.Project) error {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, t := range tasks {
		project := t.ProjectID
		if name, ok := names[t.ProjectID]; ok {
			project = name
		}
		row := []string{
			t.Title,
			t.Description,
			string(t.Priority),
			string(t.Status),
			t.DueDate,
			strings.Join(t.Tags, "; "),
			project,
			t.CreatedAt.Format(time.RFC3339),
		}
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteCSV(field))
		}
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// Import parses an exported JSON document and replaces the persisted
// task slot wholesale. The running stores are untouched; the imported
// state takes effect on next load.
func Import(exportPath, slotPath string) error {
	data, err := os.ReadFile(exportPath)
	if err != nil {
		return err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Tasks == nil || doc.Projects == nil {
		return fmt.Errorf("%w: missing tasks or projects", ErrInvalidDocument)
	}
	if doc.Version > Version {
		return fmt.Errorf("%w: version %d is newer than supported", ErrInvalidDocument, doc.Version)
	}

	state := model.TaskState{
		Tasks:        doc.Tasks,
		Projects:     doc.Projects,
		ActiveFilter: model.FilterAll,
	}
	return store.SaveTasks(slotPath, state)
}

// CSV fields are always quoted, with embedded quotes doubled.
func quoteCSV(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
