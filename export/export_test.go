package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"focusdo/model"
	"focusdo/store"
)

func sampleData() ([]model.Task, []model.Project) {
	now := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	projects := []model.Project{
		{ID: "inbox", Name: "Inbox", Color: "#64748b", Icon: "inbox", CreatedAt: now},
		{ID: "p1", Name: "Side quests", Color: "#9ece6a", Icon: "star", CreatedAt: now},
	}
	tasks := []model.Task{
		{
			ID:          "t1",
			Title:       `Review "Q3" plan`,
			Description: "multi, part, description",
			Priority:    model.PriorityHigh,
			Status:      model.StatusTodo,
			DueDate:     "2026-08-21",
			Tags:        []string{"urgent", "review"},
			ProjectID:   "p1",
			Subtasks:    []model.Subtask{},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:        "t2",
			Title:     "Orphaned",
			Priority:  model.PriorityLow,
			Status:    model.StatusCompleted,
			Tags:      []string{},
			ProjectID: "ghost",
			Subtasks:  []model.Subtask{},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	return tasks, projects
}

func TestWriteJSONDocumentShape(t *testing.T) {
	tasks, projects := sampleData()
	path := filepath.Join(t.TempDir(), "export.json")

	if err := WriteJSON(path, tasks, projects); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if doc.Version != Version {
		t.Fatalf("expected version %d, got %d", Version, doc.Version)
	}
	if doc.ExportedAt.IsZero() {
		t.Fatal("exportedAt must be stamped")
	}
	if len(doc.Tasks) != 2 || len(doc.Projects) != 2 {
		t.Fatalf("unexpected document contents: %d tasks, %d projects", len(doc.Tasks), len(doc.Projects))
	}
	if doc.Tasks[0].Title != `Review "Q3" plan` {
		t.Fatalf("task content mangled: %q", doc.Tasks[0].Title)
	}
}

func TestWriteCSVHeaderAndQuoting(t *testing.T) {
	tasks, projects := sampleData()
	path := filepath.Join(t.TempDir(), "export.csv")

	if err := WriteCSV(path, tasks, projects); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines[0] != CSVHeader {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if strings.Contains(lines[0], `"`) {
		t.Fatalf("header row must be unquoted: %q", lines[0])
	}

	// Every data field is quoted, including empty ones.
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, `"`) || !strings.HasSuffix(line, `"`) {
			t.Fatalf("row not fully quoted: %q", line)
		}
		if strings.Contains(line, `,,`) {
			t.Fatalf("found an unquoted empty field: %q", line)
		}
	}

	// The document must still be valid CSV with embedded quotes intact.
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	row := records[1]
	if row[0] != `Review "Q3" plan` {
		t.Fatalf("embedded quotes mangled: %q", row[0])
	}
	if row[5] != "urgent; review" {
		t.Fatalf(`tags must be joined with "; ", got %q`, row[5])
	}
	if row[6] != "Side quests" {
		t.Fatalf("project column should resolve to the name, got %q", row[6])
	}
	if records[2][6] != "ghost" {
		t.Fatalf("unresolvable project should fall back to the raw id, got %q", records[2][6])
	}
}

func TestImportReplacesTaskSlotWholesale(t *testing.T) {
	tasks, projects := sampleData()
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "export.json")
	slotPath := filepath.Join(dir, store.TasksFile)

	// Existing slot content gets replaced, not merged.
	if err := store.SaveTasks(slotPath, model.NewTaskState()); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}
	if err := WriteJSON(exportPath, tasks, projects); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if err := Import(exportPath, slotPath); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	state, err := store.LoadTasks(slotPath)
	if err != nil {
		t.Fatalf("load after import failed: %v", err)
	}
	if len(state.Tasks) != 2 || state.Tasks[0].ID != "t1" {
		t.Fatalf("imported tasks mismatch: %+v", state.Tasks)
	}
	if len(state.Projects) != 2 {
		t.Fatalf("imported projects mismatch: %+v", state.Projects)
	}
	if state.ActiveFilter != model.FilterAll {
		t.Fatalf("imported state should reset the filter, got %q", state.ActiveFilter)
	}
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	dir := t.TempDir()
	slotPath := filepath.Join(dir, store.TasksFile)

	garbage := filepath.Join(dir, "garbage.json")
	if err := os.WriteFile(garbage, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := Import(garbage, slotPath); err == nil {
		t.Fatal("expected an error for unparseable input")
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"exportedAt": "2026-08-19T00:00:00Z", "version": 1}`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := Import(empty, slotPath); err == nil {
		t.Fatal("expected an error for a document without tasks and projects")
	}

	// The slot must be untouched after rejected imports.
	if _, err := os.Stat(slotPath); !os.IsNotExist(err) {
		t.Fatal("rejected imports must not create the slot")
	}
}
