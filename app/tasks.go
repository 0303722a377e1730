package app

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"focusdo/model"
)

// TaskStore owns tasks, projects, and the active filter/search state.
// All mutation is funneled through its methods; reads return copies.
// Mutations on ids that do not exist are silent no-ops: the store is
// driven by a best-effort UI and never errors for expected conditions.
type TaskStore struct {
	state    model.TaskState
	onChange func()
}

// NewTaskStore creates a store seeded with a copy of the provided state.
func NewTaskStore(state model.TaskState) *TaskStore {
	return &TaskStore{state: normalizeTaskState(state)}
}

// OnChange registers a hook fired after every mutation. Persistence
// hangs off this hook so the transition logic stays pure.
func (s *TaskStore) OnChange(fn func()) {
	s.onChange = fn
}

func (s *TaskStore) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// State returns a copy of the full store state.
func (s *TaskStore) State() model.TaskState {
	return copyTaskState(s.state)
}

// Tasks returns all tasks in list order as a copy.
func (s *TaskStore) Tasks() []model.Task {
	out := make([]model.Task, len(s.state.Tasks))
	for i, t := range s.state.Tasks {
		out[i] = copyTask(t)
	}
	return out
}

// Projects returns all projects as a copy.
func (s *TaskStore) Projects() []model.Project {
	out := make([]model.Project, len(s.state.Projects))
	copy(out, s.state.Projects)
	return out
}

// AddTask assigns a fresh id and timestamps to the draft and prepends
// it to the task list, so newly created tasks surface first.
func (s *TaskStore) AddTask(draft model.Task) model.Task {
	now := time.Now().UTC()
	draft.ID = newID()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	draft.CompletedAt = nil
	if draft.ProjectID == "" {
		draft.ProjectID = model.InboxProjectID
	}
	if draft.Tags == nil {
		draft.Tags = []string{}
	}
	if draft.Subtasks == nil {
		draft.Subtasks = []model.Subtask{}
	}

	s.state.Tasks = append([]model.Task{draft}, s.state.Tasks...)
	s.changed()
	return copyTask(draft)
}

// TaskUpdate is a partial task mutation. Nil fields are left unchanged.
// The store does not reconcile CompletedAt with Status here; a caller
// changing Status is responsible for setting CompletedAt or
// ClearCompletedAt to keep the two consistent.
type TaskUpdate struct {
	Title            *string
	Description      *string
	ImageURL         *string
	Priority         *model.Priority
	Status           *model.Status
	DueDate          *string
	Tags             *[]string
	ProjectID        *string
	Subtasks         *[]model.Subtask
	CompletedAt      *time.Time
	ClearCompletedAt bool
}

// UpdateTask merges the given fields into the matching task and
// refreshes UpdatedAt. Missing ids are ignored.
func (s *TaskStore) UpdateTask(id string, upd TaskUpdate) {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != id {
			continue
		}
		t := &s.state.Tasks[i]
		if upd.Title != nil {
			t.Title = *upd.Title
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.ImageURL != nil {
			t.ImageURL = *upd.ImageURL
		}
		if upd.Priority != nil {
			t.Priority = *upd.Priority
		}
		if upd.Status != nil {
			t.Status = *upd.Status
		}
		if upd.DueDate != nil {
			t.DueDate = *upd.DueDate
		}
		if upd.Tags != nil {
			tags := make([]string, len(*upd.Tags))
			copy(tags, *upd.Tags)
			t.Tags = tags
		}
		if upd.ProjectID != nil {
			t.ProjectID = *upd.ProjectID
		}
		if upd.Subtasks != nil {
			subs := make([]model.Subtask, len(*upd.Subtasks))
			copy(subs, *upd.Subtasks)
			t.Subtasks = subs
		}
		if upd.CompletedAt != nil {
			at := *upd.CompletedAt
			t.CompletedAt = &at
		}
		if upd.ClearCompletedAt {
			t.CompletedAt = nil
		}
		t.UpdatedAt = time.Now().UTC()
		s.changed()
		return
	}
}

// DeleteTask removes the task with the given id, if present.
func (s *TaskStore) DeleteTask(id string) {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == id {
			s.state.Tasks = append(s.state.Tasks[:i], s.state.Tasks[i+1:]...)
			s.changed()
			return
		}
	}
}

// ToggleTaskStatus flips a task between completed and todo. A task in
// any non-completed status lands on completed; toggling back always
// lands on todo, even if the task was in-progress before.
func (s *TaskStore) ToggleTaskStatus(id string) {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != id {
			continue
		}
		t := &s.state.Tasks[i]
		now := time.Now().UTC()
		if t.Status == model.StatusCompleted {
			t.Status = model.StatusTodo
			t.CompletedAt = nil
		} else {
			t.Status = model.StatusCompleted
			at := now
			t.CompletedAt = &at
		}
		t.UpdatedAt = now
		s.changed()
		return
	}
}

// ReorderTasks replaces the task list verbatim. The caller splices a
// reordered visible slice back into the full collection before calling;
// no permutation check is performed, so a list missing a task drops it.
func (s *TaskStore) ReorderTasks(tasks []model.Task) {
	next := make([]model.Task, len(tasks))
	for i, t := range tasks {
		next[i] = copyTask(t)
	}
	s.state.Tasks = next
	s.changed()
}

// AddSubtask appends a fresh incomplete subtask to the named task.
func (s *TaskStore) AddSubtask(taskID, title string) {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != taskID {
			continue
		}
		s.state.Tasks[i].Subtasks = append(s.state.Tasks[i].Subtasks, model.Subtask{
			ID:    newID(),
			Title: title,
		})
		s.changed()
		return
	}
}

// ToggleSubtask flips the completed flag of the matching subtask.
// Parent task status is not affected.
func (s *TaskStore) ToggleSubtask(taskID, subtaskID string) {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != taskID {
			continue
		}
		subs := s.state.Tasks[i].Subtasks
		for j := range subs {
			if subs[j].ID == subtaskID {
				subs[j].Completed = !subs[j].Completed
				s.changed()
				return
			}
		}
		return
	}
}

// DeleteSubtask removes the matching subtask from its parent.
func (s *TaskStore) DeleteSubtask(taskID, subtaskID string) {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != taskID {
			continue
		}
		subs := s.state.Tasks[i].Subtasks
		for j := range subs {
			if subs[j].ID == subtaskID {
				s.state.Tasks[i].Subtasks = append(subs[:j], subs[j+1:]...)
				s.changed()
				return
			}
		}
		return
	}
}

// AddProject assigns a fresh id and creation time and appends the
// project to the end of the project list.
func (s *TaskStore) AddProject(draft model.Project) model.Project {
	draft.ID = newID()
	draft.CreatedAt = time.Now().UTC()
	s.state.Projects = append(s.state.Projects, draft)
	s.changed()
	return draft
}

// ProjectUpdate is a partial project mutation.
type ProjectUpdate struct {
	Name  *string
	Color *string
	Icon  *string
}

// UpdateProject merges the given fields into the matching project.
func (s *TaskStore) UpdateProject(id string, upd ProjectUpdate) {
	for i := range s.state.Projects {
		if s.state.Projects[i].ID != id {
			continue
		}
		if upd.Name != nil {
			s.state.Projects[i].Name = *upd.Name
		}
		if upd.Color != nil {
			s.state.Projects[i].Color = *upd.Color
		}
		if upd.Icon != nil {
			s.state.Projects[i].Icon = *upd.Icon
		}
		s.changed()
		return
	}
}

// DeleteProject removes the project and reassigns its tasks to the
// inbox. Tasks are never cascade-deleted with their project.
func (s *TaskStore) DeleteProject(id string) {
	for i := range s.state.Projects {
		if s.state.Projects[i].ID != id {
			continue
		}
		s.state.Projects = append(s.state.Projects[:i], s.state.Projects[i+1:]...)
		for j := range s.state.Tasks {
			if s.state.Tasks[j].ProjectID == id {
				s.state.Tasks[j].ProjectID = model.InboxProjectID
			}
		}
		s.changed()
		return
	}
}

// SetActiveFilter selects a filter lens and clears any active project;
// filter and project scoping are mutually exclusive.
func (s *TaskStore) SetActiveFilter(filter model.Filter) {
	s.state.ActiveFilter = filter
	s.state.ActiveProjectID = ""
	s.changed()
}

// SetActiveProjectID scopes the view to one project and resets the
// filter to all. An empty id clears the project scope.
func (s *TaskStore) SetActiveProjectID(id string) {
	s.state.ActiveProjectID = id
	s.state.ActiveFilter = model.FilterAll
	s.changed()
}

// SetSearchQuery stores the raw query; matching is case-insensitive
// at read time.
func (s *TaskStore) SetSearchQuery(query string) {
	s.state.SearchQuery = query
	s.changed()
}

// FilteredTasks derives the visible task list from current state:
// search narrows first, then project scope, then the active filter.
// Relative order of surviving tasks follows the underlying list.
//
// With no active project the all filter hides completed tasks; with a
// project active it returns every task in that project regardless of
// status. That asymmetry is intentional.
func (s *TaskStore) FilteredTasks() []model.Task {
	today := time.Now().Format(model.DateLayout)
	nextWeek := time.Now().AddDate(0, 0, 7).Format(model.DateLayout)

	out := make([]model.Task, 0, len(s.state.Tasks))
	query := strings.ToLower(s.state.SearchQuery)

	for _, t := range s.state.Tasks {
		if query != "" && !matchesQuery(t, query) {
			continue
		}
		if s.state.ActiveProjectID != "" && t.ProjectID != s.state.ActiveProjectID {
			continue
		}

		switch s.state.ActiveFilter {
		case model.FilterToday:
			if t.DueDate != today || t.Status == model.StatusCompleted {
				continue
			}
		case model.FilterUpcoming:
			if t.DueDate == "" || t.DueDate <= today || t.DueDate > nextWeek || t.Status == model.StatusCompleted {
				continue
			}
		case model.FilterCompleted:
			if t.Status != model.StatusCompleted {
				continue
			}
		default:
			if s.state.ActiveProjectID == "" && t.Status == model.StatusCompleted {
				continue
			}
		}

		out = append(out, copyTask(t))
	}
	return out
}

// TasksByProject returns all tasks belonging to the given project.
func (s *TaskStore) TasksByProject(projectID string) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range s.state.Tasks {
		if t.ProjectID == projectID {
			out = append(out, copyTask(t))
		}
	}
	return out
}

// TaskByID returns a task by id.
func (s *TaskStore) TaskByID(id string) (model.Task, bool) {
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return copyTask(t), true
		}
	}
	return model.Task{}, false
}

// ProjectByID returns a project by id.
func (s *TaskStore) ProjectByID(id string) (model.Project, bool) {
	for _, p := range s.state.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

func matchesQuery(t model.Task, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func normalizeTaskState(state model.TaskState) model.TaskState {
	state = copyTaskState(state)
	if state.Tasks == nil {
		state.Tasks = []model.Task{}
	}
	if state.Projects == nil {
		state.Projects = []model.Project{}
	}
	if state.ActiveFilter == "" {
		state.ActiveFilter = model.FilterAll
	}

	hasInbox := false
	for _, p := range state.Projects {
		if p.ID == model.InboxProjectID {
			hasInbox = true
			break
		}
	}
	if !hasInbox {
		inbox := model.DefaultProjects()[0]
		state.Projects = append([]model.Project{inbox}, state.Projects...)
	}

	for i := range state.Tasks {
		if state.Tasks[i].ProjectID == "" {
			state.Tasks[i].ProjectID = model.InboxProjectID
		}
		if state.Tasks[i].Tags == nil {
			state.Tasks[i].Tags = []string{}
		}
		if state.Tasks[i].Subtasks == nil {
			state.Tasks[i].Subtasks = []model.Subtask{}
		}
	}
	return state
}

func copyTask(t model.Task) model.Task {
	out := t
	out.Tags = make([]string, len(t.Tags))
	copy(out.Tags, t.Tags)
	out.Subtasks = make([]model.Subtask, len(t.Subtasks))
	copy(out.Subtasks, t.Subtasks)
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	return out
}

func copyTaskState(state model.TaskState) model.TaskState {
	out := state
	out.Tasks = make([]model.Task, len(state.Tasks))
	for i, t := range state.Tasks {
		out.Tasks[i] = copyTask(t)
	}
	out.Projects = make([]model.Project, len(state.Projects))
	copy(out.Projects, state.Projects)
	return out
}

func newID() string {
	return uuid.NewString()
}
