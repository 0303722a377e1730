// Package store persists each state container to its own JSON slot as
// a versioned envelope {"state": ..., "version": N}. Writes are atomic
// (temp file + rename) and keep a .bak of the previous good blob plus
// a rotating timestamped backup set. The two slots are written
// independently and are not transactional with each other.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"focusdo/model"
)

// SchemaVersion is stamped into every envelope written.
const SchemaVersion = 1

const maxRotatingBackups = 10

// Slot filenames under the state directory.
const (
	TasksFile = "tasks.json"
	AppFile   = "app.json"
)

// ErrVersion reports an envelope written by a newer schema.
var ErrVersion = errors.New("unsupported state version")

var errNoValidBackup = errors.New("no valid backup found")

type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// DefaultDir returns the state directory: $XDG_DATA_HOME/focusdo,
// falling back to ~/.local/share/focusdo.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "focusdo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "focusdo"
	}
	return filepath.Join(home, ".local", "share", "focusdo")
}

// LoadTasks reads the task-store slot. A missing file yields the
// first-run state with the three default projects.
func LoadTasks(path string) (model.TaskState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewTaskState(), nil
		}
		return model.TaskState{}, err
	}
	return decodeTasks(data)
}

// LoadApp reads the session-store slot. A missing file yields the
// first-run persisted subset.
func LoadApp(path string) (model.AppPersist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewAppState().Persist(), nil
		}
		return model.AppPersist{}, err
	}
	return decodeApp(data)
}

// LoadTasksWithRecovery loads the task slot and absorbs corruption:
// the bad file is moved aside, the backups are scanned newest first
// for a valid blob, and failing that the first-run defaults are used.
// It never fails; the returned message, when non-empty, should be
// surfaced to the user.
func LoadTasksWithRecovery(path string) (model.TaskState, string) {
	state, err := LoadTasks(path)
	if err == nil {
		return state, ""
	}
	if !isCorruptStateError(err) {
		return model.NewTaskState(), fmt.Sprintf("Could not read %s (%v); starting with defaults", filepath.Base(path), err)
	}

	corruptPath, _ := moveCorruptFile(path)
	if candidates, cerr := backupCandidates(path); cerr == nil {
		for _, candidate := range candidates {
			data, rerr := os.ReadFile(candidate)
			if rerr != nil {
				continue
			}
			recovered, derr := decodeTasks(data)
			if derr != nil {
				continue
			}
			msg := fmt.Sprintf("Recovered task state from %s", filepath.Base(candidate))
			if corruptPath != "" {
				msg += fmt.Sprintf(" (bad file moved to %s)", filepath.Base(corruptPath))
			}
			return recovered, msg
		}
	}

	msg := "Task state was corrupted and no valid backup exists; starting fresh"
	if corruptPath != "" {
		msg += fmt.Sprintf(" (bad file moved to %s)", filepath.Base(corruptPath))
	}
	return model.NewTaskState(), msg
}

// LoadAppWithRecovery is the session-slot counterpart of
// LoadTasksWithRecovery.
func LoadAppWithRecovery(path string) (model.AppPersist, string) {
	persist, err := LoadApp(path)
	if err == nil {
		return persist, ""
	}
	if !isCorruptStateError(err) {
		return model.NewAppState().Persist(), fmt.Sprintf("Could not read %s (%v); starting with defaults", filepath.Base(path), err)
	}

	corruptPath, _ := moveCorruptFile(path)
	if candidates, cerr := backupCandidates(path); cerr == nil {
		for _, candidate := range candidates {
			data, rerr := os.ReadFile(candidate)
			if rerr != nil {
				continue
			}
			recovered, derr := decodeApp(data)
			if derr != nil {
				continue
			}
			msg := fmt.Sprintf("Recovered app settings from %s", filepath.Base(candidate))
			if corruptPath != "" {
				msg += fmt.Sprintf(" (bad file moved to %s)", filepath.Base(corruptPath))
			}
			return recovered, msg
		}
	}

	msg := "App settings were corrupted and no valid backup exists; using defaults"
	if corruptPath != "" {
		msg += fmt.Sprintf(" (bad file moved to %s)", filepath.Base(corruptPath))
	}
	return model.NewAppState().Persist(), msg
}

// SaveTasks writes the task-store slot atomically.
func SaveTasks(path string, state model.TaskState) error {
	return saveSlot(path, state)
}

// SaveApp writes the persisted session subset atomically.
func SaveApp(path string, persist model.AppPersist) error {
	return saveSlot(path, persist)
}

func saveSlot(path string, state any) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := backup(path); err != nil {
		return err
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(envelope{State: raw, Version: SchemaVersion}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func decodeTasks(data []byte) (model.TaskState, error) {
	raw, err := decodeEnvelope(data)
	if err != nil {
		return model.TaskState{}, err
	}
	var state model.TaskState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.TaskState{}, err
	}

	if state.Tasks == nil {
		state.Tasks = []model.Task{}
	}
	if len(state.Projects) == 0 {
		state.Projects = model.DefaultProjects()
	}
	if state.ActiveFilter == "" {
		state.ActiveFilter = model.FilterAll
	}
	return state, nil
}

func decodeApp(data []byte) (model.AppPersist, error) {
	raw, err := decodeEnvelope(data)
	if err != nil {
		return model.AppPersist{}, err
	}
	var persist model.AppPersist
	if err := json.Unmarshal(raw, &persist); err != nil {
		return model.AppPersist{}, err
	}

	if persist.Theme == "" {
		persist.Theme = model.ThemeSystem
	}
	if persist.PomodoroSettings.WorkDuration <= 0 {
		persist.PomodoroSettings.WorkDuration = model.DefaultWorkMinutes
	}
	if persist.PomodoroSettings.BreakDuration <= 0 {
		persist.PomodoroSettings.BreakDuration = model.DefaultBreakMinutes
	}
	return persist, nil
}

func decodeEnvelope(data []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.State == nil {
		return nil, io.ErrUnexpectedEOF
	}
	if env.Version > SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, env.Version)
	}
	return env.State, nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// backup stores the current blob as the latest backup (.bak) and as a
// timestamped member of the rotating set (.bak.<ts>), pruned to
// maxRotatingBackups.
func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
		return err
	}

	timestamp := time.Now().UTC().Format("20060102-150405.000000000")
	rotatingPath := fmt.Sprintf("%s.bak.%s", path, timestamp)
	if err := os.WriteFile(rotatingPath, data, 0o644); err != nil {
		return err
	}

	return pruneRotatingBackups(path)
}

func pruneRotatingBackups(path string) error {
	files, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return err
	}
	if len(files) <= maxRotatingBackups {
		return nil
	}

	sort.Strings(files)
	toDelete := files[:len(files)-maxRotatingBackups]
	for _, old := range toDelete {
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// backupCandidates lists the slot's backups, newest first: the latest
// .bak plus the rotating timestamped set.
func backupCandidates(path string) ([]string, error) {
	candidates := make([]string, 0, maxRotatingBackups+2)
	latest := path + ".bak"
	if _, err := os.Stat(latest); err == nil {
		candidates = append(candidates, latest)
	}
	rotating, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, rotating...)
	if len(candidates) == 0 {
		return nil, errNoValidBackup
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		iInfo, iErr := os.Stat(candidates[i])
		jInfo, jErr := os.Stat(candidates[j])
		if iErr != nil || jErr != nil {
			return candidates[i] > candidates[j]
		}
		return iInfo.ModTime().After(jInfo.ModTime())
	})
	return candidates, nil
}

func moveCorruptFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	timestamp := time.Now().UTC().Format("20060102-150405")
	corruptPath := filepath.Join(filepath.Dir(path), fmt.Sprintf("%s.corrupt-%s%s", name, timestamp, ext))
	if err := os.Rename(path, corruptPath); err != nil {
		return "", err
	}
	return corruptPath, nil
}

func isCorruptStateError(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}
