package project

import (
	"fmt"
	"slices"
	"sync"

	"github.com/at-ishikawa/estudazilla/internal/jsonstore"
)

// HistoryFileName is the history file inside the wizard data directory.
const HistoryFileName = "historico.json"

// History is the append-only list of created projects.
type History struct {
	mu   sync.Mutex
	path string
}

func NewHistory(path string) *History {
	return &History{path: path}
}

// All returns every recorded project, oldest first.
func (h *History) All() ([]Project, error) {
	projects, err := jsonstore.Load(h.path, []Project{})
	if err != nil {
		return nil, fmt.Errorf("jsonstore.Load(%s) > %w", h.path, err)
	}
	return projects, nil
}

// Append records p after the existing entries.
func (h *History) Append(p Project) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	projects, err := h.All()
	if err != nil {
		return err
	}
	projects = append(projects, p)
	if err := jsonstore.Save(h.path, projects); err != nil {
		return fmt.Errorf("jsonstore.Save(%s) > %w", h.path, err)
	}
	return nil
}

// Recent returns the last limit projects, newest first.
func (h *History) Recent(limit int) ([]Project, error) {
	projects, err := h.All()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(projects) > limit {
		projects = projects[len(projects)-limit:]
	}
	slices.Reverse(projects)
	return projects, nil
}
