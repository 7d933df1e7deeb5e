// Package notes stores free-form notes in notes.json.
package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/estudazilla/internal/jsonstore"
)

// FileName is the notes file inside the wizard data directory.
const FileName = "notes.json"

// DefaultType is the type of notes created without one.
const DefaultType = "geral"

// Types are the accepted note types.
var Types = []string{"geral", "trabalho", "pessoal", "estudo", "projeto"}

var (
	ErrNotFound    = errors.New("note not found")
	ErrInvalidNote = errors.New("invalid note")
)

// Note is a stored note.
type Note struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Tags      []string       `json:"tags"`
	Type      string         `json:"type"`
	CreatedAt jsonstore.Time `json:"created_at"`
	UpdatedAt jsonstore.Time `json:"updated_at"`
}

// HasTag reports whether the note carries tag, ignoring case.
func (n Note) HasTag(tag string) bool {
	return slices.ContainsFunc(n.Tags, func(t string) bool {
		return strings.EqualFold(t, tag)
	})
}

// Input holds the editable fields of a note.
type Input struct {
	Title   string
	Content string
	Tags    []string
	Type    string
}

func (in Input) normalize() (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(strings.ReplaceAll(in.Content, "\r\n", "\n"))
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalidNote)
	}
	if in.Content == "" {
		return in, fmt.Errorf("%w: content is required", ErrInvalidNote)
	}
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if in.Type == "" {
		in.Type = DefaultType
	}
	if !slices.Contains(Types, in.Type) {
		return in, fmt.Errorf("%w: type %q must be one of %s", ErrInvalidNote, in.Type, strings.Join(Types, ", "))
	}
	in.Tags = ParseTags(strings.Join(in.Tags, ","))
	return in, nil
}

// ParseTags splits a comma separated list, dropping blanks and repeated tags.
func ParseTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(tags, tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// Store keeps notes in a JSON file. Every mutation rewrites the file atomically.
type Store struct {
	mu    sync.Mutex
	path  string
	now   func() time.Time
	newID func() string
}

func NewStore(path string) *Store {
	return &Store{
		path:  path,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Store) load() ([]Note, error) {
	notes, err := jsonstore.Load(s.path, []Note{})
	if err != nil {
		return nil, fmt.Errorf("jsonstore.Load(%s) > %w", s.path, err)
	}
	return notes, nil
}

func (s *Store) save(notes []Note) error {
	if err := jsonstore.Save(s.path, notes); err != nil {
		return fmt.Errorf("jsonstore.Save(%s) > %w", s.path, err)
	}
	return nil
}

// List returns every note in insertion order.
func (s *Store) List() ([]Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Get(id string) (*Note, error) {
	notes, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add validates in and appends it as a new note.
func (s *Store) Add(in Input) (*Note, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.load()
	if err != nil {
		return nil, err
	}
	now := jsonstore.NewTime(s.now())
	n := Note{
		ID:        s.newID(),
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.Tags,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(append(notes, n)); err != nil {
		return nil, err
	}
	return &n, nil
}

// Update replaces the editable fields of the note with id.
func (s *Store) Update(id string, in Input) (*Note, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.load()
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	notes[i].Title = in.Title
	notes[i].Content = in.Content
	notes[i].Tags = in.Tags
	notes[i].Type = in.Type
	notes[i].UpdatedAt = jsonstore.NewTime(s.now())
	if err := s.save(notes); err != nil {
		return nil, err
	}
	updated := notes[i]
	return &updated, nil
}

// Delete removes the note with id and leaves the others untouched.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// entries stay raw so keys unknown to Note survive the rewrite
	entries, err := jsonstore.Load(s.path, []json.RawMessage{})
	if err != nil {
		return fmt.Errorf("jsonstore.Load(%s) > %w", s.path, err)
	}
	i := slices.IndexFunc(entries, func(raw json.RawMessage) bool {
		var entry struct {
			ID string `json:"id"`
		}
		return json.Unmarshal(raw, &entry) == nil && entry.ID == id
	})
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := jsonstore.Save(s.path, slices.Delete(entries, i, i+1)); err != nil {
		return fmt.Errorf("jsonstore.Save(%s) > %w", s.path, err)
	}
	return nil
}

// Search returns the notes whose title, content or tags contain term, ignoring case.
// An empty term matches every note.
func (s *Store) Search(term string) ([]Note, error) {
	notes, err := s.List()
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return notes, nil
	}
	var found []Note
	for _, n := range notes {
		if matches(n, term) {
			found = append(found, n)
		}
	}
	return found, nil
}

func matches(n Note, term string) bool {
	if strings.Contains(strings.ToLower(n.Title), term) || strings.Contains(strings.ToLower(n.Content), term) {
		return true
	}
	return slices.ContainsFunc(n.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), term)
	})
}

// Filter returns the notes with tag and of noteType. Empty arguments match every note.
func (s *Store) Filter(tag, noteType string) ([]Note, error) {
	notes, err := s.List()
	if err != nil {
		return nil, err
	}
	tag = strings.TrimSpace(tag)
	noteType = strings.ToLower(strings.TrimSpace(noteType))
	var found []Note
	for _, n := range notes {
		if tag != "" && !n.HasTag(tag) {
			continue
		}
		if noteType != "" && n.Type != noteType {
			continue
		}
		found = append(found, n)
	}
	return found, nil
}
