// Package study stores documents, their content blocks, flashcards and quiz questions.
package study

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for requests that cannot be served as given.
	ErrInvalidInput = errors.New("invalid input")
)

// Document is an ingested PDF.
type Document struct {
	ID           int64     `db:"id" json:"id" yaml:"id"`
	Title        string    `db:"title" json:"title" yaml:"title"`
	FilePath     string    `db:"file_path" json:"file_path" yaml:"file_path"`
	UploadDate   time.Time `db:"upload_date" json:"upload_date" yaml:"upload_date"`
	LastAccessed time.Time `db:"last_accessed" json:"last_accessed" yaml:"last_accessed"`
	Category     string    `db:"category" json:"category" yaml:"category"`
	Pages        int       `db:"pages" json:"pages" yaml:"pages"`
}

// ContentBlock is a tagged page of a document.
type ContentBlock struct {
	ID           int64      `db:"id" json:"id" yaml:"id"`
	DocumentID   int64      `db:"document_id" json:"document_id" yaml:"document_id"`
	Chapter      string     `db:"chapter" json:"chapter" yaml:"chapter"`
	Theme        string     `db:"theme" json:"theme" yaml:"theme"`
	Subtheme     string     `db:"subtheme" json:"subtheme" yaml:"subtheme"`
	Page         int        `db:"page" json:"page" yaml:"page"`
	Text         string     `db:"text_content" json:"text" yaml:"text"`
	IsImportant  bool       `db:"is_important" json:"is_important" yaml:"is_important"`
	LastReviewed *time.Time `db:"last_reviewed" json:"last_reviewed,omitempty" yaml:"last_reviewed,omitempty"`
}

// Difficulty is the self-assessed difficulty of a flashcard.
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

// Valid reports whether d is one of the three levels.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Fácil"
	case DifficultyMedium:
		return "Médio"
	case DifficultyHard:
		return "Difícil"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Flashcard is a question and answer pair attached to a content block.
// Chapter and Theme come from the content block when listing.
type Flashcard struct {
	ID           int64      `db:"id" json:"id" yaml:"id"`
	ContentID    int64      `db:"content_id" json:"content_id" yaml:"content_id"`
	Question     string     `db:"question" json:"question" yaml:"question"`
	Answer       string     `db:"answer" json:"answer" yaml:"answer"`
	CreatedDate  time.Time  `db:"created_date" json:"created_date" yaml:"created_date"`
	LastReviewed *time.Time `db:"last_reviewed" json:"last_reviewed,omitempty" yaml:"last_reviewed,omitempty"`
	Difficulty   Difficulty `db:"difficulty" json:"difficulty" yaml:"difficulty"`
	Chapter      string     `db:"chapter" json:"chapter,omitempty" yaml:"chapter,omitempty"`
	Theme        string     `db:"theme" json:"theme,omitempty" yaml:"theme,omitempty"`
}

// Question is a stored quiz question.
type Question struct {
	ID            int64     `db:"id" json:"id" yaml:"id"`
	ContentID     int64     `db:"content_id" json:"content_id" yaml:"content_id"`
	Type          string    `db:"question_type" json:"type" yaml:"type"`
	Text          string    `db:"question_text" json:"question" yaml:"question"`
	Options       Options   `db:"options" json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer string    `db:"correct_answer" json:"answer" yaml:"answer"`
	Explanation   string    `db:"explanation" json:"explanation" yaml:"explanation"`
	Difficulty    int       `db:"difficulty" json:"difficulty" yaml:"difficulty"`
	CreatedDate   time.Time `db:"created_date" json:"created_date" yaml:"created_date"`
	Chapter       string    `db:"chapter" json:"chapter,omitempty" yaml:"chapter,omitempty"`
	Theme         string    `db:"theme" json:"theme,omitempty" yaml:"theme,omitempty"`
}

// Options is the ordered option list of a question, stored as a JSON array.
type Options []string

func (o Options) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(o))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(options) > %w", err)
	}
	return string(b), nil
}

func (o *Options) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported options type %T", src)
	}
	var options []string
	if err := json.Unmarshal(data, &options); err != nil {
		return fmt.Errorf("json.Unmarshal(options) > %w", err)
	}
	if len(options) == 0 {
		options = nil
	}
	*o = options
	return nil
}

// Stats summarizes the stored study material.
type Stats struct {
	Documents  int `db:"documents" json:"documents" yaml:"documents"`
	Flashcards int `db:"flashcards" json:"flashcards" yaml:"flashcards"`
	Questions  int `db:"questions" json:"questions" yaml:"questions"`
}

// ReviewSuggestion is the chapter and theme with the most content blocks that have no flashcard.
type ReviewSuggestion struct {
	Chapter string `db:"chapter" json:"chapter" yaml:"chapter"`
	Theme   string `db:"theme" json:"theme" yaml:"theme"`
	Pending int    `db:"pending" json:"pending" yaml:"pending"`
}
