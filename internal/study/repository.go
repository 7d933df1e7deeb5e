package study

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/estudazilla/internal/database"
	"github.com/at-ishikawa/estudazilla/internal/pdf"
)

// Repository defines the persistence operations of the study material.
type Repository interface {
	CreateDocument(ctx context.Context, doc *Document) error
	ListDocuments(ctx context.Context) ([]Document, error)
	GetDocument(ctx context.Context, id int64) (*Document, error)
	TouchDocument(ctx context.Context, id int64, at time.Time) error
	DeleteDocument(ctx context.Context, id int64) error

	SaveContent(ctx context.Context, documentID int64, structure *pdf.Structure) ([]ContentBlock, error)
	ListContent(ctx context.Context, documentID int64) ([]ContentBlock, error)
	GetContent(ctx context.Context, id int64) (*ContentBlock, error)
	MarkImportant(ctx context.Context, id int64, important bool) error

	CreateFlashcard(ctx context.Context, card *Flashcard) error
	ListFlashcards(ctx context.Context) ([]Flashcard, error)
	ReviewFlashcard(ctx context.Context, id int64, difficulty Difficulty, at time.Time) error

	CreateQuestion(ctx context.Context, q *Question) error
	ListQuestions(ctx context.Context, questionType string) ([]Question, error)

	Stats(ctx context.Context) (*Stats, error)
	ReviewSuggestion(ctx context.Context) (*ReviewSuggestion, error)
}

// DBRepository implements Repository with sqlx.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

const (
	documentColumns  = "id, title, file_path, upload_date, last_accessed, category, pages"
	contentColumns   = "id, document_id, chapter, theme, subtheme, page, text_content, is_important, last_reviewed"
	flashcardColumns = "f.id, f.content_id, f.question, f.answer, f.created_date, f.last_reviewed, f.difficulty, c.chapter, c.theme"
	questionColumns  = "q.id, q.content_id, q.question_type, q.question_text, q.options, q.correct_answer, q.explanation, q.difficulty, q.created_date, c.chapter, c.theme"
)

// CreateDocument inserts doc and sets its ID.
func (r *DBRepository) CreateDocument(ctx context.Context, doc *Document) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (title, file_path, upload_date, last_accessed, category, pages) VALUES (?, ?, ?, ?, ?, ?)",
		doc.Title, doc.FilePath, doc.UploadDate, doc.LastAccessed, doc.Category, doc.Pages)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert document) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	doc.ID = id
	return nil
}

// ListDocuments returns documents, most recently accessed first.
func (r *DBRepository) ListDocuments(ctx context.Context) ([]Document, error) {
	var docs []Document
	if err := r.db.SelectContext(ctx, &docs,
		"SELECT "+documentColumns+" FROM documents ORDER BY last_accessed DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(documents) > %w", err)
	}
	return docs, nil
}

// GetDocument returns the document with id, or ErrNotFound.
func (r *DBRepository) GetDocument(ctx context.Context, id int64) (*Document, error) {
	var doc Document
	err := r.db.GetContext(ctx, &doc, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(document) > %w", err)
	}
	return &doc, nil
}

// TouchDocument records that the document was opened.
func (r *DBRepository) TouchDocument(ctx context.Context, id int64, at time.Time) error {
	result, err := r.db.ExecContext(ctx, "UPDATE documents SET last_accessed = ? WHERE id = ?", at, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(touch document) > %w", err)
	}
	return expectAffected(result, "document", id)
}

// DeleteDocument removes the document with its content, flashcards and questions.
func (r *DBRepository) DeleteDocument(ctx context.Context, id int64) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		const contentIDs = "SELECT id FROM content WHERE document_id = ?"
		if _, err := tx.ExecContext(ctx, "DELETE FROM flashcards WHERE content_id IN ("+contentIDs+")", id); err != nil {
			return fmt.Errorf("tx.ExecContext(delete flashcards) > %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM questions WHERE content_id IN ("+contentIDs+")", id); err != nil {
			return fmt.Errorf("tx.ExecContext(delete questions) > %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM content WHERE document_id = ?", id); err != nil {
			return fmt.Errorf("tx.ExecContext(delete content) > %w", err)
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(delete document) > %w", err)
		}
		return expectAffected(result, "document", id)
	})
}

// SaveContent inserts every block of structure in tree order within one transaction.
func (r *DBRepository) SaveContent(ctx context.Context, documentID int64, structure *pdf.Structure) ([]ContentBlock, error) {
	var blocks []ContentBlock
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, b := range structure.Blocks() {
			result, err := tx.ExecContext(ctx,
				"INSERT INTO content (document_id, chapter, theme, subtheme, page, text_content, is_important) VALUES (?, ?, ?, ?, ?, ?, ?)",
				documentID, b.Chapter, b.Theme, b.Subtheme, b.Page, b.Text, false)
			if err != nil {
				return fmt.Errorf("tx.ExecContext(insert content) > %w", err)
			}
			id, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("result.LastInsertId() > %w", err)
			}
			blocks = append(blocks, ContentBlock{
				ID:         id,
				DocumentID: documentID,
				Chapter:    b.Chapter,
				Theme:      b.Theme,
				Subtheme:   b.Subtheme,
				Page:       b.Page,
				Text:       b.Text,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// ListContent returns the blocks of a document ordered by page.
func (r *DBRepository) ListContent(ctx context.Context, documentID int64) ([]ContentBlock, error) {
	var blocks []ContentBlock
	if err := r.db.SelectContext(ctx, &blocks,
		"SELECT "+contentColumns+" FROM content WHERE document_id = ? ORDER BY page, id", documentID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(content) > %w", err)
	}
	return blocks, nil
}

// GetContent returns the content block with id, or ErrNotFound.
func (r *DBRepository) GetContent(ctx context.Context, id int64) (*ContentBlock, error) {
	var block ContentBlock
	err := r.db.GetContext(ctx, &block, "SELECT "+contentColumns+" FROM content WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("content %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(content) > %w", err)
	}
	return &block, nil
}

// MarkImportant flags or unflags a content block.
func (r *DBRepository) MarkImportant(ctx context.Context, id int64, important bool) error {
	result, err := r.db.ExecContext(ctx, "UPDATE content SET is_important = ? WHERE id = ?", important, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(mark important) > %w", err)
	}
	return expectAffected(result, "content", id)
}

// CreateFlashcard inserts card and sets its ID.
func (r *DBRepository) CreateFlashcard(ctx context.Context, card *Flashcard) error {
	if card.Difficulty == 0 {
		card.Difficulty = DifficultyEasy
	}
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO flashcards (content_id, question, answer, created_date, difficulty) VALUES (?, ?, ?, ?, ?)",
		card.ContentID, card.Question, card.Answer, card.CreatedDate, card.Difficulty)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert flashcard) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	card.ID = id
	return nil
}

// ListFlashcards returns flashcards with their chapter and theme, least recently reviewed first.
// Never reviewed cards come first.
func (r *DBRepository) ListFlashcards(ctx context.Context) ([]Flashcard, error) {
	var cards []Flashcard
	query := "SELECT " + flashcardColumns + ` FROM flashcards f
		JOIN content c ON f.content_id = c.id
		ORDER BY f.last_reviewed IS NOT NULL, f.last_reviewed, f.id`
	if err := r.db.SelectContext(ctx, &cards, query); err != nil {
		return nil, fmt.Errorf("db.SelectContext(flashcards) > %w", err)
	}
	return cards, nil
}

// ReviewFlashcard stores the difficulty chosen after a review.
func (r *DBRepository) ReviewFlashcard(ctx context.Context, id int64, difficulty Difficulty, at time.Time) error {
	if !difficulty.Valid() {
		return fmt.Errorf("difficulty %d: %w", difficulty, ErrInvalidInput)
	}
	result, err := r.db.ExecContext(ctx,
		"UPDATE flashcards SET difficulty = ?, last_reviewed = ? WHERE id = ?", difficulty, at, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(review flashcard) > %w", err)
	}
	return expectAffected(result, "flashcard", id)
}

// CreateQuestion inserts q and sets its ID.
func (r *DBRepository) CreateQuestion(ctx context.Context, q *Question) error {
	if q.Difficulty == 0 {
		q.Difficulty = 1
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (content_id, question_type, question_text, options, correct_answer, explanation, difficulty, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ContentID, q.Type, q.Text, q.Options, q.CorrectAnswer, q.Explanation, q.Difficulty, q.CreatedDate)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert question) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	q.ID = id
	return nil
}

// ListQuestions returns stored questions, optionally only those of questionType.
func (r *DBRepository) ListQuestions(ctx context.Context, questionType string) ([]Question, error) {
	var questions []Question
	query := "SELECT " + questionColumns + " FROM questions q JOIN content c ON q.content_id = c.id"
	args := []any{}
	if questionType != "" {
		query += " WHERE q.question_type = ?"
		args = append(args, questionType)
	}
	query += " ORDER BY q.id"
	if err := r.db.SelectContext(ctx, &questions, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(questions) > %w", err)
	}
	return questions, nil
}

// Stats counts documents, flashcards and questions.
func (r *DBRepository) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := r.db.GetContext(ctx, &stats, `SELECT
		(SELECT COUNT(*) FROM documents) AS documents,
		(SELECT COUNT(*) FROM flashcards) AS flashcards,
		(SELECT COUNT(*) FROM questions) AS questions`)
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(stats) > %w", err)
	}
	return &stats, nil
}

// ReviewSuggestion returns the chapter and theme with the most blocks without flashcards,
// or nil when every block has one.
func (r *DBRepository) ReviewSuggestion(ctx context.Context) (*ReviewSuggestion, error) {
	var s ReviewSuggestion
	err := r.db.GetContext(ctx, &s, `SELECT c.chapter, c.theme, COUNT(*) AS pending
		FROM content c
		LEFT JOIN flashcards f ON c.id = f.content_id
		WHERE f.id IS NULL
		GROUP BY c.chapter, c.theme
		ORDER BY pending DESC, MIN(c.id)
		LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(review suggestion) > %w", err)
	}
	return &s, nil
}

func expectAffected(result sql.Result, kind string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}
