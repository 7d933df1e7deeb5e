// Package datasync moves the study database to and from YAML snapshots.
package datasync

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/estudazilla/internal/pdf"
	"github.com/at-ishikawa/estudazilla/internal/study"
)

// Snapshot is the file form of the study database.
type Snapshot struct {
	Documents []DocumentRecord `yaml:"documents"`
}

// DocumentRecord is a document with its content tree flattened into blocks.
type DocumentRecord struct {
	study.Document `yaml:",inline"`
	Content        []ContentRecord `yaml:"content"`
}

// ContentRecord is a content block with the flashcards and questions attached to it.
type ContentRecord struct {
	study.ContentBlock `yaml:",inline"`
	Flashcards         []study.Flashcard `yaml:"flashcards,omitempty"`
	Questions          []study.Question  `yaml:"questions,omitempty"`
}

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	DocumentsNew     int
	DocumentsSkipped int
	DocumentsUpdated int
	ContentNew       int
	FlashcardsNew    int
	QuestionsNew     int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
	// UpdateExisting replaces documents with the same title and file path instead of skipping them.
	UpdateExisting bool
}

// Exporter reads the database into a snapshot.
type Exporter struct {
	repo study.Repository
}

// NewExporter creates a new Exporter.
func NewExporter(repo study.Repository) *Exporter {
	return &Exporter{repo: repo}
}

// Export reads every document with its content, flashcards and questions.
func (e *Exporter) Export(ctx context.Context) (*Snapshot, error) {
	docs, err := e.repo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListDocuments() > %w", err)
	}
	cards, err := e.repo.ListFlashcards(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListFlashcards() > %w", err)
	}
	questions, err := e.repo.ListQuestions(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("repo.ListQuestions() > %w", err)
	}

	cardsByContent := make(map[int64][]study.Flashcard)
	for _, c := range cards {
		cardsByContent[c.ContentID] = append(cardsByContent[c.ContentID], c)
	}
	questionsByContent := make(map[int64][]study.Question)
	for _, q := range questions {
		questionsByContent[q.ContentID] = append(questionsByContent[q.ContentID], q)
	}

	snapshot := &Snapshot{Documents: make([]DocumentRecord, 0, len(docs))}
	for _, doc := range docs {
		blocks, err := e.repo.ListContent(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("repo.ListContent(%d) > %w", doc.ID, err)
		}
		record := DocumentRecord{Document: doc, Content: make([]ContentRecord, 0, len(blocks))}
		for _, b := range blocks {
			record.Content = append(record.Content, ContentRecord{
				ContentBlock: b,
				Flashcards:   cardsByContent[b.ID],
				Questions:    questionsByContent[b.ID],
			})
		}
		snapshot.Documents = append(snapshot.Documents, record)
	}
	return snapshot, nil
}

// Importer writes a snapshot into the database.
type Importer struct {
	repo   study.Repository
	writer io.Writer
}

// NewImporter creates a new Importer reporting each document to writer.
func NewImporter(repo study.Repository, writer io.Writer) *Importer {
	return &Importer{repo: repo, writer: writer}
}

// Import stores the documents of snapshot. IDs in the snapshot are not reused;
// flashcards and questions follow their content block to its new ID.
func (imp *Importer) Import(ctx context.Context, snapshot *Snapshot, opts ImportOptions) (*ImportResult, error) {
	existing, err := imp.repo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListDocuments() > %w", err)
	}
	type key struct{ title, path string }
	byKey := make(map[key]int64, len(existing))
	for _, d := range existing {
		byKey[key{d.Title, d.FilePath}] = d.ID
	}

	var result ImportResult
	for _, record := range snapshot.Documents {
		if id, ok := byKey[key{record.Title, record.FilePath}]; ok {
			if !opts.UpdateExisting {
				fmt.Fprintf(imp.writer, "  [SKIP]  %q (%s)\n", record.Title, record.FilePath)
				result.DocumentsSkipped++
				continue
			}
			if !opts.DryRun {
				if err := imp.repo.DeleteDocument(ctx, id); err != nil {
					return nil, fmt.Errorf("DeleteDocument(%d) > %w", id, err)
				}
			}
			fmt.Fprintf(imp.writer, "  [UPDATE]  %q (%s)\n", record.Title, record.FilePath)
			result.DocumentsUpdated++
		} else {
			fmt.Fprintf(imp.writer, "  [NEW]  %q (%s)\n", record.Title, record.FilePath)
			result.DocumentsNew++
		}

		for _, c := range record.Content {
			result.ContentNew++
			result.FlashcardsNew += len(c.Flashcards)
			result.QuestionsNew += len(c.Questions)
		}
		if opts.DryRun {
			continue
		}
		if err := imp.importDocument(ctx, record); err != nil {
			return nil, fmt.Errorf("importDocument(%s) > %w", record.Title, err)
		}
	}
	return &result, nil
}

func (imp *Importer) importDocument(ctx context.Context, record DocumentRecord) error {
	doc := record.Document
	doc.ID = 0
	if err := imp.repo.CreateDocument(ctx, &doc); err != nil {
		return fmt.Errorf("CreateDocument() > %w", err)
	}

	blocks := make([]study.ContentBlock, len(record.Content))
	records := make(map[int64]ContentRecord, len(record.Content))
	for i, c := range record.Content {
		blocks[i] = c.ContentBlock
		records[c.ID] = c
	}
	structure := study.StructureOf(blocks)
	saved, err := imp.repo.SaveContent(ctx, doc.ID, structure)
	if err != nil {
		return fmt.Errorf("SaveContent() > %w", err)
	}

	// SaveContent stores blocks in walk order, so saved[i] is the i-th visited block.
	var oldIDs []int64
	structure.Walk(func(_, _, _ string, c pdf.Content) {
		oldIDs = append(oldIDs, c.ID)
	})
	if len(oldIDs) != len(saved) {
		return fmt.Errorf("saved %d content blocks, want %d", len(saved), len(oldIDs))
	}
	for i, block := range saved {
		if err := imp.importContent(ctx, block.ID, records[oldIDs[i]]); err != nil {
			return fmt.Errorf("importContent(%d) > %w", block.ID, err)
		}
	}
	return nil
}

func (imp *Importer) importContent(ctx context.Context, contentID int64, record ContentRecord) error {
	if record.IsImportant {
		if err := imp.repo.MarkImportant(ctx, contentID, true); err != nil {
			return fmt.Errorf("MarkImportant() > %w", err)
		}
	}
	for _, card := range record.Flashcards {
		card.ID = 0
		card.ContentID = contentID
		if err := imp.repo.CreateFlashcard(ctx, &card); err != nil {
			return fmt.Errorf("CreateFlashcard() > %w", err)
		}
		if card.LastReviewed != nil {
			if err := imp.repo.ReviewFlashcard(ctx, card.ID, card.Difficulty, *card.LastReviewed); err != nil {
				return fmt.Errorf("ReviewFlashcard(%d) > %w", card.ID, err)
			}
		}
	}
	for _, q := range record.Questions {
		q.ID = 0
		q.ContentID = contentID
		if err := imp.repo.CreateQuestion(ctx, &q); err != nil {
			return fmt.Errorf("CreateQuestion() > %w", err)
		}
	}
	return nil
}

// WriteSnapshot writes snapshot as YAML to path, creating parent directories.
func WriteSnapshot(path string, snapshot *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	content, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml.Marshal() > %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

// ReadSnapshot reads a YAML snapshot from path.
func ReadSnapshot(path string) (*Snapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var snapshot Snapshot
	if err := yaml.Unmarshal(content, &snapshot); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return &snapshot, nil
}
