package study

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/at-ishikawa/estudazilla/internal/pdf"
	"github.com/at-ishikawa/estudazilla/internal/quiz"
	"github.com/at-ishikawa/estudazilla/internal/summary"
)

//go:generate mockgen -source=service.go -destination=../mocks/study/mock_service.go -package=mock_study

// DocumentProcessor turns a PDF file into tagged content.
type DocumentProcessor interface {
	Process(ctx context.Context, path string) (*pdf.Result, error)
}

// ServiceConfig holds the collaborators of a Service.
type ServiceConfig struct {
	Repository Repository
	Processor  DocumentProcessor
	// Inspect reads PDF metadata before processing. It is skipped when nil.
	Inspect    func(path string) (*pdf.Info, error)
	Summarizer *summary.Summarizer
	Generator  *quiz.Generator
	// Questions is the number of questions generated when a request asks for none.
	Questions int
	Logger    *slog.Logger
	Now       func() time.Time
}

// Service orchestrates ingestion, summaries, flashcards and quizzes on top of a Repository.
type Service struct {
	Repository

	processor  DocumentProcessor
	inspect    func(path string) (*pdf.Info, error)
	summarizer *summary.Summarizer
	generator  *quiz.Generator
	questions  int
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a Service.
func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		Repository: cfg.Repository,
		processor:  cfg.Processor,
		inspect:    cfg.Inspect,
		summarizer: cfg.Summarizer,
		generator:  cfg.Generator,
		questions:  cfg.Questions,
		logger:     cfg.Logger,
		now:        cfg.Now,
	}
	if s.summarizer == nil {
		s.summarizer = summary.NewSummarizer(0, 0)
	}
	if s.generator == nil {
		s.generator = quiz.NewGenerator(0)
	}
	if s.questions <= 0 {
		s.questions = 5
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// IngestResult is the outcome of ingesting one PDF.
type IngestResult struct {
	Document *Document      `json:"document"`
	Blocks   []ContentBlock `json:"blocks"`
	OCRPages []int          `json:"ocr_pages,omitempty"`
}

// Ingest processes the PDF at path and stores it with its content.
// An empty title falls back to the file name without extension.
func (s *Service) Ingest(ctx context.Context, path, title, category string) (*IngestResult, error) {
	var info *pdf.Info
	if s.inspect != nil {
		var err error
		info, err = s.inspect(path)
		if err != nil {
			return nil, fmt.Errorf("inspect(%s) > %w", path, err)
		}
	}

	result, err := s.processor.Process(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("processor.Process(%s) > %w", path, err)
	}

	if strings.TrimSpace(title) == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	pages := result.Pages
	if info != nil {
		pages = info.Pages
	}

	now := s.timestamp()
	doc := &Document{
		Title:        title,
		FilePath:     path,
		UploadDate:   now,
		LastAccessed: now,
		Category:     category,
		Pages:        pages,
	}
	if err := s.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("CreateDocument() > %w", err)
	}

	blocks, err := s.SaveContent(ctx, doc.ID, result.Structure)
	if err != nil {
		if delErr := s.DeleteDocument(ctx, doc.ID); delErr != nil {
			s.logger.Warn("failed to remove partially ingested document",
				slog.Int64("document", doc.ID), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("SaveContent() > %w", err)
	}

	s.logger.Info("ingested document",
		slog.Int64("document", doc.ID),
		slog.String("title", doc.Title),
		slog.Int("blocks", len(blocks)),
	)
	return &IngestResult{Document: doc, Blocks: blocks, OCRPages: result.OCRPages}, nil
}

// OpenDocument marks the document as accessed and returns it with its content tree.
func (s *Service) OpenDocument(ctx context.Context, id int64) (*Document, *pdf.Structure, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	now := s.timestamp()
	if err := s.TouchDocument(ctx, id, now); err != nil {
		return nil, nil, fmt.Errorf("TouchDocument() > %w", err)
	}
	doc.LastAccessed = now

	blocks, err := s.ListContent(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("ListContent() > %w", err)
	}
	return doc, StructureOf(blocks), nil
}

// StructureOf rebuilds the content tree from stored blocks, keeping their IDs.
func StructureOf(blocks []ContentBlock) *pdf.Structure {
	structure := &pdf.Structure{}
	for _, b := range blocks {
		structure.Add(b.Chapter, b.Theme, b.Subtheme, pdf.Content{
			ID:        b.ID,
			Page:      b.Page,
			Text:      b.Text,
			Important: b.IsImportant,
		})
	}
	return structure
}

// Summarize renders the text of a content block in the given style.
func (s *Service) Summarize(ctx context.Context, contentID int64, style summary.Style) (string, error) {
	block, err := s.GetContent(ctx, contentID)
	if err != nil {
		return "", err
	}
	return s.summarizer.Summarize(block.Text, style), nil
}

// CreateFlashcardFromContent stores a flashcard built from the flashcard summary of a block.
func (s *Service) CreateFlashcardFromContent(ctx context.Context, contentID int64) (*Flashcard, error) {
	block, err := s.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	question, answer := summary.SplitFlashcard(s.summarizer.Summarize(block.Text, summary.StyleFlashcard))
	card := &Flashcard{
		ContentID:   block.ID,
		Question:    question,
		Answer:      answer,
		CreatedDate: s.timestamp(),
		Difficulty:  DifficultyEasy,
		Chapter:     block.Chapter,
		Theme:       block.Theme,
	}
	if err := s.CreateFlashcard(ctx, card); err != nil {
		return nil, fmt.Errorf("CreateFlashcard() > %w", err)
	}
	return card, nil
}

// QuizRequest selects the source of a quiz. Exactly one of ContentID and DocumentID is set.
type QuizRequest struct {
	ContentID  int64     `json:"content_id,omitempty"`
	DocumentID int64     `json:"document_id,omitempty"`
	Count      int       `json:"count,omitempty"`
	Type       quiz.Type `json:"type,omitempty"`
	// Save stores the generated questions. Document quizzes are attached to the first block.
	Save bool `json:"save,omitempty"`
}

// GenerateQuiz builds questions from a content block or a whole document.
func (s *Service) GenerateQuiz(ctx context.Context, req QuizRequest) ([]quiz.Question, error) {
	if (req.ContentID == 0) == (req.DocumentID == 0) {
		return nil, fmt.Errorf("either a content or a document is required: %w", ErrInvalidInput)
	}
	count := req.Count
	if count <= 0 {
		count = s.questions
	}
	questionType := quiz.ParseType(string(req.Type))

	var (
		sentences []string
		ownerID   int64
	)
	if req.ContentID != 0 {
		block, err := s.GetContent(ctx, req.ContentID)
		if err != nil {
			return nil, err
		}
		sentences = summary.Sentences(block.Text)
		ownerID = block.ID
	} else {
		if _, err := s.GetDocument(ctx, req.DocumentID); err != nil {
			return nil, err
		}
		blocks, err := s.ListContent(ctx, req.DocumentID)
		if err != nil {
			return nil, fmt.Errorf("ListContent() > %w", err)
		}
		if len(blocks) == 0 {
			return nil, nil
		}
		sentences = quiz.SentencesFromStructure(StructureOf(blocks))
		ownerID = blocks[0].ID
	}

	questions := s.generator.Generate(sentences, count, questionType)
	if !req.Save {
		return questions, nil
	}

	created := s.timestamp()
	for _, q := range questions {
		if err := s.CreateQuestion(ctx, &Question{
			ContentID:     ownerID,
			Type:          string(q.Type),
			Text:          q.Text(),
			Options:       q.Options,
			CorrectAnswer: q.Answer,
			Explanation:   q.Explanation,
			Difficulty:    q.Difficulty,
			CreatedDate:   created,
		}); err != nil {
			return nil, fmt.Errorf("CreateQuestion() > %w", err)
		}
	}
	return questions, nil
}

// ReviewNow records a review of a flashcard at the current time.
func (s *Service) ReviewNow(ctx context.Context, id int64, difficulty Difficulty) error {
	return s.ReviewFlashcard(ctx, id, difficulty, s.timestamp())
}
