package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/at-ishikawa/estudazilla/internal/export"
	"github.com/at-ishikawa/estudazilla/internal/pdf"
	"github.com/at-ishikawa/estudazilla/internal/quiz"
	"github.com/at-ishikawa/estudazilla/internal/study"
	"github.com/at-ishikawa/estudazilla/internal/summary"
)

// Handler serves the study API.
type Handler struct {
	service        *study.Service
	exporter       *export.Exporter
	uploadDir      string
	uploadMaxBytes int64
	logger         *slog.Logger
}

// DocumentResponse is a document with its content tree.
type DocumentResponse struct {
	Document  *study.Document `json:"document"`
	Structure *pdf.Structure  `json:"structure"`
}

// SummaryResponse is a rendered summary of a content block.
type SummaryResponse struct {
	ContentID int64         `json:"content_id"`
	Style     summary.Style `json:"style"`
	Summary   string        `json:"summary"`
}

// QuizRequest is the body of a quiz generation request.
type QuizRequest struct {
	Count int       `json:"count"`
	Type  quiz.Type `json:"type"`
	Save  bool      `json:"save"`
}

// ReviewRequest is the body of a flashcard review.
type ReviewRequest struct {
	Difficulty study.Difficulty `json:"difficulty"`
}

// ImportantRequest flags a content block.
type ImportantRequest struct {
	Important bool `json:"important"`
}

// StatsResponse combines the counters with the review suggestion.
type StatsResponse struct {
	study.Stats
	Suggestion *study.ReviewSuggestion `json:"suggestion,omitempty"`
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", raw, errBadRequest)
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w: %w", errBadRequest, err)
	}
	return nil
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UploadDocument ingests a PDF sent as the multipart field "file".
// The optional fields "title" and "category" describe the document.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, r, fmt.Errorf("r.ParseMultipartForm() > %w: %w", errBadRequest, err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, r, fmt.Errorf("r.FormFile(file) > %w: %w", errBadRequest, err))
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		h.writeError(w, r, fmt.Errorf("os.MkdirAll(%s) > %w", h.uploadDir, err))
		return
	}
	name := filepath.Base(header.Filename)
	path := filepath.Join(h.uploadDir, uuid.NewString()+"_"+name)
	dst, err := os.Create(path)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("os.Create(%s) > %w", path, err))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		_ = dst.Close()
		h.writeError(w, r, fmt.Errorf("io.Copy() > %w", err))
		return
	}
	if err := dst.Close(); err != nil {
		h.writeError(w, r, fmt.Errorf("dst.Close() > %w", err))
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = name[:len(name)-len(filepath.Ext(name))]
	}
	result, err := h.service.Ingest(r.Context(), path, title, r.FormValue("category"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListDocuments(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []study.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// GetDocument opens a document and returns its content tree.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	doc, structure, err := h.service.OpenDocument(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentResponse{Document: doc, Structure: structure})
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.service.DeleteDocument(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportDocument writes the document content in the "format" query parameter and sends the file.
func (h *Handler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	doc, err := h.service.GetDocument(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	blocks, err := h.service.ListContent(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	path, err := h.exporter.ExportContent(doc.Title, study.StructureOf(blocks), format)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

// DocumentQuiz generates questions from every block of a document.
func (h *Handler) DocumentQuiz(w http.ResponseWriter, r *http.Request) {
	h.quiz(w, r, func(id int64, req QuizRequest) study.QuizRequest {
		return study.QuizRequest{DocumentID: id, Count: req.Count, Type: req.Type, Save: req.Save}
	})
}

// ContentQuiz generates questions from one content block.
func (h *Handler) ContentQuiz(w http.ResponseWriter, r *http.Request) {
	h.quiz(w, r, func(id int64, req QuizRequest) study.QuizRequest {
		return study.QuizRequest{ContentID: id, Count: req.Count, Type: req.Type, Save: req.Save}
	})
}

func (h *Handler) quiz(w http.ResponseWriter, r *http.Request, build func(id int64, req QuizRequest) study.QuizRequest) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req QuizRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	questions, err := h.service.GenerateQuiz(r.Context(), build(id, req))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if questions == nil {
		questions = []quiz.Question{}
	}
	writeJSON(w, http.StatusOK, questions)
}

// ContentSummary summarizes a block in the "style" query parameter, bullet by default.
func (h *Handler) ContentSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	style := summary.ParseStyle(r.URL.Query().Get("style"))
	text, err := h.service.Summarize(r.Context(), id, style)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{ContentID: id, Style: style, Summary: text})
}

func (h *Handler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	card, err := h.service.CreateFlashcardFromContent(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (h *Handler) MarkImportant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req ImportantRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.service.MarkImportant(r.Context(), id, req.Important); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.ListFlashcards(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if cards == nil {
		cards = []study.Flashcard{}
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *Handler) ReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.service.ReviewNow(r.Context(), id, req.Difficulty); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListQuestions lists stored questions, filtered by the "type" query parameter when present.
func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.ListQuestions(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if questions == nil {
		questions = []study.Question{}
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	suggestion, err := h.service.ReviewSuggestion(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{Stats: *stats, Suggestion: suggestion})
}
