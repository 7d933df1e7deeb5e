package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/estudazilla/internal/config"
	"github.com/at-ishikawa/estudazilla/internal/export"
	mock_study "github.com/at-ishikawa/estudazilla/internal/mocks/study"
	"github.com/at-ishikawa/estudazilla/internal/pdf"
	"github.com/at-ishikawa/estudazilla/internal/quiz"
	"github.com/at-ishikawa/estudazilla/internal/study"
	"github.com/at-ishikawa/estudazilla/internal/testutil"
)

type testEnv struct {
	router    http.Handler
	service   *study.Service
	processor *mock_study.MockDocumentProcessor
	document  *study.Document
	blocks    []study.ContentBlock
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	processor := mock_study.NewMockDocumentProcessor(ctrl)

	svc := study.NewService(study.ServiceConfig{
		Repository: study.NewDBRepository(testutil.NewTestDB(t)),
		Processor:  processor,
		Generator:  quiz.NewGenerator(7),
	})
	doc, blocks := testutil.SeedDocument(t, svc, "biologia")

	tmpDir := t.TempDir()
	uploadDir := filepath.Join(tmpDir, "uploads")
	router := NewRouter(&Deps{
		Service:  svc,
		Exporter: export.NewExporter(config.ExportsConfig{Directory: filepath.Join(tmpDir, "exports")}),
		Config: config.ServerConfig{
			Port:        8501,
			UploadMaxMB: 1,
			CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
		UploadDir: uploadDir,
	})
	return &testEnv{
		router:    router,
		service:   svc,
		processor: processor,
		document:  doc,
		blocks:    blocks,
		uploadDir: uploadDir,
	}
}

func (env *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestRouter_Routes(t *testing.T) {
	env := newTestEnv(t)
	docID := env.document.ID
	contentID := env.blocks[0].ID

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		validate   func(t *testing.T, body []byte)
	}{
		{
			name:       "health check",
			method:     http.MethodGet,
			path:       "/healthz",
			wantStatus: http.StatusOK,
		},
		{
			name:       "lists documents",
			method:     http.MethodGet,
			path:       "/api/documents",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body []byte) {
				var docs []study.Document
				require.NoError(t, json.Unmarshal(body, &docs))
				require.Len(t, docs, 1)
				assert.Equal(t, "biologia", docs[0].Title)
			},
		},
		{
			name:       "opens a document",
			method:     http.MethodGet,
			path:       fmt.Sprintf("/api/documents/%d", docID),
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body []byte) {
				var resp DocumentResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, docID, resp.Document.ID)
				require.Len(t, resp.Structure.Chapters, 2)
				assert.Equal(t, "Genética", resp.Structure.Chapters[1].Title)
			},
		},
		{
			name:       "unknown document",
			method:     http.MethodGet,
			path:       "/api/documents/999",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed id",
			method:     http.MethodGet,
			path:       "/api/documents/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "summarizes content",
			method:     http.MethodGet,
			path:       fmt.Sprintf("/api/content/%d/summary?style=flashcard", contentID),
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body []byte) {
				var resp SummaryResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "flashcard", string(resp.Style))
				assert.True(t, strings.HasPrefix(resp.Summary, "Pergunta: "))
			},
		},
		{
			name:       "creates a flashcard",
			method:     http.MethodPost,
			path:       fmt.Sprintf("/api/content/%d/flashcards", contentID),
			wantStatus: http.StatusCreated,
			validate: func(t *testing.T, body []byte) {
				var card study.Flashcard
				require.NoError(t, json.Unmarshal(body, &card))
				assert.NotZero(t, card.ID)
				assert.Equal(t, contentID, card.ContentID)
			},
		},
		{
			name:       "generates a content quiz",
			method:     http.MethodPost,
			path:       fmt.Sprintf("/api/content/%d/quiz", contentID),
			body:       `{"count": 2, "type": "short_answer"}`,
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body []byte) {
				var questions []quiz.Question
				require.NoError(t, json.Unmarshal(body, &questions))
				assert.Len(t, questions, 2)
			},
		},
		{
			name:       "generates and saves a document quiz",
			method:     http.MethodPost,
			path:       fmt.Sprintf("/api/documents/%d/quiz", docID),
			body:       `{"count": 1, "type": "case_study", "save": true}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "rejects a malformed quiz body",
			method:     http.MethodPost,
			path:       fmt.Sprintf("/api/content/%d/quiz", contentID),
			body:       `{"count":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "marks content important",
			method:     http.MethodPut,
			path:       fmt.Sprintf("/api/content/%d/important", contentID),
			body:       `{"important": true}`,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "rejects an invalid difficulty",
			method:     http.MethodPost,
			path:       "/api/flashcards/1/review",
			body:       `{"difficulty": 5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "lists questions by type",
			method:     http.MethodGet,
			path:       "/api/questions?type=multiple_choice",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `[]`, string(body))
			},
		},
		{
			name:       "exports a document as text",
			method:     http.MethodGet,
			path:       fmt.Sprintf("/api/documents/%d/export?format=txt", docID),
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body []byte) {
				assert.Equal(t, export.ContentText(testutil.SampleStructure()), string(body))
			},
		},
		{
			name:       "rejects an unknown export format",
			method:     http.MethodGet,
			path:       fmt.Sprintf("/api/documents/%d/export?format=odt", docID),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.validate != nil {
				tt.validate(t, w.Body.Bytes())
			}
		})
	}
}

func TestRouter_FlashcardReviewAndStats(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/content/%d/flashcards", env.blocks[2].ID), "")
	require.Equal(t, http.StatusCreated, w.Code)
	var card study.Flashcard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/flashcards/%d/review", card.ID), `{"difficulty": 3}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/flashcards", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cards []study.Flashcard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, study.DifficultyHard, cards[0].Difficulty)
	assert.NotNil(t, cards[0].LastReviewed)

	w = env.do(t, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, 1, stats.Flashcards)
	require.NotNil(t, stats.Suggestion)
	assert.Equal(t, "Introdução", stats.Suggestion.Chapter)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/documents/%d", env.document.ID), "")
	require.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/documents/%d", env.document.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_UploadDocument(t *testing.T) {
	env := newTestEnv(t)
	env.processor.EXPECT().
		Process(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path string) (*pdf.Result, error) {
			assert.Equal(t, env.uploadDir, filepath.Dir(path))
			assert.True(t, strings.HasSuffix(path, "_apostila.pdf"))
			return &pdf.Result{Pages: 1, Structure: pdf.FromBlocks(testutil.SampleBlocks()[:1])}, nil
		})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("category", "Biologia"))
	part, err := mw.CreateFormFile("file", "apostila.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var result study.IngestResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "apostila", result.Document.Title)
	assert.Equal(t, "Biologia", result.Document.Category)
	assert.Len(t, result.Blocks, 1)

	req = httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader("not multipart"))
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{
			name:       "preflight from an allowed origin",
			method:     http.MethodOptions,
			origin:     "http://localhost:3000",
			wantStatus: http.StatusNoContent,
			wantOrigin: "http://localhost:3000",
		},
		{
			name:       "request from another origin gets no header",
			method:     http.MethodGet,
			origin:     "http://evil.example",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/healthz", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			env.router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
