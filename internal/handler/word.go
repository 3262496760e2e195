package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/word-of-the-day/internal/model"
)

// WordCatalog is what the handler needs from the word service.
type WordCatalog interface {
	Create(ctx context.Context, title, description, example, publishedDate string) (*model.Word, error)
	List(ctx context.Context) ([]model.Word, error)
	BulkCreate(ctx context.Context, words []model.Word) (int, error)
	TodaysWord(ctx context.Context) (*model.Word, error)
}

// WordHandler serves the /words endpoints.
type WordHandler struct {
	words  WordCatalog
	logger *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(words WordCatalog, logger *slog.Logger) *WordHandler {
	return &WordHandler{words: words, logger: logger}
}

// createWordRequest is the expected POST /words body (and the element type
// of the POST /words/bulk array).
type createWordRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Example       string `json:"example"`
	PublishedDate string `json:"published_date"`
}

// HandleCreate stores a single word.
//
// HTTP: POST /words
// BODY: {"title": "...", "description": "...", "example": "...", "published_date": "2024-06-01"}
// Returns 201 with the stored record. A duplicate published_date is
// rejected by the store's uniqueness constraint and reported as 400.
func (h *WordHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid word JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Request body must be valid JSON",
		})
		return
	}

	word, err := h.words.Create(r.Context(), req.Title, req.Description, req.Example, req.PublishedDate)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, word)
}

// HandleList returns the whole catalog.
//
// HTTP: GET /words
func (h *WordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	words, err := h.words.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, words)
}

// bulkResponse is the POST /words/bulk success body.
type bulkResponse struct {
	Message string `json:"message"`
}

// HandleBulkCreate stores a batch of words transactionally.
//
// HTTP: POST /words/bulk
// BODY: [{"title": ...}, {"title": ...}, ...]
//
// All-or-nothing: on any failure the caller gets a 400 and NO words were
// added. On success the caller gets only a count — there are no per-item
// results to report because every item either fully succeeded or the
// request failed.
func (h *WordHandler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	var reqs []createWordRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		h.logger.Warn("invalid bulk words JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Request body must be a JSON array of words",
		})
		return
	}

	words := make([]model.Word, 0, len(reqs))
	for _, req := range reqs {
		words = append(words, model.Word{
			Title:         req.Title,
			Description:   req.Description,
			Example:       req.Example,
			PublishedDate: req.PublishedDate,
		})
	}

	count, err := h.words.BulkCreate(r.Context(), words)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bulkResponse{
		Message: fmt.Sprintf("Successfully added %d words.", count),
	})
}

// HandleToday returns the word of the day.
//
// HTTP: GET /words/today
// Returns 404 when no word is published for today's Eastern date — an
// expected condition for the frontend, not a server fault.
func (h *WordHandler) HandleToday(w http.ResponseWriter, r *http.Request) {
	word, err := h.words.TodaysWord(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, word)
}
