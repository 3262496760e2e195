package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/word-of-the-day/internal/model"
)

// UserRegistrar is what the handler needs from the user service.
// Declaring the interface on the CONSUMER side keeps the handler testable
// with a small mock and free of any dependency on the service package.
type UserRegistrar interface {
	Register(ctx context.Context, name, email string) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

// UserHandler serves the /users endpoints.
type UserHandler struct {
	users  UserRegistrar
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserRegistrar, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// createUserRequest is the expected POST /users body.
// A request struct (rather than decoding into model.User directly) means
// clients can never smuggle in an ID or joined_date of their choosing.
type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleCreate registers a new subscriber.
//
// HTTP: POST /users
// BODY: {"name": "...", "email": "..."}
// Returns 201 with the stored record, or 400 if the email is taken.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid user JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Request body must be valid JSON",
		})
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// countResponse is the GET /users/count body.
type countResponse struct {
	Count int `json:"count"`
}

// HandleCount returns the total number of registered subscribers.
//
// HTTP: GET /users/count
func (h *UserHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.users.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: count})
}
