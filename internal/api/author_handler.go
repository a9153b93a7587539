package api

import (
	"net/http"

	"github.com/phrazzld/shelf-api/internal/api/shared"
	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/service"
)

// AuthorHandler serves the /api/authors routes.
type AuthorHandler struct {
	authors service.AuthorService
}

// NewAuthorHandler creates a new AuthorHandler.
func NewAuthorHandler(authors service.AuthorService) *AuthorHandler {
	return &AuthorHandler{authors: authors}
}

// Create handles POST /api/authors.
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req CreateAuthorRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	author, err := h.authors.Create(r.Context(), req.Name, req.Bio)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthorResponse{
		Message: MessageAuthorCreated,
		Author:  author,
	})
	return nil
}

// List handles GET /api/authors.
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) error {
	page, err := listPage(r)
	if err != nil {
		return err
	}

	authors, total, err := h.authors.List(r.Context(), page)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthorListResponse{
		Message:    MessageAuthorsFetched,
		Authors:    authors,
		TotalCount: total,
	})
	return nil
}

// Get handles GET /api/authors/{id}.
func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	author, err := h.authors.Get(r.Context(), id)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthorResponse{
		Message: MessageAuthorFetched,
		Author:  author,
	})
	return nil
}

// Update handles PUT /api/authors/{id}.
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	var req UpdateAuthorRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	author, err := h.authors.Update(r.Context(), id, domain.AuthorPatch{
		Name: req.Name,
		Bio:  req.Bio,
	})
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthorResponse{
		Message: MessageAuthorUpdated,
		Author:  author,
	})
	return nil
}

// Delete handles DELETE /api/authors/{id}.
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.authors.Delete(r.Context(), id); err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: MessageAuthorDeleted})
	return nil
}
