package api

import (
	"net/http"

	"github.com/phrazzld/shelf-api/internal/api/shared"
	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/service"
)

// BookHandler serves the /api/books routes.
type BookHandler struct {
	books service.BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(books service.BookService) *BookHandler {
	return &BookHandler{books: books}
}

// Create handles POST /api/books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req CreateBookRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	book, err := h.books.Create(r.Context(), service.BookInput{
		Title:           req.Title,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	})
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, BookResponse{
		Message: MessageBookCreated,
		Book:    book,
	})
	return nil
}

// List handles GET /api/books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) error {
	page, err := listPage(r)
	if err != nil {
		return err
	}

	books, total, err := h.books.List(r.Context(), page)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BookListResponse{
		Message:    MessageBooksFetched,
		Books:      books,
		TotalCount: total,
	})
	return nil
}

// Get handles GET /api/books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	book, err := h.books.Get(r.Context(), id)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BookResponse{
		Message: MessageBookFetched,
		Book:    book,
	})
	return nil
}

// Update handles PUT /api/books/{id}.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	var req UpdateBookRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	book, err := h.books.Update(r.Context(), id, domain.BookPatch{
		Title:           req.Title,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	})
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BookResponse{
		Message: MessageBookUpdated,
		Book:    book,
	})
	return nil
}

// Delete handles DELETE /api/books/{id}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.books.Delete(r.Context(), id); err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: MessageBookDeleted})
	return nil
}
