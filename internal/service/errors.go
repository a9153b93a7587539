package service

import (
	"errors"
	"net/http"

	"github.com/phrazzld/shelf-api/internal/apperr"
	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/validation"
)

// Messages of the failures returned by the services.
const (
	MessageUserExists         = "User with that email or username already exists"
	MessageInvalidCredentials = "Invalid credentials"

	MessageAuthorNotFound   = "Author not found."
	MessageAuthorNameExists = "Author with this name already exists."
	MessageAuthorHasBooks   = "Author still has books and cannot be deleted."

	MessageBookNotFound       = "Book not found for the provided bookId."
	MessageBookAuthorNotFound = "Author not found for the provided authorId."
)

func errUserExists() error {
	return apperr.New(http.StatusBadRequest, apperr.CodeUserExists, MessageUserExists)
}

func errInvalidCredentials() error {
	return apperr.New(http.StatusBadRequest, apperr.CodeInvalidCredentials, MessageInvalidCredentials)
}

func errAuthorNotFound() error {
	return apperr.New(http.StatusNotFound, apperr.CodeAuthorNotFound, MessageAuthorNotFound)
}

func errAuthorNameExists() error {
	return apperr.New(http.StatusConflict, apperr.CodeAuthorNameExists, MessageAuthorNameExists)
}

func errAuthorHasBooks() error {
	return apperr.New(http.StatusConflict, apperr.CodeAuthorHasBooks, MessageAuthorHasBooks)
}

func errBookNotFound() error {
	return apperr.New(http.StatusNotFound, apperr.CodeBookNotFound, MessageBookNotFound)
}

func errBookAuthorNotFound() error {
	return apperr.New(http.StatusNotFound, apperr.CodeBookAuthorNotFound, MessageBookAuthorNotFound)
}

// domainFailure turns a domain validation error into a body failure, or
// returns nil when err is something else.
func domainFailure(err error) error {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	return apperr.InvalidBody([]validation.Violation{{
		Property:    ve.Field,
		Constraints: map[string]string{"domain": ve.Err.Error()},
	}})
}
