package api

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/shelf-api/internal/api/shared"
	"github.com/phrazzld/shelf-api/internal/apperr"
)

// Failure messages raised by the API layer itself.
const (
	MessageNoFileUploaded   = "No file uploaded."
	MessageInvalidFileType  = "Only image files (JPEG, JPG, PNG) are allowed."
	MessageRouteNotFound    = "Route not found"
	MessageMethodNotAllowed = "Method not allowed"
)

func errNoFileUploaded() error {
	return apperr.New(http.StatusBadRequest, apperr.CodeNoFileUploaded, MessageNoFileUploaded)
}

func errInvalidFileType() error {
	return apperr.New(http.StatusBadRequest, apperr.CodeInvalidFileType, MessageInvalidFileType)
}

func errFileTooLarge(limit int64) error {
	return apperr.New(http.StatusBadRequest, apperr.CodeFileTooLarge,
		fmt.Sprintf("File too large. The limit is %d bytes.", limit))
}

func errImageTooLarge(maxPixels int64) error {
	return apperr.New(http.StatusBadRequest, apperr.CodeFileTooLarge,
		fmt.Sprintf("Image dimensions too large. The limit is %d pixels.", maxPixels))
}

// NotFound answers requests for unknown routes with the error envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithFailure(w, r,
		apperr.New(http.StatusNotFound, apperr.CodeNotFound, MessageRouteNotFound))
}

// MethodNotAllowed answers requests with an unsupported method for a known route.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithFailure(w, r,
		apperr.New(http.StatusMethodNotAllowed, apperr.CodeMethodNotAllowed, MessageMethodNotAllowed))
}
