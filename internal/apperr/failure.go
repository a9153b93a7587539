package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/shelf-api/internal/platform/logger"
	"github.com/phrazzld/shelf-api/internal/redact"
)

// Kind discriminates the variants of Failure.
type Kind int

const (
	// KindApplication is a domain failure raised deliberately by a handler or stage.
	KindApplication Kind = iota
	// KindValidationBody reports an invalid request body.
	KindValidationBody
	// KindValidationParams reports invalid query or URL parameters.
	KindValidationParams
	// KindUnhandled wraps any error that was not raised as a Failure.
	KindUnhandled
)

func (k Kind) String() string {
	switch k {
	case KindApplication:
		return "application"
	case KindValidationBody:
		return "validation_body"
	case KindValidationParams:
		return "validation_params"
	case KindUnhandled:
		return "unhandled"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Failure is an error with everything the responder needs to answer a request.
// Fields are unexported; a Failure cannot change once built.
type Failure struct {
	kind    Kind
	status  int
	code    string
	message string
	details any
	cause   error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.code, f.message, f.cause)
	}
	return fmt.Sprintf("%s: %s", f.code, f.message)
}

// Unwrap returns the wrapped cause of an unhandled failure.
func (f *Failure) Unwrap() error { return f.cause }

func (f *Failure) Kind() Kind       { return f.kind }
func (f *Failure) HTTPStatus() int  { return f.status }
func (f *Failure) Code() string     { return f.code }
func (f *Failure) Message() string  { return f.message }
func (f *Failure) Details() any     { return f.details }
func (f *Failure) HasDetails() bool { return f.details != nil }

// New builds an application failure. A status outside the 4xx/5xx range is
// replaced by 500. At most one details value is kept.
func New(status int, code, message string, details ...any) *Failure {
	if status < http.StatusBadRequest || status > 599 {
		status = http.StatusInternalServerError
	}

	f := &Failure{
		kind:    KindApplication,
		status:  status,
		code:    code,
		message: message,
	}
	if len(details) > 0 {
		f.details = details[0]
	}
	return f
}

// InvalidBody reports a request body that failed validation.
func InvalidBody(details any) *Failure {
	return &Failure{
		kind:    KindValidationBody,
		status:  http.StatusBadRequest,
		code:    CodeInvalidRequestBody,
		message: MessageInvalidBody,
		details: details,
	}
}

// InvalidQuery reports query parameters that failed validation.
func InvalidQuery(details any) *Failure {
	return &Failure{
		kind:    KindValidationParams,
		status:  http.StatusBadRequest,
		code:    CodeInvalidRequestQuery,
		message: MessageInvalidQuery,
		details: details,
	}
}

// InvalidParams reports URL path parameters that failed validation.
func InvalidParams(details any) *Failure {
	return &Failure{
		kind:    KindValidationParams,
		status:  http.StatusBadRequest,
		code:    CodeInvalidRequestParams,
		message: MessageInvalidParams,
		details: details,
	}
}

// Unhandled wraps err as a 500 failure and logs it once at ERROR.
// The details carry the redacted error text. If err already is, or wraps,
// a *Failure, that failure is returned unchanged.
func Unhandled(ctx context.Context, err error) *Failure {
	if f, ok := As(err); ok {
		return f
	}

	f := &Failure{
		kind:    KindUnhandled,
		status:  http.StatusInternalServerError,
		code:    CodeUnhandledException,
		message: MessageUnhandled,
		cause:   err,
	}

	if err != nil {
		f.details = redact.Error(err)
	}

	logger.FromContext(ctx).ErrorContext(ctx, "unhandled error",
		"error", redact.Error(err),
		"error_type", fmt.Sprintf("%T", err))

	return f
}

// From returns the failure carried by err, wrapping anything else as Unhandled.
// A nil err yields nil.
func From(ctx context.Context, err error) *Failure {
	if err == nil {
		return nil
	}
	return Unhandled(ctx, err)
}

// As reports whether err is or wraps a *Failure and returns it.
func As(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) && f != nil {
		return f, true
	}
	return nil, false
}

// HasCode reports whether err carries a failure with the given code.
func HasCode(err error, code string) bool {
	f, ok := As(err)
	return ok && f.code == code
}
