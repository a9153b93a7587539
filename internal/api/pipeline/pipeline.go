// Package pipeline composes the per-request stages of an endpoint:
// authentication, rate limiting, validation of the URL parameters, query
// and body, and finally the domain handler. The first failing stage ends
// the request and its failure is written by the error responder.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/shelf-api/internal/api/shared"
	"github.com/phrazzld/shelf-api/internal/apperr"
	"github.com/phrazzld/shelf-api/internal/platform/logger"
	"github.com/phrazzld/shelf-api/internal/validation"
)

// Stage is one fallible step of a request. It returns the request to hand
// to the next stage, usually with an enriched context, or a failure.
type Stage func(w http.ResponseWriter, r *http.Request) (*http.Request, error)

// HandlerFunc is a domain handler. A returned error is written by the
// error responder; on success the handler has written the response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Input is a schema applied to one part of the request.
type Input struct {
	Schema  validation.Schema
	Options validation.Options
}

// Endpoint declares what a route validates before its handler runs.
// Nil inputs are skipped.
type Endpoint struct {
	Params  *Input
	Query   *Input
	Body    *Input
	Handler HandlerFunc
}

// Builder turns endpoints into http.Handlers.
type Builder struct {
	Authenticate Stage
	RateLimit    Stage
	Validator    *validation.Validator

	// MaxBodyBytes caps JSON request bodies. Zero means no cap.
	MaxBodyBytes int64
}

// Protected composes Authenticate, RateLimit, validation and the handler.
func (b *Builder) Protected(e Endpoint) http.Handler {
	return b.compose(e, b.Authenticate, b.RateLimit)
}

// Public composes validation and the handler.
func (b *Builder) Public(e Endpoint) http.Handler {
	return b.compose(e)
}

func (b *Builder) compose(e Endpoint, guards ...Stage) http.Handler {
	stages := make([]Stage, 0, len(guards)+3)
	for _, g := range guards {
		if g == nil {
			panic("pipeline: protected endpoint requires authenticate and rate limit stages")
		}
		stages = append(stages, g)
	}
	if e.Params != nil {
		stages = append(stages, b.validateParams(*e.Params))
	}
	if e.Query != nil {
		stages = append(stages, b.validateQuery(*e.Query))
	}
	if e.Body != nil {
		stages = append(stages, b.validateBody(*e.Body))
	}
	if e.Handler == nil {
		panic("pipeline: endpoint has no handler")
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				shared.RespondWithFailure(w, r, apperr.Unhandled(r.Context(), fmt.Errorf("panic: %v", rec)))
			}
		}()

		for _, stage := range stages {
			next, err := stage(w, r)
			if err != nil {
				shared.RespondWithFailure(w, r, err)
				return
			}
			r = next
		}

		if err := e.Handler(w, r); err != nil {
			shared.RespondWithFailure(w, r, err)
		}
	})
}

type cleanKey int

const (
	paramsKey cleanKey = iota
	queryKey
	bodyKey
)

// Params returns the validated URL parameters of r.
func Params(r *http.Request) map[string]any { return clean(r.Context(), paramsKey) }

// Query returns the validated query parameters of r.
func Query(r *http.Request) map[string]any { return clean(r.Context(), queryKey) }

// Body returns the validated JSON body of r.
func Body(r *http.Request) map[string]any { return clean(r.Context(), bodyKey) }

func clean(ctx context.Context, k cleanKey) map[string]any {
	if m, ok := ctx.Value(k).(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func (b *Builder) check(r *http.Request, facet validation.Facet, in Input, payload map[string]any, key cleanKey) (*http.Request, error) {
	values, err := b.Validator.Check(facet, payload, in.Schema, in.Options)
	if err != nil {
		logger.FromContext(r.Context()).Debug("request failed validation",
			slog.String("facet", facet.String()),
			slog.String("schema", in.Schema.Name))
		return nil, err
	}
	return r.WithContext(context.WithValue(r.Context(), key, values)), nil
}

func (b *Builder) validateParams(in Input) Stage {
	return func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
		payload := map[string]any{}
		if rc := chi.RouteContext(r.Context()); rc != nil {
			for i, k := range rc.URLParams.Keys {
				if k == "*" {
					continue
				}
				payload[k] = rc.URLParams.Values[i]
			}
		}
		return b.check(r, validation.FacetParams, in, payload, paramsKey)
	}
}

func (b *Builder) validateQuery(in Input) Stage {
	return func(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
		payload := map[string]any{}
		for k, vs := range r.URL.Query() {
			if len(vs) == 1 {
				payload[k] = vs[0]
				continue
			}
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			payload[k] = list
		}
		return b.check(r, validation.FacetQuery, in, payload, queryKey)
	}
}

func (b *Builder) validateBody(in Input) Stage {
	return func(w http.ResponseWriter, r *http.Request) (*http.Request, error) {
		if b.MaxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, b.MaxBodyBytes)
		}

		payload, err := shared.ReadJSONObject(r)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, apperr.InvalidBody([]validation.Violation{{
					Property:    "body",
					Constraints: map[string]string{"maxSize": fmt.Sprintf("body must not exceed %d bytes", tooLarge.Limit)},
				}})
			}
			return nil, apperr.InvalidBody([]validation.Violation{{
				Property:    "body",
				Constraints: map[string]string{validation.ConstraintJSON: "body must be a valid JSON object"},
			}})
		}
		return b.check(r, validation.FacetBody, in, payload, bodyKey)
	}
}
