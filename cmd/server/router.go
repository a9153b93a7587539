package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/shelf-api/internal/api"
	apiMiddleware "github.com/phrazzld/shelf-api/internal/api/middleware"
	"github.com/phrazzld/shelf-api/internal/api/pipeline"
	"github.com/phrazzld/shelf-api/internal/validation"
)

// maxJSONBodyBytes caps JSON request bodies.
const maxJSONBodyBytes = 1 << 20

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	b := &pipeline.Builder{
		Authenticate: apiMiddleware.NewAuthenticator(app.tokens).Stage,
		RateLimit:    apiMiddleware.NewRateLimiter(app.limiter).Stage,
		Validator:    validation.New(),
		MaxBodyBytes: maxJSONBodyBytes,
	}

	authHandler := api.NewAuthHandler(app.userService)
	authorHandler := api.NewAuthorHandler(app.authorService)
	bookHandler := api.NewBookHandler(app.bookService)

	authorID := &pipeline.Input{Schema: api.AuthorIDSchema}
	bookID := &pipeline.Input{Schema: api.BookIDSchema}
	listQuery := &pipeline.Input{Schema: api.ListQuerySchema}
	partial := validation.Options{SkipMissingProperties: true}

	r.Route("/api", func(r chi.Router) {
		r.Use(apiMiddleware.RequestTimeout(app.config.Server.RequestTimeout()))

		// Authentication endpoints (public)
		r.Method(http.MethodPost, "/auth/register", b.Public(pipeline.Endpoint{
			Body:    &pipeline.Input{Schema: api.RegisterUserSchema},
			Handler: authHandler.Register,
		}))
		r.Method(http.MethodPost, "/auth/login", b.Public(pipeline.Endpoint{
			Body:    &pipeline.Input{Schema: api.LoginUserSchema},
			Handler: authHandler.Login,
		}))

		// Authors
		r.Method(http.MethodPost, "/authors", b.Protected(pipeline.Endpoint{
			Body:    &pipeline.Input{Schema: api.CreateAuthorSchema},
			Handler: authorHandler.Create,
		}))
		r.Method(http.MethodGet, "/authors", b.Protected(pipeline.Endpoint{
			Query:   listQuery,
			Handler: authorHandler.List,
		}))
		r.Method(http.MethodGet, "/authors/{id}", b.Protected(pipeline.Endpoint{
			Params:  authorID,
			Handler: authorHandler.Get,
		}))
		r.Method(http.MethodPut, "/authors/{id}", b.Protected(pipeline.Endpoint{
			Params:  authorID,
			Body:    &pipeline.Input{Schema: api.UpdateAuthorSchema, Options: partial},
			Handler: authorHandler.Update,
		}))
		r.Method(http.MethodDelete, "/authors/{id}", b.Protected(pipeline.Endpoint{
			Params:  authorID,
			Handler: authorHandler.Delete,
		}))

		// Books
		r.Method(http.MethodPost, "/books", b.Protected(pipeline.Endpoint{
			Body:    &pipeline.Input{Schema: api.CreateBookSchema},
			Handler: bookHandler.Create,
		}))
		r.Method(http.MethodGet, "/books", b.Protected(pipeline.Endpoint{
			Query:   listQuery,
			Handler: bookHandler.List,
		}))
		r.Method(http.MethodGet, "/books/{id}", b.Protected(pipeline.Endpoint{
			Params:  bookID,
			Handler: bookHandler.Get,
		}))
		r.Method(http.MethodPut, "/books/{id}", b.Protected(pipeline.Endpoint{
			Params:  bookID,
			Body:    &pipeline.Input{Schema: api.UpdateBookSchema, Options: partial},
			Handler: bookHandler.Update,
		}))
		r.Method(http.MethodDelete, "/books/{id}", b.Protected(pipeline.Endpoint{
			Params:  bookID,
			Handler: bookHandler.Delete,
		}))

		// Uploads
		r.Method(http.MethodPost, "/upload/image", b.Protected(pipeline.Endpoint{
			Handler: app.uploads.Upload,
		}))
	})

	r.Handle(api.UploadURLPrefix+"*", http.StripPrefix(api.UploadURLPrefix,
		http.FileServer(http.Dir(app.config.Upload.Dir))))

	r.Get("/", api.Root)
	r.Get("/health", api.Health)

	return r
}
