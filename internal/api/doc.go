// Package api handles incoming HTTP requests for authors, books, accounts
// and image uploads. Handlers are pipeline.HandlerFunc values: they read
// the clean, already validated request facets from the pipeline, call the
// services and either write a success envelope or return an error for the
// error responder.
//
// Request schemas live in schemas.go. They are data tables interpreted by
// the validation package, so DTO structs carry only json tags.
package api
