// Package apperr defines the closed set of failures the HTTP surface can report.
//
// Every error that reaches the responder is either already a *Failure or is
// wrapped exactly once as an unhandled failure. A Failure carries the HTTP
// status, a stable machine-readable code, a human message and optional
// details, and is never mutated after construction.
package apperr
