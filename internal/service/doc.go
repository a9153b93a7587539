// Package service implements the catalog use cases: account registration and
// login, and author and book management.
//
// Services receive their stores, hasher and token service through
// constructors. Expected conditions (missing rows, duplicates, bad
// credentials) come back as *apperr.Failure values carrying a stable code;
// anything else is wrapped with context and left for the error responder to
// report as an unhandled exception.
//
// Operations that read and then write run inside store.RunInTransaction.
package service
