// Package auth provides the credential primitives used by the API: signed
// access tokens carrying the caller's identity, and password hashing.
package auth
