// Package validation checks decoded request payloads against declarative schemas.
//
// A Schema is plain data: a list of fields, each with a scalar type, a
// required flag and a list of go-playground/validator tags. One Validator
// interprets every schema, so request types carry no validation logic of
// their own. Validation coerces scalar strings to their declared type, trims
// strings, rejects undeclared fields and reports every violation it finds
// rather than stopping at the first.
package validation
