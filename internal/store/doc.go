// Package store declares the persistence contracts for users, authors and
// books, plus the sentinel errors and paging types every implementation shares.
package store
