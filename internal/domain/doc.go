// Package domain holds the catalog entities (users, authors, books) and the
// authenticated Principal. It has no dependencies on transport or storage.
package domain
