package api

import "github.com/phrazzld/shelf-api/internal/domain"

// Success messages of the API.
const (
	MessageWelcome        = "Welcome to the shelf API"
	MessageHealthy        = "OK"
	MessageUserRegistered = "User registered successfully"
	MessageLoggedIn       = "Logged in successfully"
	MessageAuthorCreated  = "Author created successfully"
	MessageAuthorsFetched = "All authors fetched successfully"
	MessageAuthorFetched  = "Author details fetched successfully"
	MessageAuthorUpdated  = "Author updated successfully"
	MessageAuthorDeleted  = "Author deleted successfully"
	MessageBookCreated    = "Book created successfully"
	MessageBooksFetched   = "All books details fetched successfully"
	MessageBookFetched    = "Book details fetched successfully"
	MessageBookUpdated    = "Book updated successfully"
	MessageBookDeleted    = "Book deleted successfully"
	MessageImageUploaded  = "File uploaded and processed successfully"
)

// Request DTOs. They are filled from the clean facets produced by the
// validation stages, so they carry no validation tags.

// RegisterRequest is the body of the registration endpoint.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAuthorRequest is the body of POST /api/authors.
type CreateAuthorRequest struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

// UpdateAuthorRequest is the body of PUT /api/authors/{id}. Absent fields are nil.
type UpdateAuthorRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

// CreateBookRequest is the body of POST /api/books.
type CreateBookRequest struct {
	Title           string  `json:"title"`
	Genre           *string `json:"genre"`
	PublicationYear *int    `json:"publicationYear"`
	AuthorID        int64   `json:"authorId"`
}

// UpdateBookRequest is the body of PUT /api/books/{id}. Absent fields are nil.
type UpdateBookRequest struct {
	Title           *string `json:"title"`
	Genre           *string `json:"genre"`
	PublicationYear *int    `json:"publicationYear"`
	AuthorID        *int64  `json:"authorId"`
}

// IDParams holds the {id} URL parameter.
type IDParams struct {
	ID int64 `json:"id"`
}

// ListQuery holds the paging query parameters.
type ListQuery struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Response bodies.

type UserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type AuthorResponse struct {
	Message string         `json:"message"`
	Author  *domain.Author `json:"author"`
}

type AuthorListResponse struct {
	Message    string          `json:"message"`
	Authors    []domain.Author `json:"authors"`
	TotalCount int             `json:"totalCount"`
}

type BookResponse struct {
	Message string           `json:"message"`
	Book    *domain.BookView `json:"book"`
}

type BookListResponse struct {
	Message    string            `json:"message"`
	Books      []domain.BookView `json:"books"`
	TotalCount int               `json:"totalCount"`
}

// UploadResponse describes a stored image. Filepath is the URL path the
// image is served under.
type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
}
