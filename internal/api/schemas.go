package api

import (
	"strconv"

	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/validation"
)

// Query paging bounds.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MaxPage          = 1_000_000
)

// RegisterUserSchema validates POST /api/auth/register bodies.
var RegisterUserSchema = validation.Schema{
	Name: "RegisterUser",
	Fields: []validation.Field{
		{Name: "username", Type: validation.String, Required: true, Rules: []validation.Rule{
			{Tag: "notblank", Message: "Username cannot be empty."},
		}},
		{Name: "email", Type: validation.String, Required: true, Rules: []validation.Rule{
			{Tag: "notblank", Message: "Email cannot be empty."},
			{Tag: "email", Message: "Invalid email format."},
		}},
		{Name: "password", Type: validation.String, Required: true, Rules: []validation.Rule{
			{Tag: "notblank", Message: "Password cannot be empty."},
			{Tag: "min=6", Message: "Password must be at least 6 characters long."},
		}},
	},
}

// LoginUserSchema validates POST /api/auth/login bodies.
var LoginUserSchema = validation.Schema{
	Name: "LoginUser",
	Fields: []validation.Field{
		{Name: "email", Type: validation.String, Required: true, Rules: []validation.Rule{
			{Tag: "notblank", Message: "Email cannot be empty."},
			{Tag: "email", Message: "Invalid email format."},
		}},
		{Name: "password", Type: validation.String, Required: true, Rules: []validation.Rule{
			{Tag: "notblank", Message: "Password cannot be empty."},
		}},
	},
}

// CreateAuthorSchema validates POST /api/authors bodies.
var CreateAuthorSchema = validation.Schema{
	Name: "CreateAuthor",
	Fields: []validation.Field{
		{Name: "name", Type: validation.String, Required: true, Rules: []validation.Rule{
			{Tag: "notblank", Message: "Author name cannot be empty."},
			{Tag: "max=" + strconv.Itoa(domain.MaxAuthorNameLength)},
		}},
		{Name: "bio", Type: validation.String},
	},
}

// UpdateAuthorSchema validates PUT /api/authors/{id} bodies. It is applied
// with SkipMissingProperties.
var UpdateAuthorSchema = validation.Schema{
	Name: "UpdateAuthor",
	Fields: []validation.Field{
		{Name: "name", Type: validation.String, Required: true, Rules: []validation.Rule{
			{Tag: "notblank", Message: "Author name cannot be empty if provided."},
			{Tag: "max=" + strconv.Itoa(domain.MaxAuthorNameLength)},
		}},
		{Name: "bio", Type: validation.String},
	},
}

// AuthorIDSchema validates the {id} URL parameter of author routes.
var AuthorIDSchema = idSchema("AuthorID", "Author ID")

// BookIDSchema validates the {id} URL parameter of book routes.
var BookIDSchema = idSchema("BookID", "Book ID")

// CreateBookSchema validates POST /api/books bodies.
var CreateBookSchema = validation.Schema{
	Name: "CreateBook",
	Fields: []validation.Field{
		{Name: "title", Type: validation.String, Required: true, Rules: []validation.Rule{
			{Tag: "notblank", Message: "Book title cannot be empty."},
		}},
		{Name: "genre", Type: validation.String},
		{
			Name:        "publicationYear",
			Type:        validation.Int,
			TypeMessage: "Publication year must be an integer.",
			Rules: []validation.Rule{
				{Tag: "gte=" + strconv.Itoa(domain.MinPublicationYear), Message: "Publication year must be a valid year (e.g., 1000 or later)."},
				{Tag: "lte=" + strconv.Itoa(domain.MaxPublicationYear), Message: "Publication year must be a valid year (9999 or earlier)."},
			},
		},
		{
			Name:        "authorId",
			Type:        validation.Int,
			Required:    true,
			TypeMessage: "Author ID must be an integer.",
			Rules: []validation.Rule{
				{Tag: "gte=1", Message: "Author ID must be a positive integer."},
			},
		},
	},
}

// UpdateBookSchema validates PUT /api/books/{id} bodies. It is applied with
// SkipMissingProperties.
var UpdateBookSchema = validation.Schema{
	Name: "UpdateBook",
	Fields: []validation.Field{
		{Name: "title", Type: validation.String, Required: true, Rules: []validation.Rule{
			{Tag: "notblank", Message: "Book title cannot be empty if provided."},
		}},
		{Name: "genre", Type: validation.String},
		{
			Name:        "publicationYear",
			Type:        validation.Int,
			TypeMessage: "Publication year must be an integer if provided.",
			Rules: []validation.Rule{
				{Tag: "gte=" + strconv.Itoa(domain.MinPublicationYear), Message: "Publication year must be a valid year (e.g., 1000 or later) if provided."},
				{Tag: "lte=" + strconv.Itoa(domain.MaxPublicationYear), Message: "Publication year must be a valid year (9999 or earlier) if provided."},
			},
		},
		{
			Name:        "authorId",
			Type:        validation.Int,
			Required:    true,
			TypeMessage: "Author ID must be an integer if provided.",
			Rules: []validation.Rule{
				{Tag: "gte=1", Message: "Author ID must be a positive integer if provided."},
			},
		},
	},
}

// ListQuerySchema validates the paging query of list routes.
var ListQuerySchema = validation.Schema{
	Name: "ListQuery",
	Fields: []validation.Field{
		{Name: "page", Type: validation.Int, Default: int64(1), Rules: []validation.Rule{
			{Tag: "gte=1"},
			{Tag: "lte=" + strconv.Itoa(MaxPage)},
		}},
		{Name: "limit", Type: validation.Int, Default: int64(DefaultPageLimit), Rules: []validation.Rule{
			{Tag: "gte=1"},
			{Tag: "lte=" + strconv.Itoa(MaxPageLimit)},
		}},
	},
}

func idSchema(name, label string) validation.Schema {
	return validation.Schema{
		Name: name,
		Fields: []validation.Field{{
			Name:        "id",
			Type:        validation.Int,
			Required:    true,
			TypeMessage: label + " must be an integer.",
			Rules: []validation.Rule{
				{Tag: "gte=1", Message: label + " must be a positive integer."},
			},
		}},
	}
}
