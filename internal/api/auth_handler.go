package api

import (
	"net/http"

	"github.com/phrazzld/shelf-api/internal/api/shared"
	"github.com/phrazzld/shelf-api/internal/service"
)

// AuthHandler handles account registration and login.
type AuthHandler struct {
	users service.UserService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var req RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, UserResponse{
		Message: MessageUserRegistered,
		User:    user,
	})
	return nil
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Message: MessageLoggedIn,
		Token:   res.Token,
		User:    res.User,
	})
	return nil
}
