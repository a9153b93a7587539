package domain

// Principal is the authenticated caller of a request, built from verified
// token claims. It is never loaded from or written to storage.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
