package auth

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed token returned on successful login.
type LoginResponse struct {
	Token string `json:"token"`
}
