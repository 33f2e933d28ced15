package models

// LoginRequest carries the demo credentials.
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password"`
}

type AuthUser struct {
	Username string `json:"username" example:"admin"`
}

// LoginResponse returns the signed bearer token for subsequent API calls.
type LoginResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// RegisterRequest is accepted for demo purposes only, nothing is stored.
type RegisterRequest struct {
	Username string `json:"username" example:"operator"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty" example:"operator@example.com"`
}
