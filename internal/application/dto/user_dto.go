package dto

// LoginRequest entrada para POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida del login: token JWT + rol para el UI.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// ChangePasswordRequest entrada para PATCH /api/user/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}
