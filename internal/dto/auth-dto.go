package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponseDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhotoLink   string `json:"photoLink"`
	IsAdmin     bool   `json:"isAdmin"`
	AccessToken string `json:"accessToken"`
}

type ForgotPasswordDTO struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required"`
}
