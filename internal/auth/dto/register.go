package dto

type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterOutput struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}
