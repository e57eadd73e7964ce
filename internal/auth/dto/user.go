package dto

type UpdateProfileInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password,omitempty"`
}

// UserOutput is the public profile; it never carries the password hash.
type UserOutput struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UpdateProfileOutput struct {
	Message string     `json:"message"`
	User    UserOutput `json:"user"`
}
