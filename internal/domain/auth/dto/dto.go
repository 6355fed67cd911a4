package dto

type SignupDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,strongpwd"`
}

// LoginDTO is bound from a form body; username carries the account email.
type LoginDTO struct {
	Username string `form:"username" json:"username" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

type LogoutDTO struct {
	AccessToken  string `json:"-"             validate:"required"`
	RefreshToken string `json:"refresh_token"`
}

type RequestEmailDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordDTO struct {
	NewPassword1 string `form:"new_password_1" validate:"required,strongpwd"`
	NewPassword2 string `form:"new_password_2" validate:"required"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	Confirmed bool   `json:"confirmed"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}
