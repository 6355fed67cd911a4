package dto

type ContactDTO struct {
	FirstName   string `json:"first_name"    validate:"required,min=3,max=25"`
	LastName    string `json:"last_name"     validate:"required,min=3,max=50"`
	Email       string `json:"email"         validate:"required,email"`
	Phone       string `json:"phone"         validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
}

type ContactResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
}
