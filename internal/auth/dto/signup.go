package dto

type SignupInput struct {
	FirstName       string `json:"fName"`
	LastName        string `json:"lName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
