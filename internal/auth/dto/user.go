package dto

import (
	"time"

	"github.com/hsbali/social-media-app-server/internal/auth/domain"
)

type UserOutput struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"fName"`
	LastName  string    `json:"lName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserOutput(u *domain.User) *UserOutput {
	return &UserOutput{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
