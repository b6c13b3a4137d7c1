package dto

import (
	"rental/internal/domains/user/model"
	gDto "rental/shared/dto"
)

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Name = model.Name
	r.Role = string(model.Role)
	r.Metadata.FromModel(model.Metadata)
}

// UserSummary is the public view of a user embedded in other resources.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
