package model

import "rental/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldRole     = "role"
)

// Role is fixed at registration and never updated.
type Role string

const (
	RoleOwner    Role = "Owner"
	RoleCustomer Role = "Customer"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleCustomer
}

type User struct {
	ID       string `db:"id"`
	Email    string `db:"email"`
	Password string `db:"password"`
	Name     string `db:"name"`
	Role     Role   `db:"role"`
	model.Metadata
}
