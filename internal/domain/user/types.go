package user

import "errors"

var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidRole  = errors.New("invalid role")
)

type Role string

const (
	// RoleVenue posts shifts and invites professionals.
	RoleVenue Role = "venue"
	// RoleProfessional receives offers and accepts or declines them.
	RoleProfessional Role = "professional"
	RoleAdmin        Role = "admin"
)

func NewRole(value string) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleVenue, RoleProfessional, RoleAdmin:
		return true
	default:
		return false
	}
}
