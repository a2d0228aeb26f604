package user

import (
	"strconv"

	"github.com/peertutor/peertutor/core"
)

// Role is a user's registered role. Immutable post-registration from
// the client's perspective.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       int    `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (u User) IsStudent() bool { return u.Role == RoleStudent }
func (u User) IsTutor() bool   { return u.Role == RoleTutor }
func (u User) IsAdmin() bool   { return u.Role == RoleAdmin }

// SearchFields feeds the list derivation pipeline for the user directory.
func (u User) SearchFields() []string {
	return []string{strconv.Itoa(u.ID), u.Username, u.Email}
}

type Admin struct {
	ID       int    `json:"adminId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Credentials is a login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return core.Validate.Struct(c)
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (nu *NewUser) Validate() error {
	nu.Username = core.CleanString(nu.Username)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	return core.Validate.Struct(nu)
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}
