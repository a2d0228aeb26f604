package auth

import (
	"github.com/volatiletech/null/v8"

	"github.com/peertutor/peertutor/core/user"
)

// Context identifies the signed-in user for the rest of the client.
// StudentID/TutorID are only set when the matching records exist, so
// role checks stay explicit instead of stringly-typed lookups.
type Context struct {
	UserID    int
	Username  string
	Email     string
	Role      user.Role
	StudentID null.Int
	TutorID   null.Int
}

func (c Context) IsStudent() bool { return c.Role == user.RoleStudent }
func (c Context) IsTutor() bool   { return c.Role == user.RoleTutor }
func (c Context) IsAdmin() bool   { return c.Role == user.RoleAdmin }

// CanApplyAsTutor reports whether the "become a tutor" action is
// available: a student with a profile and no tutor record yet.
func (c Context) CanApplyAsTutor() bool {
	return c.IsStudent() && c.StudentID.Valid && !c.TutorID.Valid
}
