package student

import (
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/user"
)

type Department struct {
	ID   int    `json:"departmentId"`
	Name string `json:"departmentName"`
}

type Student struct {
	ID           int         `json:"studentId"`
	UserID       int         `json:"userId"`
	FirstName    string      `json:"firstName"`
	MiddleName   null.String `json:"middleName,omitempty"`
	LastName     string      `json:"lastName"`
	YearLevel    int         `json:"yearLevel"`
	DepartmentID int         `json:"departmentId"`
	FullName     string      `json:"fullName,omitempty"` // server-derived
	User         *user.User  `json:"user,omitempty"`
}

// DisplayName prefers the server-derived full name and falls back to
// joining the name parts; records fetched through some endpoints omit
// fullName.
func (s Student) DisplayName() string {
	if s.FullName != "" {
		return s.FullName
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{s.FirstName, s.MiddleName.String, s.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// UpdateStudent defines what information may be provided to modify an
// existing profile.
type UpdateStudent struct {
	FirstName    string      `json:"firstName" validate:"required"`
	MiddleName   null.String `json:"middleName,omitempty"`
	LastName     string      `json:"lastName" validate:"required"`
	YearLevel    int         `json:"yearLevel" validate:"required,gte=1,lte=6"`
	DepartmentID int         `json:"departmentId" validate:"required"`
}

func (us *UpdateStudent) Validate() error {
	us.FirstName = core.CleanString(us.FirstName)
	us.LastName = core.CleanString(us.LastName)
	if us.MiddleName.Valid {
		us.MiddleName = null.StringFrom(core.CleanString(us.MiddleName.String))
	}
	return core.Validate.Struct(us)
}

// ByYearLevel is the directory view's default ordering.
func ByYearLevel(a, b Student) bool { return a.YearLevel < b.YearLevel }
