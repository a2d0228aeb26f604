package student

import (
	"errors"
)

var ErrNotFound = errors.New("student not found")

type (
	Backend interface {
		GetStudentInfo(userID int) (Student, error)
		QueryAllStudents() ([]Student, error)
		UpdateStudent(userID int, us UpdateStudent) (Student, error)
		QueryAllDepartments() ([]Department, error)
	}

	Service struct {
		backend Backend
	}
)

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// GetInfo returns the student profile attached to a user account.
func (svc *Service) GetInfo(userID int) (Student, error) {
	return svc.backend.GetStudentInfo(userID)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.backend.QueryAllStudents()
}

// Update validates and persists profile changes, then returns the
// refreshed profile as re-fetched from the backend.
func (svc *Service) Update(userID int, us UpdateStudent) (Student, error) {
	if err := us.Validate(); err != nil {
		return Student{}, err
	}
	if _, err := svc.backend.UpdateStudent(userID, us); err != nil {
		return Student{}, err
	}
	return svc.backend.GetStudentInfo(userID)
}

func (svc *Service) QueryDepartments() ([]Department, error) {
	return svc.backend.QueryAllDepartments()
}

// DepartmentName resolves a department ID against a fetched list.
func DepartmentName(departments []Department, id int) (string, bool) {
	for _, dep := range departments {
		if dep.ID == id {
			return dep.Name, true
		}
	}
	return "", false
}
