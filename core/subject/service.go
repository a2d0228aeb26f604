package subject

import (
	"errors"
)

var ErrNotFound = errors.New("subject not found")

type (
	Backend interface {
		QueryAllSubjects() ([]Subject, error)
		AddSubject(ns NewSubject) (Subject, error)
		DeleteSubject(id int) error
	}

	Service struct {
		backend Backend
	}
)

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (svc *Service) QueryAll() ([]Subject, error) {
	return svc.backend.QueryAllSubjects()
}

// Add creates a catalog entry and returns the refreshed list; the
// backend remains the source of truth for IDs and ordering.
func (svc *Service) Add(ns NewSubject) ([]Subject, error) {
	if err := ns.Validate(); err != nil {
		return nil, err
	}
	if _, err := svc.backend.AddSubject(ns); err != nil {
		return nil, err
	}
	return svc.backend.QueryAllSubjects()
}

// Delete removes a catalog entry and returns the refreshed list.
func (svc *Service) Delete(id int) ([]Subject, error) {
	if err := svc.backend.DeleteSubject(id); err != nil {
		return nil, err
	}
	return svc.backend.QueryAllSubjects()
}
