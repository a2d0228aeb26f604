package tutor

import (
	"errors"

	"github.com/peertutor/peertutor/core"
)

var (
	ErrNotFound       = errors.New("tutor not found")
	ErrAlreadyDecided = errors.New("tutor application has already been decided")
	ErrNotApproved    = errors.New("tutor is not approved")
)

type (
	// Backend is the REST surface this package consumes. Approval is
	// authoritative server-side; the service only pre-checks.
	Backend interface {
		QueryAllTutors() ([]Tutor, error)
		GetTutorByUser(userID int) (Tutor, error)
		ApplyTutor(userID, studentID int, gwa float64) (Tutor, error)
		ApproveTutor(tutorID int) error
		RejectTutor(tutorID int) error
		QueryAllTutorSubjects() ([]TutorSubject, error)
		QueryTutorSubjects(tutorID int) ([]TutorSubject, error)
		AddTutorSubject(tutorID, subjectID int, grade float64) (TutorSubject, error)
	}

	Service struct {
		backend Backend
	}
)

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (svc *Service) QueryAll() ([]Tutor, error) {
	return svc.backend.QueryAllTutors()
}

// GetByUser returns the tutor record attached to a user account, if any.
func (svc *Service) GetByUser(userID int) (Tutor, error) {
	return svc.backend.GetTutorByUser(userID)
}

// Apply submits a tutor application. A backend rejection (e.g. the
// student already applied) is surfaced verbatim.
func (svc *Service) Apply(app Application) (Tutor, error) {
	if err := app.Validate(); err != nil {
		return Tutor{}, err
	}
	gwa, err := app.parseGWA()
	if err != nil {
		return Tutor{}, err
	}
	return svc.backend.ApplyTutor(app.UserID, app.StudentID, gwa)
}

// Approve accepts a pending application and returns the re-fetched
// tutor list. Status is never mutated locally: approval gates
// downstream authorization, so the client waits for server truth.
func (svc *Service) Approve(t Tutor) ([]Tutor, error) {
	return svc.decide(t, svc.backend.ApproveTutor)
}

// Reject declines a pending application and returns the re-fetched
// tutor list.
func (svc *Service) Reject(t Tutor) ([]Tutor, error) {
	return svc.decide(t, svc.backend.RejectTutor)
}

func (svc *Service) decide(t Tutor, op func(tutorID int) error) ([]Tutor, error) {
	if t.Status != core.StatusPending {
		return nil, ErrAlreadyDecided
	}
	if err := op(t.ID); err != nil {
		return nil, err
	}
	return svc.backend.QueryAllTutors()
}

func (svc *Service) QueryAllSubjects() ([]TutorSubject, error) {
	return svc.backend.QueryAllTutorSubjects()
}

func (svc *Service) QuerySubjects(tutorID int) ([]TutorSubject, error) {
	return svc.backend.QueryTutorSubjects(tutorID)
}

// AddSubject registers a subject the tutor may teach and returns the
// re-fetched list. Only an approved tutor may add subjects.
func (svc *Service) AddSubject(t Tutor, nts NewTutorSubject) ([]TutorSubject, error) {
	if t.Status != core.StatusApproved {
		return nil, ErrNotApproved
	}
	if err := nts.Validate(); err != nil {
		return nil, err
	}
	grade, err := parseFloatField("grade", nts.Grade)
	if err != nil {
		return nil, err
	}
	if _, err := svc.backend.AddTutorSubject(t.ID, nts.SubjectID, grade); err != nil {
		return nil, err
	}
	return svc.backend.QueryTutorSubjects(t.ID)
}

// SubjectsOf narrows a fetched tutor-subject list down to one tutor.
func SubjectsOf(all []TutorSubject, tutorID int) []TutorSubject {
	out := make([]TutorSubject, 0, len(all))
	for _, ts := range all {
		if ts.Tutor != nil && ts.Tutor.ID == tutorID {
			out = append(out, ts)
		}
	}
	return out
}
