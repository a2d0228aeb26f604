package session

import (
	"errors"

	"github.com/peertutor/peertutor/core"
)

var (
	ErrNotFound       = errors.New("session not found")
	ErrAlreadyDecided = errors.New("session has already been decided")
	ErrInvalidStatus  = errors.New("invalid session status")
)

type (
	// Backend is the REST surface this package consumes. The backend
	// is the sole arbiter of valid transitions; the service only
	// pre-checks and re-fetches.
	Backend interface {
		QueryAllSessions() ([]Session, error)
		QuerySessionsByStudent(studentID int) ([]Session, error)
		QuerySessionsByTutor(tutorID int) ([]Session, error)
		ApplySession(tutorID, subjectID, studentID int, ns NewSession) (string, error)
		UpdateSessionStatus(sessionID int, status core.Status) error
	}

	Service struct {
		backend Backend
	}
)

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (svc *Service) QueryAll() ([]Session, error) {
	return svc.backend.QueryAllSessions()
}

// ByStudent returns a student's sessions. Records the backend returns
// for other students are dropped at the boundary.
func (svc *Service) ByStudent(studentID int) ([]Session, error) {
	sessions, err := svc.backend.QuerySessionsByStudent(studentID)
	if err != nil {
		return nil, err
	}
	mine := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s.ResolvedStudentID() == studentID {
			mine = append(mine, s)
		}
	}
	return mine, nil
}

func (svc *Service) ByTutor(tutorID int) ([]Session, error) {
	return svc.backend.QuerySessionsByTutor(tutorID)
}

// Request books a session with a tutor for one subject and returns
// the backend's confirmation text. Date and time are required.
func (svc *Service) Request(tutorID, subjectID, studentID int, ns NewSession) (string, error) {
	if err := ns.Validate(); err != nil {
		return "", err
	}
	return svc.backend.ApplySession(tutorID, subjectID, studentID, ns)
}

// SetStatus decides a pending session and returns the tutor's
// re-fetched session list. No optimistic mutation: a local transition
// diverging from the backend's authorization decision would corrupt
// state silently.
func (svc *Service) SetStatus(s Session, status core.Status) ([]Session, error) {
	if !status.Terminal() {
		return nil, ErrInvalidStatus
	}
	if s.Status != core.StatusPending {
		return nil, ErrAlreadyDecided
	}
	if err := svc.backend.UpdateSessionStatus(s.ID, status); err != nil {
		return nil, err
	}
	return svc.backend.QuerySessionsByTutor(s.ResolvedTutorID())
}
