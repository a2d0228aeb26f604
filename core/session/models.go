package session

import (
	"strconv"
	"time"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/student"
	"github.com/peertutor/peertutor/core/subject"
	"github.com/peertutor/peertutor/core/tutor"
)

// Session is a scheduled tutoring meeting between one student and one
// tutor for one subject, subject to tutor approval. Mutated only by
// the tutor (status) or the backend (timestamps).
type Session struct {
	ID        int              `json:"sessionId"`
	TutorID   int              `json:"tutorId,omitempty"`
	StudentID int              `json:"studentId,omitempty"`
	SubjectID int              `json:"subjectId,omitempty"`
	Date      string           `json:"sessionDate"` // YYYY-MM-DD
	Time      string           `json:"sessionTime"` // HH:MM[:SS]
	Status    core.Status      `json:"sessionStatus"`
	CreatedAt time.Time        `json:"createdAt,omitempty"`
	Tutor     *tutor.Tutor     `json:"tutor,omitempty"`
	Student   *student.Student `json:"student,omitempty"`
	Subject   *subject.Subject `json:"subject,omitempty"`
}

// Some endpoints flatten the tutor/student IDs, others only nest the
// full records; these accessors tolerate both shapes.

func (s Session) ResolvedTutorID() int {
	if s.TutorID != 0 {
		return s.TutorID
	}
	if s.Tutor != nil {
		return s.Tutor.ID
	}
	return 0
}

func (s Session) ResolvedStudentID() int {
	if s.StudentID != 0 {
		return s.StudentID
	}
	if s.Student != nil {
		return s.Student.ID
	}
	return 0
}

// SearchFields feeds the list derivation pipeline for session views.
func (s Session) SearchFields() []string {
	fields := []string{strconv.Itoa(s.ID), s.Date}
	if s.Subject != nil {
		fields = append(fields, s.Subject.Name, s.Subject.Description)
	}
	if s.Tutor != nil {
		fields = append(fields, s.Tutor.DisplayName())
	}
	if s.Student != nil {
		fields = append(fields, s.Student.DisplayName())
	}
	return fields
}

// ByDateDesc orders newest first; ByDateAsc oldest first. Dates are
// ISO formatted so the lexical comparison is also chronological.
func ByDateDesc(a, b Session) bool { return a.Date > b.Date }
func ByDateAsc(a, b Session) bool  { return a.Date < b.Date }

// NewSession is a student's scheduling request.
type NewSession struct {
	Date string `json:"sessionDate" validate:"required"`
	Time string `json:"sessionTime" validate:"required"`
}

func (ns *NewSession) Validate() error {
	ns.Date = core.CleanString(ns.Date)
	ns.Time = core.CleanString(ns.Time)
	return core.Validate.Struct(ns)
}
