package tutor

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/student"
	"github.com/peertutor/peertutor/core/subject"
)

// Tutor is a student who applied to teach. Created only through
// Service.Apply; status moves PENDING -> {APPROVED, REJECTED} and the
// decision is the backend's alone.
type Tutor struct {
	ID        int              `json:"tutorId"`
	StudentID int              `json:"studentId,omitempty"`
	GWA       float64          `json:"gwa"`
	Status    core.Status      `json:"status"`
	Student   *student.Student `json:"student,omitempty"`
}

func (t Tutor) DisplayName() string {
	if t.Student == nil {
		return "N/A"
	}
	return t.Student.DisplayName()
}

// SearchFields feeds the list derivation pipeline for tutor views.
func (t Tutor) SearchFields() []string {
	fields := []string{
		strconv.Itoa(t.ID),
		strconv.FormatFloat(t.GWA, 'f', -1, 64),
		t.DisplayName(),
	}
	if t.Student != nil && t.Student.User != nil {
		fields = append(fields, t.Student.User.Username, t.Student.User.Email)
	}
	return fields
}

// ByGWA is the tutor browse view's numeric ordering (lower is better).
func ByGWA(a, b Tutor) bool { return a.GWA < b.GWA }

// Application is a student's request to become a tutor. The GWA comes
// in as raw input and must parse as a float.
type Application struct {
	UserID    int
	StudentID int
	GWA       string
}

func (a Application) parseGWA() (float64, error) {
	return parseFloatField("gwa", a.GWA)
}

func (a Application) Validate() error {
	if a.StudentID == 0 {
		return core.NewValidationError(
			errors.New("student ID is missing"),
			core.FieldError{Field: "studentId", Error: "student ID is missing"},
		)
	}
	_, err := a.parseGWA()
	return err
}

// TutorSubject links a tutor to a subject they may teach, with the
// grade they earned in it.
type TutorSubject struct {
	ID      int              `json:"tutorSubjectId,omitempty"`
	Grade   float64          `json:"grade"`
	Tutor   *Tutor           `json:"tutor,omitempty"`
	Subject *subject.Subject `json:"subject,omitempty"`
}

// NewTutorSubject contains information needed to add a teachable subject.
type NewTutorSubject struct {
	SubjectID int    `json:"subjectId" validate:"required"`
	Grade     string `json:"-" validate:"required"`
}

func (nts *NewTutorSubject) Validate() error {
	nts.Grade = core.CleanString(nts.Grade)
	if err := core.Validate.Struct(nts); err != nil {
		return err
	}
	_, err := parseFloatField("grade", nts.Grade)
	return err
}

func parseFloatField(field, raw string) (float64, error) {
	raw = core.CleanString(raw)
	if raw == "" {
		return 0, core.NewValidationError(
			errors.Errorf("%s is required", field),
			core.FieldError{Field: field, Error: "this field is required"},
		)
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewValidationError(
			errors.Errorf("%s is not a valid number", field),
			core.FieldError{Field: field, Error: "must be a valid number"},
		)
	}
	return val, nil
}
