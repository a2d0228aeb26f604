package tutor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peertutor/peertutor/core"
)

// fakeBackend records calls and plays back canned answers.
type fakeBackend struct {
	tutors    []Tutor
	subjects  []TutorSubject
	applied   *Tutor
	decisions []string
	added     []NewTutorSubject
}

var _ Backend = (*fakeBackend)(nil)

func (f *fakeBackend) QueryAllTutors() ([]Tutor, error) { return f.tutors, nil }

func (f *fakeBackend) GetTutorByUser(userID int) (Tutor, error) {
	for _, t := range f.tutors {
		if t.Student != nil && t.Student.UserID == userID {
			return t, nil
		}
	}
	return Tutor{}, ErrNotFound
}

func (f *fakeBackend) ApplyTutor(userID, studentID int, gwa float64) (Tutor, error) {
	t := Tutor{ID: 99, StudentID: studentID, GWA: gwa, Status: core.StatusPending}
	f.applied = &t
	return t, nil
}

func (f *fakeBackend) ApproveTutor(tutorID int) error {
	f.decisions = append(f.decisions, "approve")
	f.setStatus(tutorID, core.StatusApproved)
	return nil
}

func (f *fakeBackend) RejectTutor(tutorID int) error {
	f.decisions = append(f.decisions, "reject")
	f.setStatus(tutorID, core.StatusRejected)
	return nil
}

func (f *fakeBackend) setStatus(tutorID int, status core.Status) {
	for i := range f.tutors {
		if f.tutors[i].ID == tutorID {
			f.tutors[i].Status = status
		}
	}
}

func (f *fakeBackend) QueryAllTutorSubjects() ([]TutorSubject, error) { return f.subjects, nil }

func (f *fakeBackend) QueryTutorSubjects(tutorID int) ([]TutorSubject, error) {
	out := make([]TutorSubject, 0, len(f.subjects))
	for _, ts := range f.subjects {
		if ts.Tutor != nil && ts.Tutor.ID == tutorID {
			out = append(out, ts)
		}
	}
	return out, nil
}

func (f *fakeBackend) AddTutorSubject(tutorID, subjectID int, grade float64) (TutorSubject, error) {
	f.added = append(f.added, NewTutorSubject{SubjectID: subjectID})
	ts := TutorSubject{ID: len(f.subjects) + 1, Grade: grade, Tutor: &Tutor{ID: tutorID}}
	f.subjects = append(f.subjects, ts)
	return ts, nil
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		app       Application
		wantField string // failed validation field, empty for success
		wantGWA   float64
	}{
		{name: "valid", app: Application{UserID: 1, StudentID: 2, GWA: "1.75"}, wantGWA: 1.75},
		{name: "gwa surrounded by spaces", app: Application{UserID: 1, StudentID: 2, GWA: " 2.5 "}, wantGWA: 2.5},
		{name: "missing student", app: Application{UserID: 1, GWA: "1.75"}, wantField: "studentId"},
		{name: "missing gwa", app: Application{UserID: 1, StudentID: 2}, wantField: "gwa"},
		{name: "non-numeric gwa", app: Application{UserID: 1, StudentID: 2, GWA: "abc"}, wantField: "gwa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			svc := NewService(backend)

			got, err := svc.Apply(tt.app)
			if tt.wantField != "" {
				var vErr *core.ValidationError
				require.ErrorAs(t, err, &vErr)
				require.Len(t, vErr.Fields, 1)
				assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
				assert.Nil(t, backend.applied, "invalid application must not reach the backend")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, core.StatusPending, got.Status)
			require.NotNil(t, backend.applied)
			assert.Equal(t, tt.wantGWA, backend.applied.GWA)
		})
	}
}

func TestDecide(t *testing.T) {
	pending := Tutor{ID: 1, StudentID: 10, GWA: 1.5, Status: core.StatusPending}
	approved := Tutor{ID: 2, StudentID: 11, GWA: 1.2, Status: core.StatusApproved}

	t.Run("approve pending refetches the list", func(t *testing.T) {
		backend := &fakeBackend{tutors: []Tutor{pending, approved}}
		svc := NewService(backend)

		tutors, err := svc.Approve(pending)
		require.NoError(t, err)
		assert.Equal(t, []string{"approve"}, backend.decisions)
		require.Len(t, tutors, 2)
		assert.Equal(t, core.StatusApproved, tutors[0].Status)
	})

	t.Run("reject pending refetches the list", func(t *testing.T) {
		backend := &fakeBackend{tutors: []Tutor{pending, approved}}
		svc := NewService(backend)

		tutors, err := svc.Reject(pending)
		require.NoError(t, err)
		assert.Equal(t, []string{"reject"}, backend.decisions)
		require.Len(t, tutors, 2)
		assert.Equal(t, core.StatusRejected, tutors[0].Status)
	})

	t.Run("deciding a decided application never reaches the backend", func(t *testing.T) {
		backend := &fakeBackend{tutors: []Tutor{pending, approved}}
		svc := NewService(backend)

		_, err := svc.Approve(approved)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
		_, err = svc.Reject(approved)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
		assert.Empty(t, backend.decisions)
	})
}

func TestAddSubject(t *testing.T) {
	approved := Tutor{ID: 1, Status: core.StatusApproved}

	t.Run("approved tutor adds a subject and gets the refreshed list", func(t *testing.T) {
		backend := &fakeBackend{}
		svc := NewService(backend)

		subjects, err := svc.AddSubject(approved, NewTutorSubject{SubjectID: 3, Grade: "1.25"})
		require.NoError(t, err)
		require.Len(t, subjects, 1)
		assert.Equal(t, 1.25, subjects[0].Grade)
	})

	t.Run("pending tutor is refused locally", func(t *testing.T) {
		backend := &fakeBackend{}
		svc := NewService(backend)

		_, err := svc.AddSubject(Tutor{ID: 1, Status: core.StatusPending}, NewTutorSubject{SubjectID: 3, Grade: "1.25"})
		assert.ErrorIs(t, err, ErrNotApproved)
		assert.Empty(t, backend.added)
	})

	t.Run("missing grade fails validation", func(t *testing.T) {
		backend := &fakeBackend{}
		svc := NewService(backend)

		_, err := svc.AddSubject(approved, NewTutorSubject{SubjectID: 3})
		assert.Error(t, err)
		assert.Empty(t, backend.added)
	})
}

func TestSubjectsOf(t *testing.T) {
	all := []TutorSubject{
		{ID: 1, Tutor: &Tutor{ID: 1}},
		{ID: 2, Tutor: &Tutor{ID: 2}},
		{ID: 3, Tutor: &Tutor{ID: 1}},
		{ID: 4}, // no tutor nested
	}
	got := SubjectsOf(all, 1)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}
