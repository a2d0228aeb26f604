package auth

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peertutor/peertutor/core/student"
	"github.com/peertutor/peertutor/core/tutor"
	"github.com/peertutor/peertutor/core/user"
)

type fakeUsers struct {
	result user.LoginResult
	err    error
}

func (f *fakeUsers) Login(creds user.Credentials) (user.LoginResult, error) {
	return f.result, f.err
}

func (f *fakeUsers) AdminLogin(creds user.Credentials) (user.LoginResult, error) {
	return f.result, f.err
}

func (f *fakeUsers) Register(nu user.NewUser) (user.User, error) {
	return user.User{ID: 1, Username: nu.Username, Email: nu.Email, Role: user.RoleStudent}, nil
}

func (f *fakeUsers) QueryAllUsers() ([]user.User, error) { return nil, nil }

func (f *fakeUsers) GetAdmin(id int) (user.Admin, error) { return user.Admin{}, nil }

type fakeStudents struct {
	student student.Student
	err     error
}

func (f *fakeStudents) GetStudentInfo(userID int) (student.Student, error) {
	return f.student, f.err
}

func (f *fakeStudents) QueryAllStudents() ([]student.Student, error) { return nil, nil }

func (f *fakeStudents) UpdateStudent(userID int, us student.UpdateStudent) (student.Student, error) {
	return student.Student{}, nil
}

func (f *fakeStudents) QueryAllDepartments() ([]student.Department, error) { return nil, nil }

type fakeTutors struct {
	tutor tutor.Tutor
	err   error
}

func (f *fakeTutors) QueryAllTutors() ([]tutor.Tutor, error) { return nil, nil }

func (f *fakeTutors) GetTutorByUser(userID int) (tutor.Tutor, error) { return f.tutor, f.err }

func (f *fakeTutors) ApplyTutor(userID, studentID int, gwa float64) (tutor.Tutor, error) {
	return tutor.Tutor{}, nil
}

func (f *fakeTutors) ApproveTutor(tutorID int) error { return nil }

func (f *fakeTutors) RejectTutor(tutorID int) error { return nil }

func (f *fakeTutors) QueryAllTutorSubjects() ([]tutor.TutorSubject, error) { return nil, nil }

func (f *fakeTutors) QueryTutorSubjects(tutorID int) ([]tutor.TutorSubject, error) {
	return nil, nil
}

func (f *fakeTutors) AddTutorSubject(tutorID, subjectID int, grade float64) (tutor.TutorSubject, error) {
	return tutor.TutorSubject{}, nil
}

func creds() user.Credentials {
	return user.Credentials{Email: "jane@example.com", Password: "s3cret"}
}

func TestLogin(t *testing.T) {
	loginResult := user.LoginResult{UserID: 7, Username: "jane", Email: "jane@example.com", Role: user.RoleStudent}

	t.Run("full context for a student who is also a tutor", func(t *testing.T) {
		svc := NewService(
			&fakeUsers{result: loginResult},
			&fakeStudents{student: student.Student{ID: 21, UserID: 7}},
			&fakeTutors{tutor: tutor.Tutor{ID: 33, StudentID: 21}},
		)

		ctx, err := svc.Login(creds())
		require.NoError(t, err)
		assert.Equal(t, 7, ctx.UserID)
		assert.Equal(t, "jane", ctx.Username)
		assert.True(t, ctx.IsStudent())
		require.True(t, ctx.StudentID.Valid)
		assert.Equal(t, 21, ctx.StudentID.Int)
		require.True(t, ctx.TutorID.Valid)
		assert.Equal(t, 33, ctx.TutorID.Int)
		assert.False(t, ctx.CanApplyAsTutor(), "already applied")
	})

	t.Run("missing student and tutor records are tolerated", func(t *testing.T) {
		svc := NewService(
			&fakeUsers{result: loginResult},
			&fakeStudents{err: student.ErrNotFound},
			&fakeTutors{err: tutor.ErrNotFound},
		)

		ctx, err := svc.Login(creds())
		require.NoError(t, err)
		assert.False(t, ctx.StudentID.Valid)
		assert.False(t, ctx.TutorID.Valid)
		assert.False(t, ctx.CanApplyAsTutor(), "needs a student profile first")
	})

	t.Run("student without a tutor record may apply", func(t *testing.T) {
		svc := NewService(
			&fakeUsers{result: loginResult},
			&fakeStudents{student: student.Student{ID: 21, UserID: 7}},
			&fakeTutors{err: tutor.ErrNotFound},
		)

		ctx, err := svc.Login(creds())
		require.NoError(t, err)
		assert.True(t, ctx.CanApplyAsTutor())
	})

	t.Run("unexpected backend failure surfaces", func(t *testing.T) {
		svc := NewService(
			&fakeUsers{result: loginResult},
			&fakeStudents{err: errors.New("boom")},
			&fakeTutors{},
		)

		_, err := svc.Login(creds())
		assert.Error(t, err)
	})

	t.Run("invalid credentials never reach the backend", func(t *testing.T) {
		svc := NewService(&fakeUsers{}, &fakeStudents{}, &fakeTutors{})

		_, err := svc.Login(user.Credentials{Email: "not-an-email", Password: "x"})
		assert.Error(t, err)
		_, err = svc.Login(user.Credentials{Email: "jane@example.com"})
		assert.Error(t, err)
	})
}

func TestAdminLogin(t *testing.T) {
	svc := NewService(
		&fakeUsers{result: user.LoginResult{UserID: 1, Username: "root", Email: "root@example.com"}},
		&fakeStudents{err: student.ErrNotFound},
		&fakeTutors{err: tutor.ErrNotFound},
	)

	ctx, err := svc.AdminLogin(creds())
	require.NoError(t, err)
	assert.True(t, ctx.IsAdmin())
	assert.False(t, ctx.StudentID.Valid, "admins carry no student record")
	assert.False(t, ctx.TutorID.Valid)
}

func TestRegister(t *testing.T) {
	svc := NewService(&fakeUsers{}, &fakeStudents{}, &fakeTutors{})

	t.Run("valid", func(t *testing.T) {
		usr, err := svc.Register(user.NewUser{Username: "jane", Email: "Jane@Example.com", Password: "longenough"})
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", usr.Email, "email is lowered before submission")
		assert.Equal(t, user.RoleStudent, usr.Role)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(user.NewUser{Username: "jane", Email: "jane@example.com", Password: "short"})
		assert.Error(t, err)
	})
}
