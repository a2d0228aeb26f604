package auth

import (
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/peertutor/peertutor/core/student"
	"github.com/peertutor/peertutor/core/tutor"
	"github.com/peertutor/peertutor/core/user"
)

type Service struct {
	users    user.Backend
	students student.Backend
	tutors   tutor.Backend
}

func NewService(users user.Backend, students student.Backend, tutors tutor.Backend) *Service {
	return &Service{users: users, students: students, tutors: tutors}
}

// Login authenticates and assembles the session Context, resolving
// the student and tutor records attached to the account. Missing
// records are fine: not every user is a student, not every student a
// tutor.
func (svc *Service) Login(creds user.Credentials) (Context, error) {
	if err := creds.Validate(); err != nil {
		return Context{}, err
	}
	res, err := svc.users.Login(creds)
	if err != nil {
		return Context{}, err
	}
	return svc.buildContext(res)
}

// AdminLogin authenticates against the admin endpoint; admins carry
// no student or tutor records.
func (svc *Service) AdminLogin(creds user.Credentials) (Context, error) {
	if err := creds.Validate(); err != nil {
		return Context{}, err
	}
	res, err := svc.users.AdminLogin(creds)
	if err != nil {
		return Context{}, err
	}
	return Context{
		UserID:   res.UserID,
		Username: res.Username,
		Email:    res.Email,
		Role:     user.RoleAdmin,
	}, nil
}

func (svc *Service) Register(nu user.NewUser) (user.User, error) {
	if err := nu.Validate(); err != nil {
		return user.User{}, err
	}
	return svc.users.Register(nu)
}

func (svc *Service) buildContext(res user.LoginResult) (Context, error) {
	ctx := Context{
		UserID:   res.UserID,
		Username: res.Username,
		Email:    res.Email,
		Role:     res.Role,
	}
	if ctx.IsAdmin() {
		return ctx, nil
	}

	stu, err := svc.students.GetStudentInfo(res.UserID)
	switch {
	case err == nil:
		ctx.StudentID = null.IntFrom(stu.ID)
	case errors.Is(err, student.ErrNotFound):
		// account without a student profile yet
	default:
		return Context{}, err
	}

	tut, err := svc.tutors.GetTutorByUser(res.UserID)
	switch {
	case err == nil:
		ctx.TutorID = null.IntFrom(tut.ID)
	case errors.Is(err, tutor.ErrNotFound):
		// never applied as tutor
	default:
		return Context{}, err
	}
	return ctx, nil
}
