package user

import (
	"errors"
)

var ErrNotFound = errors.New("user not found")

type (
	// Backend is the REST surface this package consumes. The backend
	// is the single source of truth; the service never caches users.
	Backend interface {
		Login(creds Credentials) (LoginResult, error)
		AdminLogin(creds Credentials) (LoginResult, error)
		Register(nu NewUser) (User, error)
		QueryAllUsers() ([]User, error)
		GetAdmin(id int) (Admin, error)
	}

	Service struct {
		backend Backend
	}
)

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (svc *Service) Login(creds Credentials) (LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return LoginResult{}, err
	}
	return svc.backend.Login(creds)
}

func (svc *Service) AdminLogin(creds Credentials) (LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return LoginResult{}, err
	}
	return svc.backend.AdminLogin(creds)
}

func (svc *Service) Register(nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}
	return svc.backend.Register(nu)
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.backend.QueryAllUsers()
}

func (svc *Service) GetAdmin(id int) (Admin, error) {
	return svc.backend.GetAdmin(id)
}
