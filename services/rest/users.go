package rest

import (
	"fmt"

	sgrest "github.com/sendgrid/rest"

	"github.com/peertutor/peertutor/core/user"
)

var _ user.Backend = (*Client)(nil)

func (c *Client) Login(creds user.Credentials) (user.LoginResult, error) {
	var res user.LoginResult
	if err := c.do(sgrest.Post, "/users/login", creds, &res); err != nil {
		return user.LoginResult{}, err
	}
	return res, nil
}

func (c *Client) AdminLogin(creds user.Credentials) (user.LoginResult, error) {
	var res user.LoginResult
	if err := c.do(sgrest.Post, "/admin/login", creds, &res); err != nil {
		return user.LoginResult{}, err
	}
	return res, nil
}

func (c *Client) Register(nu user.NewUser) (user.User, error) {
	var usr user.User
	if err := c.do(sgrest.Post, "/users/registration", nu, &usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (c *Client) QueryAllUsers() ([]user.User, error) {
	var users []user.User
	if err := c.do(sgrest.Get, "/users/get-all-users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetAdmin(id int) (user.Admin, error) {
	var adm user.Admin
	if err := c.do(sgrest.Get, fmt.Sprintf("/admin/get-admin/%d", id), nil, &adm); err != nil {
		if isNotFound(err) {
			return user.Admin{}, user.ErrNotFound
		}
		return user.Admin{}, err
	}
	return adm, nil
}
