package rest

import (
	"fmt"

	sgrest "github.com/sendgrid/rest"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/session"
)

var _ session.Backend = (*Client)(nil)

func (c *Client) QueryAllSessions() ([]session.Session, error) {
	var sessions []session.Session
	if err := c.do(sgrest.Get, "/sessions/get-all-sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) QuerySessionsByStudent(studentID int) ([]session.Session, error) {
	var sessions []session.Session
	if err := c.do(sgrest.Get, fmt.Sprintf("/sessions/get-session-by-student/%d", studentID), nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) QuerySessionsByTutor(tutorID int) ([]session.Session, error) {
	var sessions []session.Session
	if err := c.do(sgrest.Get, fmt.Sprintf("/sessions/get-session-by-tutor/%d", tutorID), nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) ApplySession(tutorID, subjectID, studentID int, ns session.NewSession) (string, error) {
	path := fmt.Sprintf("/sessions/students-apply-session/%d/%d/%d", tutorID, subjectID, studentID)
	return c.text(sgrest.Post, path, ns)
}

func (c *Client) UpdateSessionStatus(sessionID int, status core.Status) error {
	body := map[string]core.Status{"status": status}
	err := c.do(sgrest.Put, fmt.Sprintf("/sessions/update-status/%d", sessionID), body, nil)
	if isNotFound(err) {
		return session.ErrNotFound
	}
	return err
}
