package rest

import (
	"fmt"

	sgrest "github.com/sendgrid/rest"

	"github.com/peertutor/peertutor/core/subject"
)

var _ subject.Backend = (*Client)(nil)

func (c *Client) QueryAllSubjects() ([]subject.Subject, error) {
	var subjects []subject.Subject
	if err := c.do(sgrest.Get, "/subjects/get-all-subjects", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) AddSubject(ns subject.NewSubject) (subject.Subject, error) {
	var sub subject.Subject
	if err := c.do(sgrest.Post, "/subjects/add-subject", ns, &sub); err != nil {
		return subject.Subject{}, err
	}
	return sub, nil
}

func (c *Client) DeleteSubject(id int) error {
	err := c.do(sgrest.Delete, fmt.Sprintf("/subjects/delete-subject/%d", id), nil, nil)
	if isNotFound(err) {
		return subject.ErrNotFound
	}
	return err
}
