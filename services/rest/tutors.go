package rest

import (
	"fmt"

	sgrest "github.com/sendgrid/rest"

	"github.com/peertutor/peertutor/core/tutor"
)

var _ tutor.Backend = (*Client)(nil)

func (c *Client) QueryAllTutors() ([]tutor.Tutor, error) {
	var tutors []tutor.Tutor
	if err := c.do(sgrest.Get, "/tutors/get-all-tutors", nil, &tutors); err != nil {
		return nil, err
	}
	return tutors, nil
}

func (c *Client) GetTutorByUser(userID int) (tutor.Tutor, error) {
	var t tutor.Tutor
	if err := c.do(sgrest.Get, fmt.Sprintf("/tutors/get-tutor-by-user/%d", userID), nil, &t); err != nil {
		if isNotFound(err) {
			return tutor.Tutor{}, tutor.ErrNotFound
		}
		return tutor.Tutor{}, err
	}
	return t, nil
}

func (c *Client) ApplyTutor(userID, studentID int, gwa float64) (tutor.Tutor, error) {
	body := map[string]float64{"gwa": gwa}
	var t tutor.Tutor
	if err := c.do(sgrest.Post, fmt.Sprintf("/tutors/apply/%d/%d", userID, studentID), body, &t); err != nil {
		return tutor.Tutor{}, err
	}
	return t, nil
}

func (c *Client) ApproveTutor(tutorID int) error {
	return c.do(sgrest.Put, fmt.Sprintf("/tutors/approved/%d", tutorID), nil, nil)
}

func (c *Client) RejectTutor(tutorID int) error {
	return c.do(sgrest.Put, fmt.Sprintf("/tutors/rejected/%d", tutorID), nil, nil)
}

func (c *Client) QueryAllTutorSubjects() ([]tutor.TutorSubject, error) {
	var subjects []tutor.TutorSubject
	if err := c.do(sgrest.Get, "/tutor-subjects/get-all-subjects", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) QueryTutorSubjects(tutorID int) ([]tutor.TutorSubject, error) {
	var subjects []tutor.TutorSubject
	if err := c.do(sgrest.Get, fmt.Sprintf("/tutor-subjects/get-tutor-subjects/%d", tutorID), nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) AddTutorSubject(tutorID, subjectID int, grade float64) (tutor.TutorSubject, error) {
	body := map[string]interface{}{"subjectId": subjectID, "grade": grade}
	var ts tutor.TutorSubject
	if err := c.do(sgrest.Post, fmt.Sprintf("/tutor-subjects/tutor-add-subject/%d", tutorID), body, &ts); err != nil {
		return tutor.TutorSubject{}, err
	}
	return ts, nil
}
