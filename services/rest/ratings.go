package rest

import (
	"fmt"

	sgrest "github.com/sendgrid/rest"

	"github.com/peertutor/peertutor/core/rating"
)

var _ rating.Backend = (*Client)(nil)

func (c *Client) QueryAverageRatings() ([]rating.AverageRating, error) {
	var averages []rating.AverageRating
	if err := c.do(sgrest.Get, "/rates/average", nil, &averages); err != nil {
		return nil, err
	}
	return averages, nil
}

func (c *Client) RateTutor(studentID, tutorID, score int) (string, error) {
	body := map[string]int{"rating": score}
	return c.text(sgrest.Post, fmt.Sprintf("/rates/student-rate-tutor/%d/%d", studentID, tutorID), body)
}
