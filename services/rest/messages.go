package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pkg/errors"
	sgrest "github.com/sendgrid/rest"

	"github.com/peertutor/peertutor/core/messaging"
	"github.com/peertutor/peertutor/core/user"
)

var _ messaging.Backend = (*Client)(nil)

func (c *Client) QueryMessages(sessionID int) ([]messaging.Message, error) {
	var messages []messaging.Message
	if err := c.do(sgrest.Get, fmt.Sprintf("/messages/get-messages/%d", sessionID), nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) SendMessage(sessionID, tutorID, studentID int, out messaging.OutgoingMessage) error {
	path := fmt.Sprintf("/messages/send/%d/%d/%d", sessionID, tutorID, studentID)
	return c.do(sgrest.Post, path, out, nil)
}

// SendFile is the one non-JSON request: a multipart form carrying the
// file plus sender metadata.
func (c *Client) SendFile(sessionID, tutorID, studentID int, fileName string, content io.Reader, senderRole user.Role, sendAt time.Time) (messaging.FileResult, error) {
	path := fmt.Sprintf("/messages/send-file/%d/%d/%d", sessionID, tutorID, studentID)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return messaging.FileResult{}, errors.Wrap(err, "send-file: building form")
	}
	if _, err := io.Copy(part, content); err != nil {
		return messaging.FileResult{}, errors.Wrap(err, "send-file: reading file")
	}
	if err := mw.WriteField("senderRole", string(senderRole)); err != nil {
		return messaging.FileResult{}, errors.Wrap(err, "send-file: building form")
	}
	if err := mw.WriteField("sendAt", sendAt.UTC().Format(time.RFC3339)); err != nil {
		return messaging.FileResult{}, errors.Wrap(err, "send-file: building form")
	}
	if err := mw.Close(); err != nil {
		return messaging.FileResult{}, errors.Wrap(err, "send-file: building form")
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return messaging.FileResult{}, errors.Wrap(err, "send-file: building request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.hc.Do(req)
	if err != nil {
		c.log.Error("api request failed", errors.Wrapf(err, "POST %s", path))
		return messaging.FileResult{}, errors.Wrapf(err, "POST %s", path)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return messaging.FileResult{}, errors.Wrapf(err, "POST %s: reading response", path)
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return messaging.FileResult{}, &APIError{StatusCode: res.StatusCode, Body: string(data)}
	}

	var result messaging.FileResult
	if err := json.Unmarshal(data, &result); err != nil {
		return messaging.FileResult{}, errors.Wrapf(err, "POST %s: decoding response", path)
	}
	return result, nil
}
