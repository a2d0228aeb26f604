package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	sgrest "github.com/sendgrid/rest"

	"github.com/peertutor/peertutor/core"
)

// APIError is a non-2xx backend response. The backend answers errors
// as plain text; Message surfaces that text verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message())
}

func (e *APIError) Message() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	return http.StatusText(e.StatusCode)
}

// AsAPIError unwraps err down to an *APIError if one caused it.
func AsAPIError(err error) (*APIError, bool) {
	apiErr, ok := errors.Cause(err).(*APIError)
	return apiErr, ok
}

func isNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Client implements every core Backend interface against the REST
// backend.
type Client struct {
	baseURL string
	rc      *sgrest.Client
	hc      *http.Client
	log     core.Logger
}

func NewClient(conf *core.Config, logger core.Logger) *Client {
	hc := &http.Client{Timeout: conf.RequestTimeout}
	return &Client{
		baseURL: strings.TrimRight(conf.APIBaseURL, "/"),
		rc:      &sgrest.Client{HTTPClient: hc},
		hc:      hc,
		log:     logger,
	}
}

func (c *Client) send(method sgrest.Method, path string, body interface{}) (*sgrest.Response, error) {
	req := sgrest.Request{
		Method:  method,
		BaseURL: c.baseURL + path,
		Headers: map[string]string{"Content-Type": "application/json"},
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "%s %s: encoding body", method, path)
		}
		req.Body = data
	}

	res, err := c.rc.Send(req)
	if err != nil {
		// transport failure; logged and surfaced, never retried
		c.log.Error("api request failed", errors.Wrapf(err, "%s %s", method, path))
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: res.StatusCode, Body: res.Body}
		c.log.Warn("api error response", map[string]interface{}{
			"method": string(method),
			"path":   path,
			"status": res.StatusCode,
		})
		return nil, apiErr
	}
	return res, nil
}

// do performs a JSON round trip; out may be nil for endpoints whose
// body the caller discards.
func (c *Client) do(method sgrest.Method, path string, body, out interface{}) error {
	res, err := c.send(method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(res.Body), out); err != nil {
		return errors.Wrapf(err, "%s %s: decoding response", method, path)
	}
	return nil
}

// text performs a round trip against an endpoint that answers plain
// text (confirmation messages).
func (c *Client) text(method sgrest.Method, path string, body interface{}) (string, error) {
	res, err := c.send(method, path, body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Body), nil
}
