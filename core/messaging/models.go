package messaging

import (
	"io"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/peertutor/peertutor/core/user"
)

// Message is one entry in a session's append-only log. Exactly one of
// Message/FileName is expected to be set; both are nullable on the
// wire.
type Message struct {
	ID         int         `json:"messageId,omitempty"`
	SessionID  int         `json:"sessionId,omitempty"`
	SenderRole user.Role   `json:"senderRole"`
	Message    null.String `json:"message,omitempty"`
	FileName   null.String `json:"fileName,omitempty"`
	FilePath   null.String `json:"filePath,omitempty"`
	SendAt     time.Time   `json:"sendAt"`

	// client-side only: optimistic entries carry an ID until the
	// backend confirms them.
	ClientID string `json:"-"`
	Pending  bool   `json:"-"`
}

func (m Message) IsFile() bool { return m.FileName.Valid }

// OutgoingMessage is the wire payload of a text send.
type OutgoingMessage struct {
	Message    string    `json:"message"`
	SenderRole user.Role `json:"senderRole"`
	SendAt     time.Time `json:"sendAt"`
}

// FileUpload is a file chosen for sending.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// FileResult is the backend's answer to a multipart file send; the
// returned path is the addressable download location.
type FileResult struct {
	Message  string `json:"message"`
	FilePath string `json:"filePath"`
}
