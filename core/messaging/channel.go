package messaging

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/user"
)

var (
	ErrEmptyMessage   = errors.New("message cannot be empty")
	ErrNoFileSelected = errors.New("please select a file to send")

	nowFunc = time.Now // mockable
)

type Backend interface {
	QueryMessages(sessionID int) ([]Message, error)
	SendMessage(sessionID, tutorID, studentID int, out OutgoingMessage) error
	SendFile(sessionID, tutorID, studentID int, fileName string, content io.Reader, senderRole user.Role, sendAt time.Time) (FileResult, error)
}

// Channel is a per-session ordered message log with optimistic local
// append. History is loaded once on entry, then appended to; the
// newest message is always last.
type Channel struct {
	backend Backend
	log     core.Logger

	sessionID int
	tutorID   int
	studentID int
	role      user.Role

	messages []Message
}

func NewChannel(backend Backend, logger core.Logger, sessionID, tutorID, studentID int, role user.Role) *Channel {
	return &Channel{
		backend:   backend,
		log:       logger,
		sessionID: sessionID,
		tutorID:   tutorID,
		studentID: studentID,
		role:      role,
	}
}

// LoadHistory fetches the session's log. Server ordering is trusted
// and never re-sorted, but the sendAt monotonicity invariant is
// checked at the boundary and violations are logged.
func (ch *Channel) LoadHistory() ([]Message, error) {
	messages, err := ch.backend.QueryMessages(ch.sessionID)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].SendAt.Before(messages[i-1].SendAt) {
			ch.log.Warn("message log out of order", map[string]interface{}{
				"sessionId": ch.sessionID,
				"position":  i,
			})
			break
		}
	}
	ch.messages = messages
	return ch.Messages(), nil
}

// Messages returns a copy of the local log, newest last.
func (ch *Channel) Messages() []Message {
	out := make([]Message, len(ch.messages))
	copy(out, ch.messages)
	return out
}

// Latest returns the most recently appended message.
func (ch *Channel) Latest() (Message, bool) {
	if len(ch.messages) == 0 {
		return Message{}, false
	}
	return ch.messages[len(ch.messages)-1], true
}

// SendText sends a text message. The entry is appended locally before
// the send is durable, tagged pending; it is confirmed on success and
// removed again if the send fails. Chat ordering is low stakes, so
// the optimistic append is acceptable where status transitions would
// not be.
func (ch *Channel) SendText(text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	entry := Message{
		SessionID:  ch.sessionID,
		SenderRole: ch.role,
		Message:    null.StringFrom(text),
		SendAt:     nowFunc(),
		ClientID:   uuid.NewString(),
		Pending:    true,
	}
	ch.messages = append(ch.messages, entry)

	out := OutgoingMessage{Message: text, SenderRole: ch.role, SendAt: entry.SendAt}
	if err := ch.backend.SendMessage(ch.sessionID, ch.tutorID, ch.studentID, out); err != nil {
		ch.remove(entry.ClientID)
		return Message{}, err
	}
	return ch.confirm(entry.ClientID, ""), nil
}

// SendFile transmits a file as a multipart payload and appends an
// entry addressing the server-returned file path.
func (ch *Channel) SendFile(file *FileUpload) (Message, error) {
	if file == nil || file.Name == "" {
		return Message{}, ErrNoFileSelected
	}

	entry := Message{
		SessionID:  ch.sessionID,
		SenderRole: ch.role,
		FileName:   null.StringFrom(file.Name),
		SendAt:     nowFunc(),
		ClientID:   uuid.NewString(),
		Pending:    true,
	}
	ch.messages = append(ch.messages, entry)

	res, err := ch.backend.SendFile(ch.sessionID, ch.tutorID, ch.studentID, file.Name, file.Content, ch.role, entry.SendAt)
	if err != nil {
		ch.remove(entry.ClientID)
		return Message{}, err
	}
	return ch.confirm(entry.ClientID, res.FilePath), nil
}

func (ch *Channel) confirm(clientID, filePath string) Message {
	for i := range ch.messages {
		if ch.messages[i].ClientID == clientID {
			ch.messages[i].Pending = false
			if filePath != "" {
				ch.messages[i].FilePath = null.StringFrom(filePath)
			}
			return ch.messages[i]
		}
	}
	return Message{}
}

func (ch *Channel) remove(clientID string) {
	for i := range ch.messages {
		if ch.messages[i].ClientID == clientID {
			ch.messages = append(ch.messages[:i], ch.messages[i+1:]...)
			return
		}
	}
}
