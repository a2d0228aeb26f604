package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peertutor/peertutor/core/messaging"
	"github.com/peertutor/peertutor/core/user"
)

type channelFlags struct {
	sessionID *int
	tutorID   *int
	studentID *int
	role      *string
}

func addChannelFlags(fs *flag.FlagSet) channelFlags {
	return channelFlags{
		sessionID: fs.Int("session", 0, "Session the conversation belongs to."),
		tutorID:   fs.Int("tutor", 0, "Tutor participant."),
		studentID: fs.Int("student", 0, "Student participant."),
		role:      fs.String("role", string(user.RoleStudent), "Sender role: STUDENT|TUTOR."),
	}
}

func (cli *commandLine) openChannel(fs *flag.FlagSet, cf channelFlags) (*messaging.Channel, error) {
	if *cf.sessionID == 0 {
		fs.Usage()
		return nil, errHelp
	}
	role := user.Role(*cf.role)
	if role != user.RoleStudent && role != user.RoleTutor {
		fs.Usage()
		return nil, errHelp
	}
	ch := messaging.NewChannel(cli.backend, cli.log, *cf.sessionID, *cf.tutorID, *cf.studentID, role)
	if _, err := ch.LoadHistory(); err != nil {
		return nil, err
	}
	return ch, nil
}

func (cli *commandLine) showMessages(args []string) error {
	fs := newFlagSet("messages")
	cf := addChannelFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	ch, err := cli.openChannel(fs, cf)
	if err != nil {
		return err
	}
	cli.printMessages(ch.Messages())
	return nil
}

func (cli *commandLine) sendMessage(args []string) error {
	fs := newFlagSet("send")
	cf := addChannelFlags(fs)
	text := fs.String("text", "", "Message text.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ch, err := cli.openChannel(fs, cf)
	if err != nil {
		return err
	}
	if _, err := ch.SendText(*text); err != nil {
		return err
	}
	cli.printMessages(ch.Messages())
	return nil
}

func (cli *commandLine) sendFile(args []string) error {
	fs := newFlagSet("send-file")
	cf := addChannelFlags(fs)
	path := fs.String("file", "", "File to send.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ch, err := cli.openChannel(fs, cf)
	if err != nil {
		return err
	}

	var upload *messaging.FileUpload
	if *path != "" {
		f, err := os.Open(*path)
		if err != nil {
			return err
		}
		defer f.Close()
		upload = &messaging.FileUpload{Name: filepath.Base(*path), Content: f}
	}
	if _, err := ch.SendFile(upload); err != nil {
		return err
	}
	cli.printMessages(ch.Messages())
	return nil
}

func (cli *commandLine) printMessages(messages []messaging.Message) {
	for _, msg := range messages {
		body := msg.Message.String
		if msg.IsFile() {
			body = fmt.Sprintf("[file] %s (%s)", msg.FileName.String, msg.FilePath.String)
		}
		fmt.Fprintf(cli.out, "%s %s: %s\n", msg.SendAt.Format("2006-01-02 15:04"), msg.SenderRole, body)
	}
}
