package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/auth"
	"github.com/peertutor/peertutor/core/messaging"
	"github.com/peertutor/peertutor/core/rating"
	"github.com/peertutor/peertutor/core/session"
	"github.com/peertutor/peertutor/core/student"
	"github.com/peertutor/peertutor/core/subject"
	"github.com/peertutor/peertutor/core/tutor"
	"github.com/peertutor/peertutor/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out io.Writer
	log core.Logger

	backend  messaging.Backend
	auth     *auth.Service
	users    *user.Service
	students *student.Service
	subjects *subject.Service
	tutors   *tutor.Service
	sessions *session.Service
	ratings  *rating.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL [-admin]                      - sign in (password prompted)")
	fmt.Fprintln(cli.out, "  register -username NAME -email EMAIL             - create an account (password prompted)")
	fmt.Fprintln(cli.out, "  users [-role R] [-search Q]                      - user directory")
	fmt.Fprintln(cli.out, "  tutors [-status S] [-search Q] [-sort gwa]       - browse tutors")
	fmt.Fprintln(cli.out, "  apply-tutor -user ID -student ID -gwa GWA        - apply to become a tutor")
	fmt.Fprintln(cli.out, "  approve-tutor -tutor ID                          - approve a pending application")
	fmt.Fprintln(cli.out, "  reject-tutor -tutor ID                           - reject a pending application")
	fmt.Fprintln(cli.out, "  add-tutor-subject -tutor ID -subject ID -grade G - add a teachable subject")
	fmt.Fprintln(cli.out, "  subjects                                         - list the subject catalog")
	fmt.Fprintln(cli.out, "  add-subject -name NAME -desc TEXT                - add a catalog subject")
	fmt.Fprintln(cli.out, "  delete-subject -id ID                            - delete a catalog subject")
	fmt.Fprintln(cli.out, "  students [-search Q]                             - student directory")
	fmt.Fprintln(cli.out, "  update-student -user ID -first NAME -last NAME -year N -department ID")
	fmt.Fprintln(cli.out, "  sessions [-student ID|-tutor ID] [-status S] [-search Q] [-sort newest|oldest]")
	fmt.Fprintln(cli.out, "  request-session -tutor ID -subject ID -student ID -date YYYY-MM-DD -time HH:MM")
	fmt.Fprintln(cli.out, "  approve-session -session ID                      - accept a pending session")
	fmt.Fprintln(cli.out, "  reject-session -session ID                       - decline a pending session")
	fmt.Fprintln(cli.out, "  rate -student ID -tutor ID -rating 1..5          - rate a tutor")
	fmt.Fprintln(cli.out, "  leaderboard [-limit N]                           - top rated tutors")
	fmt.Fprintln(cli.out, "  messages -session ID -tutor ID -student ID -role ROLE")
	fmt.Fprintln(cli.out, "  send -session ID -tutor ID -student ID -role ROLE -text MSG")
	fmt.Fprintln(cli.out, "  send-file -session ID -tutor ID -student ID -role ROLE -file PATH")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "login":
		return cli.login(args[2:])
	case "register":
		return cli.register(args[2:])
	case "users":
		return cli.listUsers(args[2:])
	case "tutors":
		return cli.listTutors(args[2:])
	case "apply-tutor":
		return cli.applyTutor(args[2:])
	case "approve-tutor":
		return cli.decideTutor(args[2:], core.StatusApproved)
	case "reject-tutor":
		return cli.decideTutor(args[2:], core.StatusRejected)
	case "add-tutor-subject":
		return cli.addTutorSubject(args[2:])
	case "subjects":
		return cli.listSubjects()
	case "add-subject":
		return cli.addSubject(args[2:])
	case "delete-subject":
		return cli.deleteSubject(args[2:])
	case "students":
		return cli.listStudents(args[2:])
	case "update-student":
		return cli.updateStudent(args[2:])
	case "sessions":
		return cli.listSessions(args[2:])
	case "request-session":
		return cli.requestSession(args[2:])
	case "approve-session":
		return cli.decideSession(args[2:], core.StatusApproved)
	case "reject-session":
		return cli.decideSession(args[2:], core.StatusRejected)
	case "rate":
		return cli.rateTutor(args[2:])
	case "leaderboard":
		return cli.leaderboard(args[2:])
	case "messages":
		return cli.showMessages(args[2:])
	case "send":
		return cli.sendMessage(args[2:])
	case "send-file":
		return cli.sendFile(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func printContext(out io.Writer, ctx auth.Context) {
	fmt.Fprintf(out, "signed in as %s (%s, user %d)\n", ctx.Username, ctx.Role, ctx.UserID)
	if ctx.StudentID.Valid {
		fmt.Fprintf(out, "  student ID: %d\n", ctx.StudentID.Int)
	}
	if ctx.TutorID.Valid {
		fmt.Fprintf(out, "  tutor ID: %d\n", ctx.TutorID.Int)
	}
}
