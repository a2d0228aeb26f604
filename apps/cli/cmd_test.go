package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/auth"
	"github.com/peertutor/peertutor/core/messaging"
	"github.com/peertutor/peertutor/core/rating"
	"github.com/peertutor/peertutor/core/session"
	"github.com/peertutor/peertutor/core/student"
	"github.com/peertutor/peertutor/core/subject"
	"github.com/peertutor/peertutor/core/tutor"
	"github.com/peertutor/peertutor/core/user"
	logsvc "github.com/peertutor/peertutor/services/logger"
	"github.com/peertutor/peertutor/services/rest"
	testutil "github.com/peertutor/peertutor/tests"
)

func newTestCLI(t *testing.T, store *testutil.Store) (*commandLine, *bytes.Buffer) {
	t.Helper()
	srv := testutil.NewServer(t, store)
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
	client := rest.NewClient(&core.Config{APIBaseURL: srv.URL}, logger)

	out := &bytes.Buffer{}
	cli := &commandLine{
		out:      out,
		log:      logger,
		backend:  client,
		auth:     auth.NewService(client, client, client),
		users:    user.NewService(client),
		students: student.NewService(client),
		subjects: subject.NewService(client),
		tutors:   tutor.NewService(client),
		sessions: session.NewService(client),
		ratings:  rating.NewService(client, client),
	}
	return cli, out
}

func mockPassword(t *testing.T, pwd string) {
	t.Helper()
	orig := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = orig })
}

// seedMarketplace builds a small consistent world: one approved tutor
// with a subject, one plain student, one pending session between them.
type marketplace struct {
	store      *testutil.Store
	tutorUser  user.User
	tutorRec   tutor.Tutor
	plainUser  user.User
	student    student.Student
	subject    subject.Subject
	sessionRec session.Session
}

func itoa(id int) string { return strconv.Itoa(id) }

func seedMarketplace(t *testing.T) *marketplace {
	t.Helper()
	store := testutil.NewStore()
	dep := store.AddDepartment("Computer Science")

	tutorUsr := store.AddUser("ada", "ada@example.com", "s3cret", user.RoleTutor)
	tutorStu := store.AddStudent(tutorUsr.ID, "Ada", "", "Lovelace", 4, dep.ID)
	tutorRec := store.AddTutor(tutorStu.ID, 1.25, core.StatusApproved)

	plainUsr := store.AddUser("grace", "grace@example.com", "s3cret", user.RoleStudent)
	plainStu := store.AddStudent(plainUsr.ID, "Grace", "", "Hopper", 2, dep.ID)

	sub := store.AddSubject("Algebra", "Linear algebra basics")
	store.AddTutorSubject(tutorRec.ID, sub.ID, 1.0)
	sess := store.AddSession(tutorRec.ID, plainStu.ID, sub.ID, "2026-09-01", "14:30", core.StatusPending)

	return &marketplace{
		store:      store,
		tutorUser:  tutorUsr,
		tutorRec:   tutorRec,
		plainUser:  plainUsr,
		student:    plainStu,
		subject:    sub,
		sessionRec: sess,
	}
}

func TestRunHelp(t *testing.T) {
	cli, out := newTestCLI(t, testutil.NewStore())

	t.Run("no subcommand", func(t *testing.T) {
		err := cli.run([]string{"peertutor"})
		assert.ErrorIs(t, err, errHelp)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("unknown subcommand", func(t *testing.T) {
		assert.ErrorIs(t, cli.run([]string{"peertutor", "bogus"}), errHelp)
	})
}

func TestLoginCommand(t *testing.T) {
	m := seedMarketplace(t)
	mockPassword(t, "s3cret")

	t.Run("student login prints the resolved context", func(t *testing.T) {
		cli, out := newTestCLI(t, m.store)
		err := cli.run([]string{"peertutor", "login", "-email", "grace@example.com"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "signed in as grace")
		assert.Contains(t, out.String(), "student ID:")
	})

	t.Run("missing email asks for help", func(t *testing.T) {
		cli, _ := newTestCLI(t, m.store)
		assert.ErrorIs(t, cli.run([]string{"peertutor", "login"}), errHelp)
	})

	t.Run("wrong password surfaces the backend message", func(t *testing.T) {
		mockPassword(t, "nope")
		cli, _ := newTestCLI(t, m.store)
		err := cli.run([]string{"peertutor", "login", "-email", "grace@example.com"})
		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", errmsg(err))
	})
}

func TestUserCommands(t *testing.T) {
	m := seedMarketplace(t)
	m.store.AddUser("root", "root@example.com", "s3cret", user.RoleAdmin)
	cli, out := newTestCLI(t, m.store)

	t.Run("users lists the whole directory", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"peertutor", "users"}))
		assert.Contains(t, out.String(), "ada\tada@example.com\tTUTOR")
		assert.Contains(t, out.String(), "grace\tgrace@example.com\tSTUDENT")
		assert.Contains(t, out.String(), "root\troot@example.com\tADMIN")
	})

	t.Run("users -role narrows to one role", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"peertutor", "users", "-role", "STUDENT"}))
		assert.Contains(t, out.String(), "grace")
		assert.NotContains(t, out.String(), "ada")
		assert.NotContains(t, out.String(), "root")
	})

	t.Run("users -search matches id, username and email", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"peertutor", "users", "-search", "ada@example.com"}))
		assert.Contains(t, out.String(), "ada")
		assert.NotContains(t, out.String(), "grace")

		out.Reset()
		require.NoError(t, cli.run([]string{"peertutor", "users", "-search", itoa(m.plainUser.ID)}))
		assert.Contains(t, out.String(), "grace")

		out.Reset()
		require.NoError(t, cli.run([]string{"peertutor", "users", "-search", "nobody"}))
		assert.Empty(t, out.String())
	})
}

func TestTutorCommands(t *testing.T) {
	t.Run("tutors lists the directory", func(t *testing.T) {
		m := seedMarketplace(t)
		cli, out := newTestCLI(t, m.store)
		require.NoError(t, cli.run([]string{"peertutor", "tutors"}))
		assert.Contains(t, out.String(), "Ada Lovelace")
		assert.Contains(t, out.String(), "GWA 1.25")
	})

	t.Run("tutors -search narrows the listing", func(t *testing.T) {
		m := seedMarketplace(t)
		cli, out := newTestCLI(t, m.store)
		require.NoError(t, cli.run([]string{"peertutor", "tutors", "-search", "nobody"}))
		assert.Empty(t, out.String())
	})

	t.Run("apply, approve, refreshed listing", func(t *testing.T) {
		m := seedMarketplace(t)
		cli, out := newTestCLI(t, m.store)

		err := cli.run([]string{"peertutor", "apply-tutor",
			"-user", itoa(m.plainUser.ID), "-student", itoa(m.student.ID), "-gwa", "1.75"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "application submitted")
		assert.Contains(t, out.String(), "PENDING")

		pending, err := cli.tutors.QueryAll()
		require.NoError(t, err)
		var pendingID int
		for _, tut := range pending {
			if tut.Status == core.StatusPending {
				pendingID = tut.ID
			}
		}
		require.NotZero(t, pendingID)

		out.Reset()
		require.NoError(t, cli.run([]string{"peertutor", "approve-tutor", "-tutor", itoa(pendingID)}))
		assert.Contains(t, out.String(), "Grace Hopper\tAPPROVED")
	})

	t.Run("invalid gwa is reported per field", func(t *testing.T) {
		m := seedMarketplace(t)
		cli, _ := newTestCLI(t, m.store)
		err := cli.run([]string{"peertutor", "apply-tutor",
			"-user", itoa(m.plainUser.ID), "-student", itoa(m.student.ID), "-gwa", "abc"})
		require.Error(t, err)
		assert.Equal(t, "gwa: must be a valid number", errmsg(err))
	})
}

func TestSessionCommands(t *testing.T) {
	t.Run("sessions lists formatted rows", func(t *testing.T) {
		m := seedMarketplace(t)
		cli, out := newTestCLI(t, m.store)
		require.NoError(t, cli.run([]string{"peertutor", "sessions"}))
		assert.Contains(t, out.String(), "September 1, 2026")
		assert.Contains(t, out.String(), "2:30 PM")
	})

	t.Run("request-session confirms", func(t *testing.T) {
		m := seedMarketplace(t)
		cli, out := newTestCLI(t, m.store)
		err := cli.run([]string{"peertutor", "request-session",
			"-tutor", itoa(m.tutorRec.ID), "-subject", itoa(m.subject.ID), "-student", itoa(m.student.ID),
			"-date", "2026-09-02", "-time", "10:00"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Session request sent to tutor!")
	})

	t.Run("approve-session updates the pending session", func(t *testing.T) {
		m := seedMarketplace(t)
		cli, out := newTestCLI(t, m.store)
		require.NoError(t, cli.run([]string{"peertutor", "approve-session", "-session", itoa(m.sessionRec.ID)}))
		assert.Contains(t, out.String(), "APPROVED")

		rec, ok := m.store.GetSession(m.sessionRec.ID)
		require.True(t, ok)
		assert.Equal(t, core.StatusApproved, rec.Status)
	})
}

func TestRatingCommands(t *testing.T) {
	m := seedMarketplace(t)
	cli, out := newTestCLI(t, m.store)

	require.NoError(t, cli.run([]string{"peertutor", "rate",
		"-student", itoa(m.student.ID), "-tutor", itoa(m.tutorRec.ID), "-rating", "5"}))
	assert.Contains(t, out.String(), "Thank you for rating your tutor!")

	out.Reset()
	require.NoError(t, cli.run([]string{"peertutor", "leaderboard"}))
	assert.Contains(t, out.String(), "Ada Lovelace")
	assert.Contains(t, out.String(), "5.0")
}

func TestMessagingCommands(t *testing.T) {
	m := seedMarketplace(t)
	cli, out := newTestCLI(t, m.store)

	require.NoError(t, cli.run([]string{"peertutor", "send",
		"-session", itoa(m.sessionRec.ID), "-tutor", itoa(m.tutorRec.ID), "-student", itoa(m.student.ID),
		"-role", "STUDENT", "-text", "hi, can we move to 3pm?"}))
	assert.Contains(t, out.String(), "hi, can we move to 3pm?")

	out.Reset()
	require.NoError(t, cli.run([]string{"peertutor", "messages",
		"-session", itoa(m.sessionRec.ID), "-tutor", itoa(m.tutorRec.ID), "-student", itoa(m.student.ID),
		"-role", "TUTOR"}))
	assert.Contains(t, out.String(), "STUDENT: hi, can we move to 3pm?")

	t.Run("send-file uploads and prints the file entry", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("chapter 1"), 0o600))

		out.Reset()
		require.NoError(t, cli.run([]string{"peertutor", "send-file",
			"-session", itoa(m.sessionRec.ID), "-tutor", itoa(m.tutorRec.ID), "-student", itoa(m.student.ID),
			"-role", "TUTOR", "-file", path}))
		assert.Contains(t, out.String(), "[file] notes.txt (/uploads/notes.txt)")
	})

	t.Run("send-file without a file is rejected", func(t *testing.T) {
		err := cli.run([]string{"peertutor", "send-file",
			"-session", itoa(m.sessionRec.ID), "-tutor", itoa(m.tutorRec.ID), "-student", itoa(m.student.ID),
			"-role", "TUTOR"})
		assert.ErrorIs(t, err, messaging.ErrNoFileSelected)
	})

	t.Run("bad role asks for help", func(t *testing.T) {
		err := cli.run([]string{"peertutor", "messages",
			"-session", itoa(m.sessionRec.ID), "-role", "NEITHER"})
		assert.ErrorIs(t, err, errHelp)
	})
}

func TestStudentCommands(t *testing.T) {
	m := seedMarketplace(t)
	cli, out := newTestCLI(t, m.store)

	require.NoError(t, cli.run([]string{"peertutor", "students"}))
	assert.Contains(t, out.String(), "Grace Hopper\tyear 2")
	assert.Contains(t, out.String(), "Ada Lovelace\tyear 4")

	out.Reset()
	require.NoError(t, cli.run([]string{"peertutor", "update-student",
		"-user", itoa(m.plainUser.ID), "-first", "Grace", "-middle", "Brewster", "-last", "Hopper",
		"-year", "3", "-department", "1"}))
	assert.Contains(t, out.String(), "Grace Brewster Hopper")
	assert.Contains(t, out.String(), "year 3")

	t.Run("year level out of range fails validation", func(t *testing.T) {
		err := cli.run([]string{"peertutor", "update-student",
			"-user", itoa(m.plainUser.ID), "-first", "Grace", "-last", "Hopper",
			"-year", "9", "-department", "1"})
		require.Error(t, err)
		assert.Contains(t, errmsg(err), "yearLevel")
	})
}

func TestSubjectCommands(t *testing.T) {
	m := seedMarketplace(t)
	cli, out := newTestCLI(t, m.store)

	require.NoError(t, cli.run([]string{"peertutor", "subjects"}))
	assert.Contains(t, out.String(), "Algebra")

	out.Reset()
	require.NoError(t, cli.run([]string{"peertutor", "add-subject",
		"-name", "Calculus", "-desc", "Derivatives and integrals"}))
	assert.Contains(t, out.String(), "Calculus")
}
