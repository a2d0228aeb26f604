package main

import (
	"fmt"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/listview"
	"github.com/peertutor/peertutor/core/session"
)

func (cli *commandLine) listSessions(args []string) error {
	fs := newFlagSet("sessions")
	studentID := fs.Int("student", 0, "Only this student's sessions.")
	tutorID := fs.Int("tutor", 0, "Only this tutor's sessions.")
	status := fs.String("status", "", "Filter by status (PENDING|APPROVED|REJECTED).")
	search := fs.String("search", "", "Search by subject or participant.")
	sortBy := fs.String("sort", "", "Sort order: newest|oldest.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var sessions []session.Session
	var err error
	switch {
	case *studentID != 0:
		sessions, err = cli.sessions.ByStudent(*studentID)
	case *tutorID != 0:
		sessions, err = cli.sessions.ByTutor(*tutorID)
	default:
		sessions, err = cli.sessions.QueryAll()
	}
	if err != nil {
		return err
	}

	opts := listview.Options[session.Session]{
		Search:       *search,
		SearchFields: session.Session.SearchFields,
	}
	if *status != "" {
		want := core.Status(*status)
		opts.Filter = func(s session.Session) bool { return s.Status == want }
	}
	switch *sortBy {
	case "newest":
		opts.Less = session.ByDateDesc
	case "oldest":
		opts.Less = session.ByDateAsc
	}

	for _, s := range listview.Derive(sessions, opts) {
		subjectName := ""
		if s.Subject != nil {
			subjectName = s.Subject.Name
		}
		fmt.Fprintf(cli.out, "%d\t%s\t%s %s\t%s\n",
			s.ID, subjectName, session.FormatDate(s.Date), session.FormatTime12(s.Time), s.Status)
	}
	return nil
}

func (cli *commandLine) requestSession(args []string) error {
	fs := newFlagSet("request-session")
	tutorID := fs.Int("tutor", 0, "Tutor to book.")
	subjectID := fs.Int("subject", 0, "Subject to study.")
	studentID := fs.Int("student", 0, "Requesting student.")
	date := fs.String("date", "", "Session date, YYYY-MM-DD.")
	tm := fs.String("time", "", "Session time, HH:MM.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tutorID == 0 || *subjectID == 0 || *studentID == 0 {
		fs.Usage()
		return errHelp
	}

	confirmation, err := cli.sessions.Request(*tutorID, *subjectID, *studentID,
		session.NewSession{Date: *date, Time: *tm})
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, confirmation)
	return nil
}

func (cli *commandLine) decideSession(args []string, status core.Status) error {
	fs := newFlagSet("decide-session")
	sessionID := fs.Int("session", 0, "Session ID of the pending request.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sessionID == 0 {
		fs.Usage()
		return errHelp
	}

	sess, err := cli.findSession(*sessionID)
	if err != nil {
		return err
	}
	sessions, err := cli.sessions.SetStatus(sess, status)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		fmt.Fprintf(cli.out, "%d\t%s %s\t%s\n",
			s.ID, session.FormatDate(s.Date), session.FormatTime12(s.Time), s.Status)
	}
	return nil
}

func (cli *commandLine) findSession(sessionID int) (session.Session, error) {
	sessions, err := cli.sessions.QueryAll()
	if err != nil {
		return session.Session{}, err
	}
	for _, s := range sessions {
		if s.ID == sessionID {
			return s, nil
		}
	}
	return session.Session{}, session.ErrNotFound
}

func (cli *commandLine) rateTutor(args []string) error {
	fs := newFlagSet("rate")
	studentID := fs.Int("student", 0, "Rating student.")
	tutorID := fs.Int("tutor", 0, "Rated tutor.")
	score := fs.Int("rating", 0, "Score, 1 to 5.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *studentID == 0 || *tutorID == 0 {
		fs.Usage()
		return errHelp
	}

	confirmation, err := cli.ratings.SubmitRating(*studentID, *tutorID, *score)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, confirmation)
	return nil
}

func (cli *commandLine) leaderboard(args []string) error {
	fs := newFlagSet("leaderboard")
	limit := fs.Int("limit", 0, "Number of entries; defaults to the configured size.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := cli.ratings.Leaderboard(*limit)
	if err != nil {
		return err
	}
	for i, entry := range entries {
		fmt.Fprintf(cli.out, "#%d\t%s\t%.1f\n", i+1, entry.FullName, entry.Rating)
	}
	return nil
}
