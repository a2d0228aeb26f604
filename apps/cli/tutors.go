package main

import (
	"fmt"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/listview"
	"github.com/peertutor/peertutor/core/tutor"
)

func (cli *commandLine) listTutors(args []string) error {
	fs := newFlagSet("tutors")
	status := fs.String("status", "", "Filter by status (PENDING|APPROVED|REJECTED).")
	search := fs.String("search", "", "Search by name, username, email, ID or GWA.")
	sortBy := fs.String("sort", "", "Sort order: gwa.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tutors, err := cli.tutors.QueryAll()
	if err != nil {
		return err
	}

	opts := listview.Options[tutor.Tutor]{
		Search:       *search,
		SearchFields: tutor.Tutor.SearchFields,
	}
	if *status != "" {
		want := core.Status(*status)
		opts.Filter = func(t tutor.Tutor) bool { return t.Status == want }
	}
	if *sortBy == "gwa" {
		opts.Less = tutor.ByGWA
	}

	for _, t := range listview.Derive(tutors, opts) {
		fmt.Fprintf(cli.out, "%d\t%s\tGWA %.2f\t%s\n", t.ID, t.DisplayName(), t.GWA, t.Status)
	}
	return nil
}

func (cli *commandLine) applyTutor(args []string) error {
	fs := newFlagSet("apply-tutor")
	userID := fs.Int("user", 0, "User ID of the applicant.")
	studentID := fs.Int("student", 0, "Student ID of the applicant.")
	gwa := fs.String("gwa", "", "Current grade-weighted average, e.g. 1.75.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID == 0 {
		fs.Usage()
		return errHelp
	}

	t, err := cli.tutors.Apply(tutor.Application{UserID: *userID, StudentID: *studentID, GWA: *gwa})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "application submitted: tutor %d (%s)\n", t.ID, t.Status)
	return nil
}

func (cli *commandLine) decideTutor(args []string, status core.Status) error {
	fs := newFlagSet("decide-tutor")
	tutorID := fs.Int("tutor", 0, "Tutor ID of the pending application.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tutorID == 0 {
		fs.Usage()
		return errHelp
	}

	t, err := cli.findTutor(*tutorID)
	if err != nil {
		return err
	}
	decide := cli.tutors.Approve
	if status == core.StatusRejected {
		decide = cli.tutors.Reject
	}
	tutors, err := decide(t)
	if err != nil {
		return err
	}
	for _, t := range tutors {
		fmt.Fprintf(cli.out, "%d\t%s\t%s\n", t.ID, t.DisplayName(), t.Status)
	}
	return nil
}

func (cli *commandLine) addTutorSubject(args []string) error {
	fs := newFlagSet("add-tutor-subject")
	tutorID := fs.Int("tutor", 0, "Tutor ID.")
	subjectID := fs.Int("subject", 0, "Subject ID to teach.")
	grade := fs.String("grade", "", "Grade earned in the subject.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tutorID == 0 {
		fs.Usage()
		return errHelp
	}

	t, err := cli.findTutor(*tutorID)
	if err != nil {
		return err
	}
	subjects, err := cli.tutors.AddSubject(t, tutor.NewTutorSubject{SubjectID: *subjectID, Grade: *grade})
	if err != nil {
		return err
	}
	for _, ts := range subjects {
		if ts.Subject != nil {
			fmt.Fprintf(cli.out, "%s\tgrade %.2f\n", ts.Subject.Name, ts.Grade)
		}
	}
	return nil
}

func (cli *commandLine) findTutor(tutorID int) (tutor.Tutor, error) {
	tutors, err := cli.tutors.QueryAll()
	if err != nil {
		return tutor.Tutor{}, err
	}
	for _, t := range tutors {
		if t.ID == tutorID {
			return t, nil
		}
	}
	return tutor.Tutor{}, tutor.ErrNotFound
}
