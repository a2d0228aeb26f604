package main

import (
	"fmt"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/peertutor/peertutor/core/listview"
	"github.com/peertutor/peertutor/core/student"
	"github.com/peertutor/peertutor/core/subject"
)

func (cli *commandLine) listSubjects() error {
	subjects, err := cli.subjects.QueryAll()
	if err != nil {
		return err
	}
	cli.printSubjects(subjects)
	return nil
}

func (cli *commandLine) addSubject(args []string) error {
	fs := newFlagSet("add-subject")
	name := fs.String("name", "", "Subject code, e.g. CS101.")
	desc := fs.String("desc", "", "Subject description.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	subjects, err := cli.subjects.Add(subject.NewSubject{Name: *name, Description: *desc})
	if err != nil {
		return err
	}
	cli.printSubjects(subjects)
	return nil
}

func (cli *commandLine) deleteSubject(args []string) error {
	fs := newFlagSet("delete-subject")
	id := fs.Int("id", 0, "Subject ID to delete.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		fs.Usage()
		return errHelp
	}

	subjects, err := cli.subjects.Delete(*id)
	if err != nil {
		return err
	}
	cli.printSubjects(subjects)
	return nil
}

func (cli *commandLine) printSubjects(subjects []subject.Subject) {
	for _, sub := range subjects {
		fmt.Fprintf(cli.out, "%d\t%s\t%s\n", sub.ID, sub.Name, sub.Description)
	}
}

func (cli *commandLine) updateStudent(args []string) error {
	fs := newFlagSet("update-student")
	userID := fs.Int("user", 0, "User whose profile to update.")
	first := fs.String("first", "", "First name.")
	middle := fs.String("middle", "", "Middle name (optional).")
	last := fs.String("last", "", "Last name.")
	year := fs.Int("year", 0, "Year level, 1 to 6.")
	depID := fs.Int("department", 0, "Department ID.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID == 0 {
		fs.Usage()
		return errHelp
	}

	us := student.UpdateStudent{
		FirstName:    *first,
		LastName:     *last,
		YearLevel:    *year,
		DepartmentID: *depID,
	}
	if *middle != "" {
		us.MiddleName = null.StringFrom(*middle)
	}
	stu, err := cli.students.Update(*userID, us)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "updated %s (student %d, year %d)\n", stu.DisplayName(), stu.ID, stu.YearLevel)
	return nil
}

func (cli *commandLine) listStudents(args []string) error {
	fs := newFlagSet("students")
	search := fs.String("search", "", "Search by name or year level.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	students, err := cli.students.QueryAll()
	if err != nil {
		return err
	}

	derived := listview.Derive(students, listview.Options[student.Student]{
		Search: *search,
		SearchFields: func(s student.Student) []string {
			return []string{s.DisplayName(), strconv.Itoa(s.YearLevel)}
		},
		Less: student.ByYearLevel,
	})
	for _, s := range derived {
		fmt.Fprintf(cli.out, "%d\t%s\tyear %d\n", s.ID, s.DisplayName(), s.YearLevel)
	}
	return nil
}
