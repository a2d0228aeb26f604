package rest

import (
	"fmt"

	sgrest "github.com/sendgrid/rest"

	"github.com/peertutor/peertutor/core/student"
)

var _ student.Backend = (*Client)(nil)

func (c *Client) GetStudentInfo(userID int) (student.Student, error) {
	var stu student.Student
	if err := c.do(sgrest.Get, fmt.Sprintf("/users/get-student-info/%d", userID), nil, &stu); err != nil {
		if isNotFound(err) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, err
	}
	return stu, nil
}

func (c *Client) QueryAllStudents() ([]student.Student, error) {
	var students []student.Student
	if err := c.do(sgrest.Get, "/students/get-all-students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) UpdateStudent(userID int, us student.UpdateStudent) (student.Student, error) {
	var stu student.Student
	if err := c.do(sgrest.Put, fmt.Sprintf("/students/update-student/%d", userID), us, &stu); err != nil {
		if isNotFound(err) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, err
	}
	return stu, nil
}

func (c *Client) QueryAllDepartments() ([]student.Department, error) {
	var deps []student.Department
	if err := c.do(sgrest.Get, "/departments/getAllDepartment", nil, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}
