package testutil

import (
	"sync"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/messaging"
	"github.com/peertutor/peertutor/core/session"
	"github.com/peertutor/peertutor/core/student"
	"github.com/peertutor/peertutor/core/subject"
	"github.com/peertutor/peertutor/core/tutor"
	"github.com/peertutor/peertutor/core/user"
)

// Store is the fake backend's in-memory state. Seed it before
// starting the server; handlers mutate it like the real backend
// would.
type Store struct {
	mu sync.RWMutex
	pk int

	users       map[int]user.User
	passwords   map[int]string
	students    map[int]student.Student
	departments map[int]student.Department
	subjects    map[int]subject.Subject
	tutors      map[int]tutor.Tutor
	tutorSubs   []tutorSubjectRec
	sessions    map[int]session.Session
	ratings     []RatingRec
	messages    map[int][]messaging.Message
}

type tutorSubjectRec struct {
	ID        int
	TutorID   int
	SubjectID int
	Grade     float64
}

type RatingRec struct {
	StudentID int
	TutorID   int
	Rating    int
}

func NewStore() *Store {
	return &Store{
		users:       make(map[int]user.User),
		passwords:   make(map[int]string),
		students:    make(map[int]student.Student),
		departments: make(map[int]student.Department),
		subjects:    make(map[int]subject.Subject),
		tutors:      make(map[int]tutor.Tutor),
		sessions:    make(map[int]session.Session),
		messages:    make(map[int][]messaging.Message),
	}
}

func (s *Store) nextPK() int {
	s.pk++
	return s.pk
}

// Seed helpers. All take the lock themselves so tests can call them
// directly.

func (s *Store) AddUser(username, email, password string, role user.Role) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	usr := user.User{ID: s.nextPK(), Username: username, Email: email, Role: role}
	s.users[usr.ID] = usr
	s.passwords[usr.ID] = password
	return usr
}

func (s *Store) AddDepartment(name string) student.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	dep := student.Department{ID: s.nextPK(), Name: name}
	s.departments[dep.ID] = dep
	return dep
}

func (s *Store) AddStudent(userID int, first, middle, last string, yearLevel, departmentID int) student.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	stu := student.Student{
		ID:           s.nextPK(),
		UserID:       userID,
		FirstName:    first,
		LastName:     last,
		YearLevel:    yearLevel,
		DepartmentID: departmentID,
	}
	if middle != "" {
		stu.MiddleName = null.StringFrom(middle)
	}
	s.students[stu.ID] = stu
	return stu
}

func (s *Store) AddSubject(name, description string) subject.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := subject.Subject{ID: s.nextPK(), Name: name, Description: description}
	s.subjects[sub.ID] = sub
	return sub
}

func (s *Store) AddTutor(studentID int, gwa float64, status core.Status) tutor.Tutor {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := tutor.Tutor{ID: s.nextPK(), StudentID: studentID, GWA: gwa, Status: status}
	s.tutors[t.ID] = t
	return t
}

func (s *Store) AddTutorSubject(tutorID, subjectID int, grade float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tutorSubs = append(s.tutorSubs, tutorSubjectRec{
		ID:        s.nextPK(),
		TutorID:   tutorID,
		SubjectID: subjectID,
		Grade:     grade,
	})
}

func (s *Store) AddSession(tutorID, studentID, subjectID int, date, tm string, status core.Status) session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := session.Session{
		ID:        s.nextPK(),
		TutorID:   tutorID,
		StudentID: studentID,
		SubjectID: subjectID,
		Date:      date,
		Time:      tm,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[sess.ID] = sess
	return sess
}

func (s *Store) AddRating(studentID, tutorID, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings = append(s.ratings, RatingRec{StudentID: studentID, TutorID: tutorID, Rating: score})
}

func (s *Store) AddMessage(sessionID int, role user.Role, text string, sendAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[sessionID] = append(s.messages[sessionID], messaging.Message{
		ID:         s.nextPK(),
		SessionID:  sessionID,
		SenderRole: role,
		Message:    null.StringFrom(text),
		SendAt:     sendAt,
	})
}

// GetTutor reads a tutor record back out, for assertions.
func (s *Store) GetTutor(tutorID int) (tutor.Tutor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tutors[tutorID]
	return t, ok
}

// GetSession reads a session record back out, for assertions.
func (s *Store) GetSession(sessionID int) (session.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

// Ratings returns the raw rating rows, for assertions.
func (s *Store) Ratings() []RatingRec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RatingRec, len(s.ratings))
	copy(out, s.ratings)
	return out
}

// view builders: the real backend nests related records the same way.

func (s *Store) studentView(stu student.Student) student.Student {
	if usr, ok := s.users[stu.UserID]; ok {
		u := usr
		stu.User = &u
	}
	stu.FullName = stu.DisplayName()
	return stu
}

func (s *Store) tutorView(t tutor.Tutor) tutor.Tutor {
	if stu, ok := s.students[t.StudentID]; ok {
		sv := s.studentView(stu)
		t.Student = &sv
	}
	return t
}

func (s *Store) tutorSubjectView(rec tutorSubjectRec) tutor.TutorSubject {
	ts := tutor.TutorSubject{ID: rec.ID, Grade: rec.Grade}
	if t, ok := s.tutors[rec.TutorID]; ok {
		tv := s.tutorView(t)
		ts.Tutor = &tv
	}
	if sub, ok := s.subjects[rec.SubjectID]; ok {
		sv := sub
		ts.Subject = &sv
	}
	return ts
}

func (s *Store) sessionView(sess session.Session) session.Session {
	if t, ok := s.tutors[sess.TutorID]; ok {
		tv := s.tutorView(t)
		sess.Tutor = &tv
	}
	if stu, ok := s.students[sess.StudentID]; ok {
		sv := s.studentView(stu)
		sess.Student = &sv
	}
	if sub, ok := s.subjects[sess.SubjectID]; ok {
		sv := sub
		sess.Subject = &sv
	}
	return sess
}

func (s *Store) tutorByStudent(studentID int) (tutor.Tutor, bool) {
	for _, t := range s.tutors {
		if t.StudentID == studentID {
			return t, true
		}
	}
	return tutor.Tutor{}, false
}

func (s *Store) studentByUser(userID int) (student.Student, bool) {
	for _, stu := range s.students {
		if stu.UserID == userID {
			return stu, true
		}
	}
	return student.Student{}, false
}
