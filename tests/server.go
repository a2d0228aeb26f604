package testutil

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/volatiletech/null/v8"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/core/messaging"
	"github.com/peertutor/peertutor/core/rating"
	"github.com/peertutor/peertutor/core/session"
	"github.com/peertutor/peertutor/core/student"
	"github.com/peertutor/peertutor/core/subject"
	"github.com/peertutor/peertutor/core/tutor"
	"github.com/peertutor/peertutor/core/user"
)

// NewServer starts an in-process fake of the REST backend over the
// given store. It answers the same routes, JSON shapes and plain-text
// errors as the real service, so client tests exercise the full HTTP
// path.
func NewServer(t *testing.T, store *Store) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.OFF)
	registerRoutes(e, store)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func registerRoutes(e *echo.Echo, s *Store) {
	e.POST("/users/login", s.handleLogin)
	e.POST("/admin/login", s.handleAdminLogin)
	e.POST("/users/registration", s.handleRegister)
	e.GET("/users/get-all-users", s.handleAllUsers)
	e.GET("/users/get-student-info/:userId", s.handleStudentInfo)
	e.GET("/admin/get-admin/:id", s.handleGetAdmin)

	e.GET("/students/get-all-students", s.handleAllStudents)
	e.PUT("/students/update-student/:userId", s.handleUpdateStudent)
	e.GET("/departments/getAllDepartment", s.handleAllDepartments)

	e.GET("/subjects/get-all-subjects", s.handleAllSubjects)
	e.POST("/subjects/add-subject", s.handleAddSubject)
	e.DELETE("/subjects/delete-subject/:id", s.handleDeleteSubject)

	e.GET("/tutors/get-all-tutors", s.handleAllTutors)
	e.GET("/tutors/get-tutor-by-user/:userId", s.handleTutorByUser)
	e.POST("/tutors/apply/:userId/:studentId", s.handleApplyTutor)
	e.PUT("/tutors/approved/:tutorId", s.handleApproveTutor)
	e.PUT("/tutors/rejected/:tutorId", s.handleRejectTutor)

	e.GET("/tutor-subjects/get-all-subjects", s.handleAllTutorSubjects)
	e.GET("/tutor-subjects/get-tutor-subjects/:tutorId", s.handleTutorSubjects)
	e.POST("/tutor-subjects/tutor-add-subject/:tutorId", s.handleAddTutorSubject)

	e.GET("/sessions/get-all-sessions", s.handleAllSessions)
	e.GET("/sessions/get-session-by-student/:id", s.handleSessionsByStudent)
	e.GET("/sessions/get-session-by-tutor/:id", s.handleSessionsByTutor)
	e.POST("/sessions/students-apply-session/:tutorId/:subjectId/:studentId", s.handleApplySession)
	e.PUT("/sessions/update-status/:sessionId", s.handleUpdateSessionStatus)

	e.GET("/rates/average", s.handleAverageRatings)
	e.POST("/rates/student-rate-tutor/:studentId/:tutorId", s.handleRateTutor)

	e.GET("/messages/get-messages/:sessionId", s.handleGetMessages)
	e.POST("/messages/send/:sessionId/:tutorId/:studentId", s.handleSendMessage)
	e.POST("/messages/send-file/:sessionId/:tutorId/:studentId", s.handleSendFile)
}

func intParam(ctx echo.Context, name string) (int, error) {
	return strconv.Atoi(ctx.Param(name))
}

// auth

func (s *Store) handleLogin(ctx echo.Context) error {
	var creds user.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return ctx.String(http.StatusBadRequest, "Malformed request")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, usr := range s.users {
		if usr.Email == creds.Email && s.passwords[id] == creds.Password && !usr.IsAdmin() {
			return ctx.JSON(http.StatusOK, user.LoginResult{
				UserID: usr.ID, Username: usr.Username, Email: usr.Email, Role: usr.Role,
			})
		}
	}
	return ctx.String(http.StatusUnauthorized, "Invalid credentials")
}

func (s *Store) handleAdminLogin(ctx echo.Context) error {
	var creds user.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return ctx.String(http.StatusBadRequest, "Malformed request")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, usr := range s.users {
		if usr.Email == creds.Email && s.passwords[id] == creds.Password && usr.IsAdmin() {
			return ctx.JSON(http.StatusOK, user.LoginResult{
				UserID: usr.ID, Username: usr.Username, Email: usr.Email, Role: usr.Role,
			})
		}
	}
	return ctx.String(http.StatusUnauthorized, "Invalid credentials")
}

func (s *Store) handleRegister(ctx echo.Context) error {
	var nu user.NewUser
	if err := ctx.Bind(&nu); err != nil {
		return ctx.String(http.StatusBadRequest, "Malformed request")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, usr := range s.users {
		if usr.Email == nu.Email {
			return ctx.String(http.StatusBadRequest, "Email already in use")
		}
		if usr.Username == nu.Username {
			return ctx.String(http.StatusBadRequest, "Username already in use")
		}
	}
	usr := user.User{ID: s.nextPK(), Username: nu.Username, Email: nu.Email, Role: user.RoleStudent}
	s.users[usr.ID] = usr
	s.passwords[usr.ID] = nu.Password
	return ctx.JSON(http.StatusCreated, usr)
}

func (s *Store) handleAllUsers(ctx echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]user.User, 0, len(s.users))
	for _, usr := range s.users {
		users = append(users, usr)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return ctx.JSON(http.StatusOK, users)
}

func (s *Store) handleStudentInfo(ctx echo.Context) error {
	userID, err := intParam(ctx, "userId")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid user ID")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if stu, ok := s.studentByUser(userID); ok {
		return ctx.JSON(http.StatusOK, s.studentView(stu))
	}
	return ctx.String(http.StatusNotFound, "Student not found")
}

func (s *Store) handleGetAdmin(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid admin ID")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if usr, ok := s.users[id]; ok && usr.IsAdmin() {
		return ctx.JSON(http.StatusOK, user.Admin{ID: usr.ID, Username: usr.Username, Email: usr.Email})
	}
	return ctx.String(http.StatusNotFound, "Admin not found")
}

// students & departments

func (s *Store) handleAllStudents(ctx echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	students := make([]student.Student, 0, len(s.students))
	for _, stu := range s.students {
		students = append(students, s.studentView(stu))
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return ctx.JSON(http.StatusOK, students)
}

func (s *Store) handleUpdateStudent(ctx echo.Context) error {
	userID, err := intParam(ctx, "userId")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid user ID")
	}
	var us student.UpdateStudent
	if err := ctx.Bind(&us); err != nil {
		return ctx.String(http.StatusBadRequest, "Malformed request")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stu, ok := s.studentByUser(userID)
	if !ok {
		return ctx.String(http.StatusNotFound, "Student not found")
	}
	stu.FirstName = us.FirstName
	stu.MiddleName = us.MiddleName
	stu.LastName = us.LastName
	stu.YearLevel = us.YearLevel
	stu.DepartmentID = us.DepartmentID
	s.students[stu.ID] = stu
	return ctx.JSON(http.StatusOK, s.studentView(stu))
}

func (s *Store) handleAllDepartments(ctx echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deps := make([]student.Department, 0, len(s.departments))
	for _, dep := range s.departments {
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].ID < deps[j].ID })
	return ctx.JSON(http.StatusOK, deps)
}

// subjects

func (s *Store) handleAllSubjects(ctx echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subjects := make([]subject.Subject, 0, len(s.subjects))
	for _, sub := range s.subjects {
		subjects = append(subjects, sub)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return ctx.JSON(http.StatusOK, subjects)
}

func (s *Store) handleAddSubject(ctx echo.Context) error {
	var ns subject.NewSubject
	if err := ctx.Bind(&ns); err != nil {
		return ctx.String(http.StatusBadRequest, "Malformed request")
	}
	if ns.Name == "" || ns.Description == "" {
		return ctx.String(http.StatusBadRequest, "Subject name and description are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := subject.Subject{ID: s.nextPK(), Name: ns.Name, Description: ns.Description}
	s.subjects[sub.ID] = sub
	return ctx.JSON(http.StatusCreated, sub)
}

func (s *Store) handleDeleteSubject(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid subject ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subjects[id]; !ok {
		return ctx.String(http.StatusNotFound, "Subject not found")
	}
	delete(s.subjects, id)
	return ctx.String(http.StatusOK, "Subject deleted")
}

// tutors

func (s *Store) handleAllTutors(ctx echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tutors := make([]tutor.Tutor, 0, len(s.tutors))
	for _, t := range s.tutors {
		tutors = append(tutors, s.tutorView(t))
	}
	sort.Slice(tutors, func(i, j int) bool { return tutors[i].ID < tutors[j].ID })
	return ctx.JSON(http.StatusOK, tutors)
}

func (s *Store) handleTutorByUser(ctx echo.Context) error {
	userID, err := intParam(ctx, "userId")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid user ID")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	stu, ok := s.studentByUser(userID)
	if !ok {
		return ctx.String(http.StatusNotFound, "Tutor not found")
	}
	if t, ok := s.tutorByStudent(stu.ID); ok {
		return ctx.JSON(http.StatusOK, s.tutorView(t))
	}
	return ctx.String(http.StatusNotFound, "Tutor not found")
}

func (s *Store) handleApplyTutor(ctx echo.Context) error {
	studentID, err := intParam(ctx, "studentId")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid student ID")
	}
	var body struct {
		GWA float64 `json:"gwa"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.String(http.StatusBadRequest, "Malformed request")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[studentID]; !ok {
		return ctx.String(http.StatusNotFound, "Student not found")
	}
	if _, ok := s.tutorByStudent(studentID); ok {
		return ctx.String(http.StatusBadRequest, "Student has already applied as tutor")
	}
	t := tutor.Tutor{ID: s.nextPK(), StudentID: studentID, GWA: body.GWA, Status: core.StatusPending}
	s.tutors[t.ID] = t
	return ctx.JSON(http.StatusCreated, s.tutorView(t))
}

func (s *Store) handleApproveTutor(ctx echo.Context) error {
	return s.decideTutor(ctx, core.StatusApproved)
}

func (s *Store) handleRejectTutor(ctx echo.Context) error {
	return s.decideTutor(ctx, core.StatusRejected)
}

func (s *Store) decideTutor(ctx echo.Context, status core.Status) error {
	tutorID, err := intParam(ctx, "tutorId")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid tutor ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tutors[tutorID]
	if !ok {
		return ctx.String(http.StatusNotFound, "Tutor not found")
	}
	if t.Status != core.StatusPending {
		return ctx.String(http.StatusBadRequest, "Tutor application already decided")
	}
	t.Status = status
	s.tutors[tutorID] = t
	return ctx.JSON(http.StatusOK, s.tutorView(t))
}

// tutor subjects

func (s *Store) handleAllTutorSubjects(ctx echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]tutor.TutorSubject, 0, len(s.tutorSubs))
	for _, rec := range s.tutorSubs {
		out = append(out, s.tutorSubjectView(rec))
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *Store) handleTutorSubjects(ctx echo.Context) error {
	tutorID, err := intParam(ctx, "tutorId")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid tutor ID")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]tutor.TutorSubject, 0, len(s.tutorSubs))
	for _, rec := range s.tutorSubs {
		if rec.TutorID == tutorID {
			out = append(out, s.tutorSubjectView(rec))
		}
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *Store) handleAddTutorSubject(ctx echo.Context) error {
	tutorID, err := intParam(ctx, "tutorId")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid tutor ID")
	}
	var body struct {
		SubjectID int     `json:"subjectId"`
		Grade     float64 `json:"grade"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.String(http.StatusBadRequest, "Malformed request")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tutors[tutorID]
	if !ok {
		return ctx.String(http.StatusNotFound, "Tutor not found")
	}
	if t.Status != core.StatusApproved {
		return ctx.String(http.StatusBadRequest, "Tutor is not approved")
	}
	if _, ok := s.subjects[body.SubjectID]; !ok {
		return ctx.String(http.StatusNotFound, "Subject not found")
	}
	rec := tutorSubjectRec{ID: s.nextPK(), TutorID: tutorID, SubjectID: body.SubjectID, Grade: body.Grade}
	s.tutorSubs = append(s.tutorSubs, rec)
	return ctx.JSON(http.StatusCreated, s.tutorSubjectView(rec))
}

// sessions

func (s *Store) handleAllSessions(ctx echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ctx.JSON(http.StatusOK, s.sessionViews(func(session.Session) bool { return true }))
}

func (s *Store) handleSessionsByStudent(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid student ID")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ctx.JSON(http.StatusOK, s.sessionViews(func(sess session.Session) bool { return sess.StudentID == id }))
}

func (s *Store) handleSessionsByTutor(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid tutor ID")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ctx.JSON(http.StatusOK, s.sessionViews(func(sess session.Session) bool { return sess.TutorID == id }))
}

func (s *Store) sessionViews(keep func(session.Session) bool) []session.Session {
	out := make([]session.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if keep(sess) {
			out = append(out, s.sessionView(sess))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) handleApplySession(ctx echo.Context) error {
	tutorID, err1 := intParam(ctx, "tutorId")
	subjectID, err2 := intParam(ctx, "subjectId")
	studentID, err3 := intParam(ctx, "studentId")
	if err1 != nil || err2 != nil || err3 != nil {
		return ctx.String(http.StatusBadRequest, "Invalid ID")
	}
	var ns session.NewSession
	if err := ctx.Bind(&ns); err != nil {
		return ctx.String(http.StatusBadRequest, "Malformed request")
	}
	if ns.Date == "" || ns.Time == "" {
		return ctx.String(http.StatusBadRequest, "Session date and time are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tutors[tutorID]
	if !ok {
		return ctx.String(http.StatusNotFound, "Tutor not found")
	}
	if t.Status != core.StatusApproved {
		return ctx.String(http.StatusBadRequest, "Tutor is not approved")
	}
	sess := session.Session{
		ID:        s.nextPK(),
		TutorID:   tutorID,
		StudentID: studentID,
		SubjectID: subjectID,
		Date:      ns.Date,
		Time:      ns.Time,
		Status:    core.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[sess.ID] = sess
	return ctx.String(http.StatusCreated, "Session request sent to tutor!")
}

func (s *Store) handleUpdateSessionStatus(ctx echo.Context) error {
	sessionID, err := intParam(ctx, "sessionId")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid session ID")
	}
	var body struct {
		Status core.Status `json:"status"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.String(http.StatusBadRequest, "Malformed request")
	}
	if !body.Status.Terminal() {
		return ctx.String(http.StatusBadRequest, "Invalid status")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return ctx.String(http.StatusNotFound, "Session not found")
	}
	if sess.Status != core.StatusPending {
		return ctx.String(http.StatusBadRequest, "Session already decided")
	}
	sess.Status = body.Status
	s.sessions[sessionID] = sess
	return ctx.JSON(http.StatusOK, s.sessionView(sess))
}

// ratings

func (s *Store) handleAverageRatings(ctx echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sums := make(map[int]int)
	counts := make(map[int]int)
	order := make([]int, 0, len(s.ratings))
	for _, rec := range s.ratings {
		if _, seen := counts[rec.TutorID]; !seen {
			order = append(order, rec.TutorID)
		}
		sums[rec.TutorID] += rec.Rating
		counts[rec.TutorID]++
	}
	out := make([]rating.AverageRating, 0, len(order))
	for _, tutorID := range order {
		out = append(out, rating.AverageRating{
			TutorID: tutorID,
			Average: float64(sums[tutorID]) / float64(counts[tutorID]),
		})
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *Store) handleRateTutor(ctx echo.Context) error {
	studentID, err1 := intParam(ctx, "studentId")
	tutorID, err2 := intParam(ctx, "tutorId")
	if err1 != nil || err2 != nil {
		return ctx.String(http.StatusBadRequest, "Invalid ID")
	}
	var body struct {
		Rating int `json:"rating"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.String(http.StatusBadRequest, "Malformed request")
	}
	if body.Rating < 1 || body.Rating > 5 {
		return ctx.String(http.StatusBadRequest, "Rating must be between 1 and 5")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tutors[tutorID]; !ok {
		return ctx.String(http.StatusNotFound, "Tutor not found")
	}
	for i, rec := range s.ratings {
		if rec.StudentID == studentID && rec.TutorID == tutorID {
			s.ratings[i].Rating = body.Rating
			return ctx.String(http.StatusOK, "Thank you for rating your tutor!")
		}
	}
	s.ratings = append(s.ratings, RatingRec{StudentID: studentID, TutorID: tutorID, Rating: body.Rating})
	return ctx.String(http.StatusOK, "Thank you for rating your tutor!")
}

// messages

func (s *Store) handleGetMessages(ctx echo.Context) error {
	sessionID, err := intParam(ctx, "sessionId")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid session ID")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]messaging.Message, len(s.messages[sessionID]))
	copy(out, s.messages[sessionID])
	return ctx.JSON(http.StatusOK, out)
}

func (s *Store) handleSendMessage(ctx echo.Context) error {
	sessionID, err := intParam(ctx, "sessionId")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid session ID")
	}
	var out messaging.OutgoingMessage
	if err := ctx.Bind(&out); err != nil {
		return ctx.String(http.StatusBadRequest, "Malformed request")
	}
	if out.Message == "" {
		return ctx.String(http.StatusBadRequest, "Message cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := messaging.Message{
		ID:         s.nextPK(),
		SessionID:  sessionID,
		SenderRole: out.SenderRole,
		Message:    null.StringFrom(out.Message),
		SendAt:     out.SendAt,
	}
	s.messages[sessionID] = append(s.messages[sessionID], msg)
	return ctx.JSON(http.StatusCreated, msg)
}

func (s *Store) handleSendFile(ctx echo.Context) error {
	sessionID, err := intParam(ctx, "sessionId")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid session ID")
	}
	fh, err := ctx.FormFile("file")
	if err != nil {
		return ctx.String(http.StatusBadRequest, "No file provided")
	}
	senderRole := user.Role(ctx.FormValue("senderRole"))
	sendAt, err := time.Parse(time.RFC3339, ctx.FormValue("sendAt"))
	if err != nil {
		sendAt = time.Now().UTC()
	}
	filePath := "/uploads/" + fh.Filename

	s.mu.Lock()
	defer s.mu.Unlock()
	msg := messaging.Message{
		ID:         s.nextPK(),
		SessionID:  sessionID,
		SenderRole: senderRole,
		FileName:   null.StringFrom(fh.Filename),
		FilePath:   null.StringFrom(filePath),
		SendAt:     sendAt,
	}
	s.messages[sessionID] = append(s.messages[sessionID], msg)
	return ctx.JSON(http.StatusOK, messaging.FileResult{
		Message:  "File sent successfully",
		FilePath: filePath,
	})
}
