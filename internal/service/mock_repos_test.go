package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yashjd12/attendance-tracker/internal/model"
	"github.com/yashjd12/attendance-tracker/internal/repository"
)

// uniqueViolation / fkViolation 模拟 PostgreSQL 约束错误
var (
	uniqueViolation = &pgconn.PgError{Code: "23505"}
	fkViolation     = &pgconn.PgError{Code: "23503"}
)

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return uniqueViolation
		}
	}
	if user.UserID == 0 {
		user.UserID = m.nextID
		m.nextID++
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// add 直接写入测试用户
func (m *mockUserRepo) add(id int64, name, role string) *model.User {
	u := &model.User{UserID: id, Name: name, Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@test.local", Role: role}
	m.users[id] = u
	if id >= m.nextID {
		m.nextID = id + 1
	}
	return u
}

// ── Mock CourseRepository ──

type linkKey struct{ userID, courseID int64 }

type mockCourseRepo struct {
	courses   map[int64]*model.Course
	faculty   map[linkKey]bool
	enroll    *mockEnrollmentRepo
	users     *mockUserRepo
	nextID    int64
	assignErr error
}

func newMockCourseRepo(users *mockUserRepo, enroll *mockEnrollmentRepo) *mockCourseRepo {
	return &mockCourseRepo{
		courses: make(map[int64]*model.Course),
		faculty: make(map[linkKey]bool),
		enroll:  enroll,
		users:   users,
		nextID:  1,
	}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == 0 {
		course.CourseID = m.nextID
		m.nextID++
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Delete(_ context.Context, id int64) error {
	delete(m.courses, id)
	for k := range m.faculty {
		if k.courseID == id {
			delete(m.faculty, k)
		}
	}
	for k := range m.enroll.links {
		if k.courseID == id {
			delete(m.enroll.links, k)
		}
	}
	return nil
}

func (m *mockCourseRepo) sorted(filter func(c *model.Course) bool) []model.Course {
	var result []model.Course
	for _, c := range m.courses {
		if filter(c) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseName < result[j].CourseName })
	return result
}

func (m *mockCourseRepo) ListByFaculty(_ context.Context, facultyID int64) ([]model.Course, error) {
	return m.sorted(func(c *model.Course) bool { return m.faculty[linkKey{facultyID, c.CourseID}] }), nil
}

func (m *mockCourseRepo) ListByStudent(_ context.Context, studentID int64) ([]model.Course, error) {
	return m.sorted(func(c *model.Course) bool { return m.enroll.links[linkKey{studentID, c.CourseID}] }), nil
}

func (m *mockCourseRepo) ListRostersByFaculty(ctx context.Context, facultyID int64) ([]model.CourseRoster, error) {
	courses, _ := m.ListByFaculty(ctx, facultyID)
	var result []model.CourseRoster
	for _, c := range courses {
		enrollments, _ := m.enroll.List(ctx, repository.EnrollmentFilter{CourseID: c.CourseID})
		members := make([]model.CourseMember, 0, len(enrollments))
		for _, e := range enrollments {
			members = append(members, model.CourseMember{UserID: e.StudentID, Name: e.StudentName})
		}
		result = append(result, model.CourseRoster{CourseID: c.CourseID, CourseName: c.CourseName, Students: members})
	}
	return result, nil
}

func (m *mockCourseRepo) AssignFaculty(_ context.Context, facultyID, courseID int64) error {
	if m.assignErr != nil {
		return m.assignErr
	}
	k := linkKey{facultyID, courseID}
	if m.faculty[k] {
		return uniqueViolation
	}
	m.faculty[k] = true
	return nil
}

func (m *mockCourseRepo) UnassignFaculty(_ context.Context, facultyID, courseID int64) (int64, error) {
	k := linkKey{facultyID, courseID}
	if !m.faculty[k] {
		return 0, nil
	}
	delete(m.faculty, k)
	return 1, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	links map[linkKey]bool // key: (student_id, course_id)
	users *mockUserRepo
}

func newMockEnrollmentRepo(users *mockUserRepo) *mockEnrollmentRepo {
	return &mockEnrollmentRepo{links: make(map[linkKey]bool), users: users}
}

func (m *mockEnrollmentRepo) Enroll(_ context.Context, studentID, courseID int64) error {
	k := linkKey{studentID, courseID}
	if m.links[k] {
		return uniqueViolation
	}
	m.links[k] = true
	return nil
}

func (m *mockEnrollmentRepo) Unenroll(_ context.Context, studentID, courseID int64) (int64, error) {
	k := linkKey{studentID, courseID}
	if !m.links[k] {
		return 0, nil
	}
	delete(m.links, k)
	return 1, nil
}

func (m *mockEnrollmentRepo) IsEnrolled(_ context.Context, studentID, courseID int64) (bool, error) {
	return m.links[linkKey{studentID, courseID}], nil
}

func (m *mockEnrollmentRepo) List(_ context.Context, filter repository.EnrollmentFilter) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for k := range m.links {
		u, ok := m.users.users[k.userID]
		if !ok || u.Role != model.RoleStudent {
			continue
		}
		if filter.CourseID > 0 && k.courseID != filter.CourseID {
			continue
		}
		if filter.StudentID > 0 && k.userID != filter.StudentID {
			continue
		}
		if filter.SearchName != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.SearchName)) {
			continue
		}
		result = append(result, model.Enrollment{StudentID: k.userID, StudentName: u.Name, CourseID: k.courseID})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StudentName != result[j].StudentName {
			return result[i].StudentName < result[j].StudentName
		}
		return result[i].CourseID < result[j].CourseID
	})
	return result, nil
}

// ── Mock AttendanceRepository ──

type attKey struct {
	studentID, courseID int64
	day                 string
}

type mockAttendanceRepo struct {
	rows      map[attKey]bool
	enroll    *mockEnrollmentRepo
	upsertErr error
	deleteErr error
	upserts   int
}

func newMockAttendanceRepo(enroll *mockEnrollmentRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{rows: make(map[attKey]bool), enroll: enroll}
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, courseID int64, date time.Time, marks []model.AttendanceMark) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	for _, mk := range marks {
		m.rows[attKey{mk.StudentID, courseID, dayKey(date)}] = mk.IsPresent
	}
	return nil
}

func (m *mockAttendanceRepo) DeleteExcept(_ context.Context, courseID int64, date time.Time, keep []int64) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	keepSet := make(map[int64]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}
	var n int64
	for k := range m.rows {
		if k.courseID == courseID && k.day == dayKey(date) && !keepSet[k.studentID] {
			delete(m.rows, k)
			n++
		}
	}
	return n, nil
}

func (m *mockAttendanceRepo) ListRoster(ctx context.Context, courseID int64, date time.Time) ([]model.RosterEntry, error) {
	enrollments, _ := m.enroll.List(ctx, repository.EnrollmentFilter{CourseID: courseID})
	var result []model.RosterEntry
	for _, e := range enrollments {
		present, marked := m.rows[attKey{e.StudentID, courseID, dayKey(date)}]
		result = append(result, model.RosterEntry{StudentID: e.StudentID, Name: e.StudentName, IsPresent: present, Marked: marked})
	}
	return result, nil
}

func (m *mockAttendanceRepo) GetByStudentDate(_ context.Context, studentID, courseID int64, date time.Time) (*model.Attendance, error) {
	present, ok := m.rows[attKey{studentID, courseID, dayKey(date)}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Attendance{StudentID: studentID, CourseID: courseID, AttendanceDate: datatypes.Date(date), IsPresent: present}, nil
}

func (m *mockAttendanceRepo) CountStats(_ context.Context, studentID, courseID int64, from, to time.Time) (model.AttendanceStats, error) {
	var st model.AttendanceStats
	lo, hi := dayKey(from), dayKey(to)
	for k, present := range m.rows {
		if k.studentID != studentID || k.courseID != courseID || k.day < lo || k.day >= hi {
			continue
		}
		st.Total++
		if present {
			st.Present++
		}
	}
	return st, nil
}

func (m *mockAttendanceRepo) ListByCourseRange(_ context.Context, courseID int64, from, to time.Time) ([]model.Attendance, error) {
	lo, hi := dayKey(from), dayKey(to)
	var result []model.Attendance
	for k, present := range m.rows {
		if k.courseID != courseID || k.day < lo || k.day >= hi {
			continue
		}
		d, _ := time.Parse("2006-01-02", k.day)
		result = append(result, model.Attendance{StudentID: k.studentID, CourseID: courseID, AttendanceDate: datatypes.Date(d), IsPresent: present})
	}
	return result, nil
}

// mark 直接写入一条考勤
func (m *mockAttendanceRepo) mark(studentID, courseID int64, day string, present bool) {
	m.rows[attKey{studentID, courseID, day}] = present
}

// ── Mock LeaveRepository ──

type mockLeaveRepo struct {
	leaves    map[int64]*model.Leave
	nextID    int64
	updateErr error
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{leaves: make(map[int64]*model.Leave), nextID: 1}
}

func (m *mockLeaveRepo) Create(_ context.Context, leave *model.Leave) error {
	if leave.LeaveID == 0 {
		leave.LeaveID = m.nextID
		m.nextID++
	}
	cp := *leave
	m.leaves[leave.LeaveID] = &cp
	return nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, id int64) (*model.Leave, error) {
	if l, ok := m.leaves[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) UpdateStatus(_ context.Context, id int64, status, comment string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if l, ok := m.leaves[id]; ok {
		l.Status = status
		l.Comment = comment
	}
	return nil
}

func (m *mockLeaveRepo) ListByStudent(_ context.Context, studentID int64) ([]model.Leave, error) {
	var result []model.Leave
	for _, l := range m.leaves {
		if l.StudentID == studentID {
			result = append(result, *l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LeaveID > result[j].LeaveID })
	return result, nil
}

// ListPendingByFaculty mock 不区分教师，返回全部待审批
func (m *mockLeaveRepo) ListPendingByFaculty(_ context.Context, _ int64) ([]model.Leave, error) {
	var result []model.Leave
	for _, l := range m.leaves {
		if l.Status == model.LeaveStatusPending {
			result = append(result, *l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LeaveID < result[j].LeaveID })
	return result, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	list      []*model.Notification
	nextID    int64
	createErr error
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{nextID: 1}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	n.NotificationID = m.nextID
	m.nextID++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC).Add(time.Duration(n.NotificationID) * time.Minute)
	}
	m.list = append(m.list, n)
	return nil
}

func (m *mockNotificationRepo) ListByStudent(_ context.Context, studentID int64) ([]model.Notification, error) {
	var result []model.Notification
	for i := len(m.list) - 1; i >= 0; i-- {
		if m.list[i].StudentID == studentID {
			result = append(result, *m.list[i])
		}
	}
	return result, nil
}

// ── 测试夹具 ──

type mockStore struct {
	users         *mockUserRepo
	courses       *mockCourseRepo
	enrollments   *mockEnrollmentRepo
	attendance    *mockAttendanceRepo
	leaves        *mockLeaveRepo
	notifications *mockNotificationRepo
}

func newMockStore() *mockStore {
	users := newMockUserRepo()
	enrollments := newMockEnrollmentRepo(users)
	return &mockStore{
		users:         users,
		courses:       newMockCourseRepo(users, enrollments),
		enrollments:   enrollments,
		attendance:    newMockAttendanceRepo(enrollments),
		leaves:        newMockLeaveRepo(),
		notifications: newMockNotificationRepo(),
	}
}

func (s *mockStore) repo() *repository.Repository {
	return &repository.Repository{
		User:         s.users,
		Course:       s.courses,
		Enrollment:   s.enrollments,
		Attendance:   s.attendance,
		Leave:        s.leaves,
		Notification: s.notifications,
	}
}

// course 直接写入测试课程
func (s *mockStore) course(id int64, name string) *model.Course {
	c := &model.Course{CourseID: id, CourseName: name}
	s.courses.courses[id] = c
	if id >= s.courses.nextID {
		s.courses.nextID = id + 1
	}
	return c
}

func testLogger() *zap.Logger { return zap.NewNop() }
