package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yashjd12/attendance-tracker/internal/model"
)

// AttendanceRepository 考勤数据访问接口
// 区间参数均为左闭右开 [from, to)
type AttendanceRepository interface {
	Upsert(ctx context.Context, courseID int64, date time.Time, marks []model.AttendanceMark) error
	DeleteExcept(ctx context.Context, courseID int64, date time.Time, keepStudentIDs []int64) (int64, error)
	ListRoster(ctx context.Context, courseID int64, date time.Time) ([]model.RosterEntry, error)
	GetByStudentDate(ctx context.Context, studentID, courseID int64, date time.Time) (*model.Attendance, error)
	CountStats(ctx context.Context, studentID, courseID int64, from, to time.Time) (model.AttendanceStats, error)
	ListByCourseRange(ctx context.Context, courseID int64, from, to time.Time) ([]model.Attendance, error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

// Upsert 按 (student_id, course_id, attendance_date) 插入或覆盖 is_present
func (r *attendanceRepo) Upsert(ctx context.Context, courseID int64, date time.Time, marks []model.AttendanceMark) error {
	if len(marks) == 0 {
		return nil
	}
	d := datatypes.Date(time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC))
	rows := make([]model.Attendance, 0, len(marks))
	for _, m := range marks {
		rows = append(rows, model.Attendance{
			StudentID:      m.StudentID,
			CourseID:       courseID,
			AttendanceDate: d,
			IsPresent:      m.IsPresent,
		})
	}

	return r.db.WithContext(ctx).
		Select("StudentID", "CourseID", "AttendanceDate", "IsPresent", "CreatedAt", "UpdatedAt").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_id"},
				{Name: "course_id"},
				{Name: "attendance_date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"is_present", "updated_at"}),
		}).
		Create(&rows).Error
}

// DeleteExcept 删除该课程该日不在 keepStudentIDs 中的考勤行，keepStudentIDs 为空时全部删除
func (r *attendanceRepo) DeleteExcept(ctx context.Context, courseID int64, date time.Time, keepStudentIDs []int64) (int64, error) {
	query := r.db.WithContext(ctx).
		Where("course_id = ? AND attendance_date = ?", courseID, dateArg(date))
	if len(keepStudentIDs) > 0 {
		query = query.Where("student_id NOT IN ?", keepStudentIDs)
	}
	result := query.Delete(&model.Attendance{})
	return result.RowsAffected, result.Error
}

// ListRoster 课程选课学生及其当日出勤，未标记的学生 Marked=false
func (r *attendanceRepo) ListRoster(ctx context.Context, courseID int64, date time.Time) ([]model.RosterEntry, error) {
	var entries []model.RosterEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.user_id AS student_id, u.name,
		       COALESCE(a.is_present, FALSE) AS is_present,
		       a.attendance_id IS NOT NULL AS marked
		FROM student_courses sc
		JOIN users u ON u.user_id = sc.student_id
		LEFT JOIN attendance a
		       ON a.student_id = sc.student_id
		      AND a.course_id = sc.course_id
		      AND a.attendance_date = ?
		WHERE sc.course_id = ? AND u.role = ?
		ORDER BY u.name, u.user_id`, dateArg(date), courseID, model.RoleStudent).
		Scan(&entries).Error
	return entries, err
}

func (r *attendanceRepo) GetByStudentDate(ctx context.Context, studentID, courseID int64, date time.Time) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND attendance_date = ?", studentID, courseID, dateArg(date)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepo) CountStats(ctx context.Context, studentID, courseID int64, from, to time.Time) (model.AttendanceStats, error) {
	var stats model.AttendanceStats
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE is_present) AS present").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Where("attendance_date >= ? AND attendance_date < ?", dateArg(from), dateArg(to)).
		Scan(&stats).Error
	return stats, err
}

// ListByCourseRange 课程区间内全部考勤行（导出用）
func (r *attendanceRepo) ListByCourseRange(ctx context.Context, courseID int64, from, to time.Time) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Where("attendance_date >= ? AND attendance_date < ?", dateArg(from), dateArg(to)).
		Order("attendance_date, student_id").
		Find(&list).Error
	return list, err
}
