package repository

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yashjd12/attendance-tracker/internal/model"
)

// CourseRepository 课程及教师授课关系数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	Delete(ctx context.Context, id int64) error
	ListByFaculty(ctx context.Context, facultyID int64) ([]model.Course, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.Course, error)
	ListRostersByFaculty(ctx context.Context, facultyID int64) ([]model.CourseRoster, error)

	AssignFaculty(ctx context.Context, facultyID, courseID int64) error
	UnassignFaculty(ctx context.Context, facultyID, courseID int64) (int64, error)
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Delete 删除课程，选课/授课/考勤/请假由外键级联删除，通知的 course_id 置空
func (r *courseRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{}).Error
}

func (r *courseRepo) ListByFaculty(ctx context.Context, facultyID int64) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN faculty_courses fc ON fc.course_id = courses.course_id").
		Where("fc.faculty_id = ?", facultyID).
		Order("courses.course_name, courses.course_id").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN student_courses sc ON sc.course_id = courses.course_id").
		Where("sc.student_id = ?", studentID).
		Order("courses.course_name, courses.course_id").
		Find(&courses).Error
	return courses, err
}

// rosterRow 课程名册聚合行，学生 ID 与姓名按相同顺序聚合
type rosterRow struct {
	CourseID     int64          `gorm:"column:course_id"`
	CourseName   string         `gorm:"column:course_name"`
	StudentIDs   pq.Int64Array  `gorm:"column:student_ids"`
	StudentNames pq.StringArray `gorm:"column:student_names"`
}

// ListRostersByFaculty 教师所授课程及各课程的选课学生，无学生的课程返回空列表
func (r *courseRepo) ListRostersByFaculty(ctx context.Context, facultyID int64) ([]model.CourseRoster, error) {
	var rows []rosterRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.course_id, c.course_name,
		       COALESCE(ARRAY_AGG(u.user_id ORDER BY u.name, u.user_id) FILTER (WHERE u.user_id IS NOT NULL), '{}') AS student_ids,
		       COALESCE(ARRAY_AGG(u.name ORDER BY u.name, u.user_id) FILTER (WHERE u.user_id IS NOT NULL), '{}') AS student_names
		FROM faculty_courses fc
		JOIN courses c ON c.course_id = fc.course_id
		LEFT JOIN student_courses sc ON sc.course_id = c.course_id
		LEFT JOIN users u ON u.user_id = sc.student_id AND u.role = ?
		WHERE fc.faculty_id = ?
		GROUP BY c.course_id, c.course_name
		ORDER BY c.course_name, c.course_id`, model.RoleStudent, facultyID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	rosters := make([]model.CourseRoster, 0, len(rows))
	for _, row := range rows {
		students := make([]model.CourseMember, 0, len(row.StudentIDs))
		for i, id := range row.StudentIDs {
			name := ""
			if i < len(row.StudentNames) {
				name = row.StudentNames[i]
			}
			students = append(students, model.CourseMember{UserID: id, Name: name})
		}
		rosters = append(rosters, model.CourseRoster{
			CourseID:   row.CourseID,
			CourseName: row.CourseName,
			Students:   students,
		})
	}
	return rosters, nil
}

// ────────────────────── 授课关系 ──────────────────────

// AssignFaculty 重复分配由主键冲突返回 23505
func (r *courseRepo) AssignFaculty(ctx context.Context, facultyID, courseID int64) error {
	return r.db.WithContext(ctx).Create(&model.FacultyCourse{
		FacultyID: facultyID,
		CourseID:  courseID,
	}).Error
}

// UnassignFaculty 返回删除行数
func (r *courseRepo) UnassignFaculty(ctx context.Context, facultyID, courseID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("faculty_id = ? AND course_id = ?", facultyID, courseID).
		Delete(&model.FacultyCourse{})
	return result.RowsAffected, result.Error
}
