package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yashjd12/attendance-tracker/internal/model"
)

// EnrollmentFilter 选课记录查询条件，零值表示不过滤
type EnrollmentFilter struct {
	CourseID   int64
	StudentID  int64
	SearchName string
}

// EnrollmentRepository 学生选课关系数据访问接口
type EnrollmentRepository interface {
	Enroll(ctx context.Context, studentID, courseID int64) error
	Unenroll(ctx context.Context, studentID, courseID int64) (int64, error)
	IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error)
	List(ctx context.Context, filter EnrollmentFilter) ([]model.Enrollment, error)
}

// enrollmentRepo EnrollmentRepository 的 GORM 实现
type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

// Enroll 重复选课由主键冲突返回 23505
func (r *enrollmentRepo) Enroll(ctx context.Context, studentID, courseID int64) error {
	return r.db.WithContext(ctx).Create(&model.StudentCourse{
		StudentID: studentID,
		CourseID:  courseID,
	}).Error
}

// Unenroll 返回删除行数
func (r *enrollmentRepo) Unenroll(ctx context.Context, studentID, courseID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Delete(&model.StudentCourse{})
	return result.RowsAffected, result.Error
}

func (r *enrollmentRepo) IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.StudentCourse{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

// List 按姓名排序返回选课记录（仅学生角色）
func (r *enrollmentRepo) List(ctx context.Context, filter EnrollmentFilter) ([]model.Enrollment, error) {
	query := r.db.WithContext(ctx).
		Table("student_courses sc").
		Select("sc.student_id, u.name AS student_name, sc.course_id").
		Joins("JOIN users u ON u.user_id = sc.student_id").
		Where("u.role = ?", model.RoleStudent)

	if filter.CourseID > 0 {
		query = query.Where("sc.course_id = ?", filter.CourseID)
	}
	if filter.StudentID > 0 {
		query = query.Where("sc.student_id = ?", filter.StudentID)
	}
	if filter.SearchName != "" {
		query = query.Where("u.name ILIKE ?", likePattern(filter.SearchName))
	}

	var list []model.Enrollment
	err := query.Order("u.name, sc.student_id, sc.course_id").Scan(&list).Error
	return list, err
}
