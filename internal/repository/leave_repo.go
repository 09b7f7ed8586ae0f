package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yashjd12/attendance-tracker/internal/model"
)

// LeaveRepository 请假数据访问接口
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.Leave) error
	GetByID(ctx context.Context, id int64) (*model.Leave, error)
	UpdateStatus(ctx context.Context, id int64, status, comment string) error
	ListByStudent(ctx context.Context, studentID int64) ([]model.Leave, error)
	ListPendingByFaculty(ctx context.Context, facultyID int64) ([]model.Leave, error)
}

// leaveRepo LeaveRepository 的 GORM 实现
type leaveRepo struct {
	db *gorm.DB
}

// NewLeaveRepo 创建 LeaveRepository 实例
func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db: db}
}

func (r *leaveRepo) Create(ctx context.Context, leave *model.Leave) error {
	return r.db.WithContext(ctx).
		Omit("Student", "Course").
		Create(leave).Error
}

func (r *leaveRepo) GetByID(ctx context.Context, id int64) (*model.Leave, error) {
	var leave model.Leave
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Course").
		Where("leave_id = ?", id).
		First(&leave).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepo) UpdateStatus(ctx context.Context, id int64, status, comment string) error {
	return r.db.WithContext(ctx).Model(&model.Leave{}).
		Where("leave_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"comment":    comment,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *leaveRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.Leave, error) {
	var leaves []model.Leave
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at DESC, leave_id DESC").
		Find(&leaves).Error
	return leaves, err
}

// ListPendingByFaculty 教师所授课程下的待审批请假
func (r *leaveRepo) ListPendingByFaculty(ctx context.Context, facultyID int64) ([]model.Leave, error) {
	var leaves []model.Leave
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Course").
		Joins("JOIN faculty_courses fc ON fc.course_id = leaves.course_id").
		Where("fc.faculty_id = ? AND leaves.status = ?", facultyID, model.LeaveStatusPending).
		Order("leaves.leave_start_date, leaves.leave_id").
		Find(&leaves).Error
	return leaves, err
}
