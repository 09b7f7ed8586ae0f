package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yashjd12/attendance-tracker/internal/model"
)

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByStudent(ctx context.Context, studentID int64) ([]model.Notification, error)
}

// notificationRepo NotificationRepository 的 GORM 实现
type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).
		Omit("Course").
		Create(n).Error
}

// ListByStudent 按创建时间倒序，关联课程已删除时 Course 为空
func (r *notificationRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("created_at DESC, notification_id DESC").
		Find(&list).Error
	return list, err
}
