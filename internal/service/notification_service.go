package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/internal/repository"
	pkgerrors "github.com/yashjd12/attendance-tracker/pkg/errors"
)

// NotificationService 通知业务接口
type NotificationService interface {
	SendAlert(ctx context.Context, req *dto.SendAlertRequest) (*dto.SendAlertResponse, error)
	// List 学生的通知，按创建时间倒序
	List(ctx context.Context, studentID int64) ([]dto.NotificationResponse, error)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) SendAlert(ctx context.Context, req *dto.SendAlertRequest) (*dto.SendAlertResponse, error) {
	course, err := loadCourse(ctx, s.repo, s.logger, req.CourseID)
	if err != nil {
		return nil, err
	}

	n := newAlertNotification(req.StudentID, course, req.MonthlyAttendance, req.SelectedMonth)
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("创建预警通知失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("预警通知已发送",
		zap.Int64("student_id", req.StudentID),
		zap.Int64("course_id", req.CourseID),
		zap.Float64("monthly_attendance", req.MonthlyAttendance),
	)
	return &dto.SendAlertResponse{NotificationID: n.NotificationID}, nil
}

func (s *notificationService) List(ctx context.Context, studentID int64) ([]dto.NotificationResponse, error) {
	list, err := s.repo.Notification.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询通知失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		result = append(result, decodeNotification(&list[i]))
	}
	return result, nil
}
