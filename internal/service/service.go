package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yashjd12/attendance-tracker/config"
	"github.com/yashjd12/attendance-tracker/internal/repository"
	"github.com/yashjd12/attendance-tracker/pkg/jwt"
)

// TokenBlacklist Token 黑名单（Redis 实现见 pkg/redis），为空时登出仅由客户端丢弃 Token
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Course       CourseService
	Attendance   AttendanceService
	Leave        LeaveService
	Notification NotificationService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, blacklist, logger),
		User:         NewUserService(repo, logger),
		Course:       NewCourseService(repo, logger),
		Attendance:   NewAttendanceService(&cfg.Attendance, repo, logger),
		Leave:        NewLeaveService(repo, logger),
		Notification: NewNotificationService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
