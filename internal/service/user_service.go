package service

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/internal/model"
	"github.com/yashjd12/attendance-tracker/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrNotStudent = errors.New("该用户不是学生")
	ErrNotFaculty = errors.New("该用户不是教师")
)

// UserService 用户业务接口
type UserService interface {
	// GetProfile 个人资料，入学年份取自注册时间
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.ProfileResponse{
		ID:             user.UserID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		EnrollmentYear: strconv.Itoa(user.CreatedAt.Year()),
	}, nil
}

// loadUserWithRole 查询用户并校验角色，用于选课、授课、请假等需要特定角色的操作
func loadUserWithRole(ctx context.Context, repo *repository.Repository, logger *zap.Logger, userID int64, role string) (*model.User, error) {
	user, err := repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("查询用户失败", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	if user.Role != role {
		if role == model.RoleFaculty {
			return nil, ErrNotFaculty
		}
		return nil, ErrNotStudent
	}
	return user, nil
}

// loadCourse 查询课程，不存在时返回 ErrCourseNotFound
func loadCourse(ctx context.Context, repo *repository.Repository, logger *zap.Logger, courseID int64) (*model.Course, error) {
	course, err := repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		logger.Error("查询课程失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, err
	}
	return course, nil
}
