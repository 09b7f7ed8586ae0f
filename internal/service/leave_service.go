package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yashjd12/attendance-tracker/config"
	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/internal/model"
	"github.com/yashjd12/attendance-tracker/internal/repository"
)

// ── 请假模块业务错误 ──

var (
	ErrLeaveNotFound      = errors.New("请假记录不存在")
	ErrInvalidLeaveStatus = errors.New("请假状态应为 Pending、Approved 或 Rejected")
	ErrInvalidLeaveRange  = errors.New("结束日期不能早于开始日期")
	ErrNotEnrolled        = errors.New("学生未选该课程")
)

// LeaveService 请假业务接口
type LeaveService interface {
	Apply(ctx context.Context, req *dto.CreateLeaveRequest) (*dto.LeaveResponse, error)
	ListByStudent(ctx context.Context, studentID int64) ([]dto.LeaveResponse, error)
	ListPendingForFaculty(ctx context.Context, facultyID int64) ([]dto.LeaveResponse, error)
	// Update 审批请假，并在同一事务内给学生发送 Leave 通知
	Update(ctx context.Context, leaveID int64, req *dto.UpdateLeaveRequest) (*dto.LeaveResponse, error)
}

type leaveService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLeaveService 创建 LeaveService 实例
func NewLeaveService(repo *repository.Repository, logger *zap.Logger) LeaveService {
	return &leaveService{repo: repo, logger: logger}
}

// NormalizeLeaveStatus 大小写不敏感地规范化请假状态，非法值返回 false
func NormalizeLeaveStatus(status string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pending":
		return model.LeaveStatusPending, true
	case "approved":
		return model.LeaveStatusApproved, true
	case "rejected":
		return model.LeaveStatusRejected, true
	}
	return "", false
}

// ────────────────────── Apply ──────────────────────

func (s *leaveService) Apply(ctx context.Context, req *dto.CreateLeaveRequest) (*dto.LeaveResponse, error) {
	start, err := time.Parse(config.DateLayout, req.LeaveStartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse(config.DateLayout, req.LeaveEndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if end.Before(start) {
		return nil, ErrInvalidLeaveRange
	}

	course, err := loadCourse(ctx, s.repo, s.logger, req.CourseID)
	if err != nil {
		return nil, err
	}
	student, err := loadUserWithRole(ctx, s.repo, s.logger, req.StudentID, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.repo.Enrollment.IsEnrolled(ctx, req.StudentID, req.CourseID)
	if err != nil {
		s.logger.Error("查询选课关系失败", zap.Error(err))
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	leave := &model.Leave{
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		LeaveStartDate: datatypes.Date(start),
		LeaveEndDate:   datatypes.Date(end),
		Reason:         strings.TrimSpace(req.Reason),
		Status:         model.LeaveStatusPending,
	}
	if err := s.repo.Leave.Create(ctx, leave); err != nil {
		s.logger.Error("创建请假失败", zap.Error(err))
		return nil, err
	}
	leave.Student = student
	leave.Course = course

	resp := toLeaveResponse(leave)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *leaveService) ListByStudent(ctx context.Context, studentID int64) ([]dto.LeaveResponse, error) {
	leaves, err := s.repo.Leave.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生请假失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return toLeaveResponses(leaves), nil
}

func (s *leaveService) ListPendingForFaculty(ctx context.Context, facultyID int64) ([]dto.LeaveResponse, error) {
	leaves, err := s.repo.Leave.ListPendingByFaculty(ctx, facultyID)
	if err != nil {
		s.logger.Error("查询待审批请假失败", zap.Int64("faculty_id", facultyID), zap.Error(err))
		return nil, err
	}
	return toLeaveResponses(leaves), nil
}

// ────────────────────── Update ──────────────────────

func (s *leaveService) Update(ctx context.Context, leaveID int64, req *dto.UpdateLeaveRequest) (*dto.LeaveResponse, error) {
	status, ok := NormalizeLeaveStatus(req.Status)
	if !ok {
		return nil, ErrInvalidLeaveStatus
	}

	leave, err := s.repo.Leave.GetByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		s.logger.Error("查询请假失败", zap.Int64("leave_id", leaveID), zap.Error(err))
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Leave.UpdateStatus(ctx, leaveID, status, req.Comment); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新请假状态失败", zap.Int64("leave_id", leaveID), zap.Error(err))
		return nil, err
	}

	if err := txRepo.Notification.Create(ctx, newLeaveNotification(leave, status, req.Comment)); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建请假通知失败", zap.Int64("leave_id", leaveID), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("请假已审批", zap.Int64("leave_id", leaveID), zap.String("status", status))

	leave.Status = status
	leave.Comment = req.Comment
	resp := toLeaveResponse(leave)
	return &resp, nil
}

// ── 转换 ──

func toLeaveResponse(l *model.Leave) dto.LeaveResponse {
	resp := dto.LeaveResponse{
		ID:             l.LeaveID,
		StudentID:      l.StudentID,
		CourseID:       l.CourseID,
		LeaveStartDate: formatDate(l.LeaveStartDate),
		LeaveEndDate:   formatDate(l.LeaveEndDate),
		Reason:         l.Reason,
		Status:         l.Status,
		Comment:        l.Comment,
	}
	if l.Student != nil {
		resp.StudentName = l.Student.Name
	}
	if l.Course != nil {
		resp.CourseName = l.Course.CourseName
	}
	return resp
}

func toLeaveResponses(leaves []model.Leave) []dto.LeaveResponse {
	result := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		result = append(result, toLeaveResponse(&leaves[i]))
	}
	return result
}
