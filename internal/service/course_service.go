package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/internal/model"
	"github.com/yashjd12/attendance-tracker/internal/repository"
	pkgerrors "github.com/yashjd12/attendance-tracker/pkg/errors"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound  = errors.New("课程不存在")
	ErrAlreadyEnrolled = errors.New("学生已选该课程")
	ErrAlreadyAssigned = errors.New("教师已分配该课程")
)

// CourseService 课程与选课业务接口
type CourseService interface {
	ListFacultyRosters(ctx context.Context, facultyID int64) ([]dto.CourseRosterResponse, error)
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, courseID int64) error

	EnrollStudent(ctx context.Context, courseID, studentID int64) error
	UnenrollStudent(ctx context.Context, courseID, studentID int64) error

	AssignFaculty(ctx context.Context, req *dto.FacultyCourseRequest) error
	UnassignFaculty(ctx context.Context, req *dto.FacultyCourseRequest) error

	ListFacultyOptions(ctx context.Context, facultyID int64) ([]dto.CourseOption, error)
	ListStudentCourses(ctx context.Context, studentID int64) ([]dto.CourseResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── 查询 ──────────────────────

func (s *courseService) ListFacultyRosters(ctx context.Context, facultyID int64) ([]dto.CourseRosterResponse, error) {
	rosters, err := s.repo.Course.ListRostersByFaculty(ctx, facultyID)
	if err != nil {
		s.logger.Error("查询教师课程名册失败", zap.Int64("faculty_id", facultyID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseRosterResponse, 0, len(rosters))
	for _, r := range rosters {
		students := make([]dto.CourseStudentResponse, 0, len(r.Students))
		for _, m := range r.Students {
			students = append(students, dto.CourseStudentResponse{ID: m.UserID, Name: m.Name})
		}
		result = append(result, dto.CourseRosterResponse{
			ID:       r.CourseID,
			Name:     r.CourseName,
			Students: students,
		})
	}
	return result, nil
}

func (s *courseService) ListFacultyOptions(ctx context.Context, facultyID int64) ([]dto.CourseOption, error) {
	courses, err := s.repo.Course.ListByFaculty(ctx, facultyID)
	if err != nil {
		s.logger.Error("查询教师课程失败", zap.Int64("faculty_id", facultyID), zap.Error(err))
		return nil, err
	}

	options := make([]dto.CourseOption, 0, len(courses))
	for _, c := range courses {
		options = append(options, dto.CourseOption{Value: c.CourseID, Label: c.CourseName})
	}
	return options, nil
}

func (s *courseService) ListStudentCourses(ctx context.Context, studentID int64) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生课程失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		result = append(result, dto.CourseResponse{ID: c.CourseID, Name: c.CourseName})
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if req.FacultyID != nil {
		if _, err := loadUserWithRole(ctx, s.repo, s.logger, *req.FacultyID, model.RoleFaculty); err != nil {
			return nil, err
		}
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

	course := &model.Course{CourseName: req.CourseName}
	if err := txRepo.Course.Create(ctx, course); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	if req.FacultyID != nil {
		if err := txRepo.Course.AssignFaculty(ctx, *req.FacultyID, course.CourseID); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("分配课程教师失败", zap.Error(err))
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return &dto.CourseResponse{ID: course.CourseID, Name: course.CourseName}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, courseID int64) error {
	if _, err := loadCourse(ctx, s.repo, s.logger, courseID); err != nil {
		return err
	}
	if err := s.repo.Course.Delete(ctx, courseID); err != nil {
		s.logger.Error("删除课程失败", zap.Int64("course_id", courseID), zap.Error(err))
		return err
	}
	s.logger.Info("课程已删除", zap.Int64("course_id", courseID))
	return nil
}

// ────────────────────── 选课 ──────────────────────

func (s *courseService) EnrollStudent(ctx context.Context, courseID, studentID int64) error {
	if _, err := loadCourse(ctx, s.repo, s.logger, courseID); err != nil {
		return err
	}
	if _, err := loadUserWithRole(ctx, s.repo, s.logger, studentID, model.RoleStudent); err != nil {
		return err
	}

	if err := s.repo.Enrollment.Enroll(ctx, studentID, courseID); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return ErrAlreadyEnrolled
		}
		s.logger.Error("学生选课失败", zap.Error(err))
		return err
	}
	return nil
}

// UnenrollStudent 幂等，记录不存在时同样成功
func (s *courseService) UnenrollStudent(ctx context.Context, courseID, studentID int64) error {
	if _, err := s.repo.Enrollment.Unenroll(ctx, studentID, courseID); err != nil {
		s.logger.Error("学生退课失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 授课 ──────────────────────

func (s *courseService) AssignFaculty(ctx context.Context, req *dto.FacultyCourseRequest) error {
	if _, err := loadCourse(ctx, s.repo, s.logger, req.CourseID); err != nil {
		return err
	}
	if _, err := loadUserWithRole(ctx, s.repo, s.logger, req.FacultyID, model.RoleFaculty); err != nil {
		return err
	}

	if err := s.repo.Course.AssignFaculty(ctx, req.FacultyID, req.CourseID); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return ErrAlreadyAssigned
		}
		s.logger.Error("分配课程教师失败", zap.Error(err))
		return err
	}
	return nil
}

// UnassignFaculty 幂等
func (s *courseService) UnassignFaculty(ctx context.Context, req *dto.FacultyCourseRequest) error {
	if _, err := s.repo.Course.UnassignFaculty(ctx, req.FacultyID, req.CourseID); err != nil {
		s.logger.Error("取消课程教师失败", zap.Error(err))
		return err
	}
	return nil
}
