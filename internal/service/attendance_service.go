package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yashjd12/attendance-tracker/config"
	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/internal/model"
	"github.com/yashjd12/attendance-tracker/internal/repository"
	pkgerrors "github.com/yashjd12/attendance-tracker/pkg/errors"
)

// ── 考勤模块业务错误 ──

var (
	ErrInvalidDate    = errors.New("日期格式应为 YYYY-MM-DD")
	ErrInvalidMonth   = errors.New("月份格式应为 YYYY-MM")
	ErrUnknownStudent = errors.New("考勤中包含不存在的学生")
	ErrAttendanceSave = errors.New("保存考勤失败")
)

// 单日出勤状态
const (
	StatusPresent   = "Present"
	StatusAbsent    = "Absent"
	StatusNotMarked = "Not marked"
)

// monthLayout 月份格式（YYYY-MM）
const monthLayout = "2006-01"

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// Save 以输入列表整体替换某课程某日的考勤
	Save(ctx context.Context, req *dto.SaveAttendanceRequest) (*dto.SaveAttendanceResponse, error)
	Roster(ctx context.Context, q *dto.AttendanceRosterQuery) ([]dto.AttendanceRosterItem, error)
	StudentAttendance(ctx context.Context, req *dto.StudentAttendanceRequest) (*dto.StudentAttendanceResponse, error)
	ListStudents(ctx context.Context, q *dto.StudentListQuery) ([]dto.StudentAttendanceSummary, error)
}

type attendanceService struct {
	cfg    *config.AttendanceConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(cfg *config.AttendanceConfig, repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{
		cfg:    cfg,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ═══════════════════════════════════════════════════════════
// Save 整体替换某课程某日考勤
// ═══════════════════════════════════════════════════════════
//
// 事务内：
//  1. 按 (student_id, course_id, attendance_date) upsert 每个输入行
//  2. 删除该课程该日不在输入中的学生行
//
// 提交后该日的考勤行与输入完全一致；同一学生重复出现时以最后一次为准。

func (s *attendanceService) Save(ctx context.Context, req *dto.SaveAttendanceRequest) (*dto.SaveAttendanceResponse, error) {
	date, err := time.Parse(config.DateLayout, req.AttendanceDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := loadCourse(ctx, s.repo, s.logger, req.CourseID); err != nil {
		return nil, err
	}

	marks := collapseMarks(req.AttendanceData)
	keep := make([]int64, 0, len(marks))
	for _, m := range marks {
		keep = append(keep, m.StudentID)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, ErrAttendanceSave
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

	if err := txRepo.Attendance.Upsert(ctx, req.CourseID, date, marks); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrUnknownStudent
		}
		s.logger.Error("写入考勤失败",
			zap.Int64("course_id", req.CourseID),
			zap.String("date", req.AttendanceDate),
			zap.Error(err),
		)
		return nil, ErrAttendanceSave
	}

	removed, err := txRepo.Attendance.DeleteExcept(ctx, req.CourseID, date, keep)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("清理考勤失败",
			zap.Int64("course_id", req.CourseID),
			zap.String("date", req.AttendanceDate),
			zap.Error(err),
		)
		return nil, ErrAttendanceSave
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, ErrAttendanceSave
		}
	}

	s.logger.Info("考勤已保存",
		zap.Int64("course_id", req.CourseID),
		zap.String("date", req.AttendanceDate),
		zap.Int("saved", len(marks)),
		zap.Int64("removed", removed),
	)

	return &dto.SaveAttendanceResponse{
		CourseID:       req.CourseID,
		AttendanceDate: req.AttendanceDate,
		Saved:          len(marks),
	}, nil
}

// collapseMarks 合并重复学生：保留首次出现的顺序，取最后一次的出勤值
func collapseMarks(in []dto.AttendanceMarkRequest) []model.AttendanceMark {
	index := make(map[int64]int, len(in))
	out := make([]model.AttendanceMark, 0, len(in))
	for _, m := range in {
		if i, ok := index[m.ID]; ok {
			out[i].IsPresent = m.IsPresent
			continue
		}
		index[m.ID] = len(out)
		out = append(out, model.AttendanceMark{StudentID: m.ID, IsPresent: m.IsPresent})
	}
	return out
}

// ────────────────────── Roster ──────────────────────

func (s *attendanceService) Roster(ctx context.Context, q *dto.AttendanceRosterQuery) ([]dto.AttendanceRosterItem, error) {
	date, err := time.Parse(config.DateLayout, q.AttendanceDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	entries, err := s.repo.Attendance.ListRoster(ctx, q.CourseID, date)
	if err != nil {
		s.logger.Error("查询考勤名册失败", zap.Int64("course_id", q.CourseID), zap.Error(err))
		return nil, err
	}

	items := make([]dto.AttendanceRosterItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.AttendanceRosterItem{
			ID:        e.StudentID,
			Name:      e.Name,
			IsPresent: e.IsPresent,
		})
	}
	return items, nil
}

// ────────────────────── StudentAttendance ──────────────────────

func (s *attendanceService) StudentAttendance(ctx context.Context, req *dto.StudentAttendanceRequest) (*dto.StudentAttendanceResponse, error) {
	monthStart, err := time.Parse(monthLayout, req.Month)
	if err != nil {
		return nil, ErrInvalidMonth
	}
	day, err := time.Parse(config.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	monthly, err := s.repo.Attendance.CountStats(ctx, req.UserID, req.CourseID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		s.logger.Error("统计月出勤失败", zap.Error(err))
		return nil, err
	}

	from, to, err := s.overallWindow()
	if err != nil {
		return nil, err
	}
	overall, err := s.repo.Attendance.CountStats(ctx, req.UserID, req.CourseID, from, to)
	if err != nil {
		s.logger.Error("统计总出勤失败", zap.Error(err))
		return nil, err
	}

	status := StatusNotMarked
	record, err := s.repo.Attendance.GetByStudentDate(ctx, req.UserID, req.CourseID, day)
	switch {
	case err == nil && record.IsPresent:
		status = StatusPresent
	case err == nil:
		status = StatusAbsent
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Error("查询单日考勤失败", zap.Error(err))
		return nil, err
	}

	return &dto.StudentAttendanceResponse{
		MonthlyAttendance: percentage(monthly),
		OverallAttendance: percentage(overall),
		AttendanceStatus:  status,
	}, nil
}

// ────────────────────── ListStudents ──────────────────────

func (s *attendanceService) ListStudents(ctx context.Context, q *dto.StudentListQuery) ([]dto.StudentAttendanceSummary, error) {
	enrollments, err := s.repo.Enrollment.List(ctx, repository.EnrollmentFilter{
		CourseID:   q.CourseID,
		SearchName: q.SearchName,
	})
	if err != nil {
		s.logger.Error("查询选课记录失败", zap.Error(err))
		return nil, err
	}

	monthStart, monthEnd := s.currentMonth()
	from, to, err := s.overallWindow()
	if err != nil {
		return nil, err
	}

	result := make([]dto.StudentAttendanceSummary, 0, len(enrollments))
	for _, e := range enrollments {
		monthly, err := s.repo.Attendance.CountStats(ctx, e.StudentID, e.CourseID, monthStart, monthEnd)
		if err != nil {
			s.logger.Error("统计月出勤失败", zap.Int64("student_id", e.StudentID), zap.Error(err))
			return nil, err
		}
		overall, err := s.repo.Attendance.CountStats(ctx, e.StudentID, e.CourseID, from, to)
		if err != nil {
			s.logger.Error("统计总出勤失败", zap.Int64("student_id", e.StudentID), zap.Error(err))
			return nil, err
		}

		monthlyPct := percentage(monthly)
		result = append(result, dto.StudentAttendanceSummary{
			ID:                e.StudentID,
			Name:              e.StudentName,
			Course:            e.CourseID,
			MonthlyAttendance: monthlyPct,
			OverallAttendance: percentage(overall),
			Leaves:            monthly.Absent(),
			LowAttendance:     monthlyPct < s.cfg.AlertThreshold,
		})
	}
	return result, nil
}

// ── 统计窗口 ──

func (s *attendanceService) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// currentMonth 当前月 [月初, 下月初)
func (s *attendanceService) currentMonth() (time.Time, time.Time) {
	t := s.today()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// overallWindow 总出勤窗口 [起始日, 今天]，以左闭右开 [起始日, 明天) 返回
func (s *attendanceService) overallWindow() (time.Time, time.Time, error) {
	start, err := s.cfg.OverallStart()
	if err != nil {
		s.logger.Error("总出勤起始日配置无效", zap.String("overall_start_date", s.cfg.OverallStartDate))
		return time.Time{}, time.Time{}, err
	}
	return start, s.today().AddDate(0, 0, 1), nil
}

// percentage 出勤率（0-100，两位小数），无记录时为 0
func percentage(st model.AttendanceStats) float64 {
	if st.Total == 0 {
		return 0
	}
	return math.Round(float64(st.Present)*10000/float64(st.Total)) / 100
}
