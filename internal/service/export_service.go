package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yashjd12/attendance-tracker/internal/model"
	"github.com/yashjd12/attendance-tracker/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportMonthlyAttendance 导出某课程某月考勤为 Excel
	ExportMonthlyAttendance(ctx context.Context, courseID int64, month string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportMonthlyAttendance 导出月度考勤表
// ═══════════════════════════════════════════════════════════
//
// 输出格式（单 Sheet）：
//   - 标题行：课程名 + 月份
//   - 表头：学号 | 姓名 | 有考勤记录的每一天 | 月出勤率
//   - 单元格：P 出勤 / A 缺勤 / 空白 未标记
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportMonthlyAttendance(ctx context.Context, courseID int64, month string) (*bytes.Buffer, string, error) {
	monthStart, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, "", ErrInvalidMonth
	}

	// 1. 课程与选课学生
	course, err := loadCourse(ctx, s.repo, s.logger, courseID)
	if err != nil {
		return nil, "", err
	}
	students, err := s.repo.Enrollment.List(ctx, repository.EnrollmentFilter{CourseID: courseID})
	if err != nil {
		s.logger.Error("查询选课学生失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 当月考勤
	records, err := s.repo.Attendance.ListByCourseRange(ctx, courseID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		s.logger.Error("查询月度考勤失败", zap.Error(err))
		return nil, "", err
	}

	// 3. 建索引: studentID → date → present；收集有记录的日期
	marks := make(map[int64]map[string]bool)
	daySet := make(map[string]bool)
	for _, r := range records {
		day := formatDate(r.AttendanceDate)
		daySet[day] = true
		if marks[r.StudentID] == nil {
			marks[r.StudentID] = make(map[string]bool)
		}
		marks[r.StudentID][day] = r.IsPresent
	}
	days := make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Strings(days)

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	lastCol := colName(2 + len(days))

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 24)
	if len(days) > 0 {
		f.SetColWidth(sheetName, colName(2), colName(1+len(days)), 6)
	}
	f.SetColWidth(sheetName, lastCol, lastCol, 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - %s", course.CourseName, monthStart.Format("January 2006")))
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Student ID")
	f.SetCellValue(sheetName, cell("B", row), "Name")
	for i, d := range days {
		f.SetCellValue(sheetName, cell(colName(2+i), row), d[len(d)-2:])
	}
	f.SetCellValue(sheetName, cell(lastCol, row), "Monthly %")
	f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), headerStyle)

	// 数据行
	row = 3
	for _, st := range students {
		f.SetCellValue(sheetName, cell("A", row), st.StudentID)
		f.SetCellValue(sheetName, cell("B", row), st.StudentName)

		var stats model.AttendanceStats
		for i, d := range days {
			present, ok := marks[st.StudentID][d]
			if !ok {
				continue
			}
			stats.Total++
			text := "A"
			if present {
				stats.Present++
				text = "P"
			}
			f.SetCellValue(sheetName, cell(colName(2+i), row), text)
		}
		f.SetCellValue(sheetName, cell(lastCol, row), percentage(stats))
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%d_%s.xlsx", courseID, monthStart.Format(monthLayout))
	return buf, filename, nil
}

// ── 辅助函数 ──

// colName 0 起始列号转 Excel 列名
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
