package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/yashjd12/attendance-tracker/internal/model"
)

func TestExportMonthlyAttendance(t *testing.T) {
	store := newMockStore()
	store.course(7, "Networks")
	store.users.add(1, "Alice", model.RoleStudent)
	store.users.add(2, "Bob", model.RoleStudent)
	store.enrollments.links[linkKey{1, 7}] = true
	store.enrollments.links[linkKey{2, 7}] = true
	store.attendance.mark(1, 7, "2024-05-01", true)
	store.attendance.mark(1, 7, "2024-05-02", false)
	store.attendance.mark(2, 7, "2024-05-02", true)
	store.attendance.mark(2, 7, "2024-06-01", true) // 不在本月

	svc := NewExportService(store.repo(), testLogger())
	buf, filename, err := svc.ExportMonthlyAttendance(context.Background(), 7, "2024-05")
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if filename != "attendance_7_2024-05.xlsx" {
		t.Errorf("文件名错误: %q", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法读取生成的 Excel: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	// 标题 + 表头 + 2 名学生
	if len(rows) != 4 {
		t.Fatalf("期望 4 行，实际 %d", len(rows))
	}
	header := rows[1]
	if len(header) != 5 || header[2] != "01" || header[3] != "02" || header[4] != "Monthly %" {
		t.Errorf("表头错误: %v", header)
	}
	alice := rows[2]
	if alice[1] != "Alice" || alice[2] != "P" || alice[3] != "A" || alice[4] != "50" {
		t.Errorf("Alice 行错误: %v", alice)
	}
	bob := rows[3]
	if bob[1] != "Bob" || bob[2] != "" || bob[3] != "P" || bob[4] != "100" {
		t.Errorf("Bob 行错误: %v", bob)
	}
}

func TestExportMonthlyAttendance_UnknownCourse(t *testing.T) {
	svc := NewExportService(newMockStore().repo(), testLogger())
	if _, _, err := svc.ExportMonthlyAttendance(context.Background(), 7, "2024-05"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}
