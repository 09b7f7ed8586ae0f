package service

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"gorm.io/datatypes"

	"github.com/yashjd12/attendance-tracker/config"
	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/internal/model"
)

// 旧数据解析失败时的占位值
const (
	placeholderCourse  = "Unknown Course"
	placeholderMonth   = "Unknown Month"
	placeholderStatus  = "Unknown Status"
	placeholderComment = "No Comment"
)

var (
	alertCommentPattern = regexp.MustCompile(`Attendance:\s*(\d+(?:\.\d+)?)\s*,\s*Month:\s*([A-Za-z]+)\s*,\s*Course:\s*(.+)`)
	leaveCommentPattern = regexp.MustCompile(`Status:\s*(\w+),\s*Date:\s*([\d\-]+)\s*to\s*([\d\-]+),\s*Comment:\s*(.*)`)
)

// ── 编码 ──

// newAlertNotification 构造出勤预警通知：结构化列 + 旧版文本
func newAlertNotification(studentID int64, course *model.Course, pct float64, month string) *model.Notification {
	courseID := course.CourseID
	courseName := course.CourseName
	return &model.Notification{
		StudentID:        studentID,
		CourseID:         &courseID,
		NotificationType: model.NotificationTypeAlert,
		AttendancePct:    &pct,
		MonthName:        &month,
		CourseName:       &courseName,
		Comment:          formatAlertComment(pct, month, courseName),
	}
}

// newLeaveNotification 构造请假审批结果通知
func newLeaveNotification(leave *model.Leave, status, comment string) *model.Notification {
	courseID := leave.CourseID
	start := leave.LeaveStartDate
	end := leave.LeaveEndDate
	return &model.Notification{
		StudentID:        leave.StudentID,
		CourseID:         &courseID,
		NotificationType: model.NotificationTypeLeave,
		LeaveStatus:      &status,
		LeaveStartDate:   &start,
		LeaveEndDate:     &end,
		LeaveComment:     &comment,
		Comment:          formatLeaveComment(status, formatDate(start), formatDate(end), comment),
	}
}

func formatAlertComment(pct float64, month, course string) string {
	return fmt.Sprintf("Attendance:%s, Month:%s, Course:%s",
		strconv.FormatFloat(pct, 'f', -1, 64), month, course)
}

func formatLeaveComment(status, start, end, comment string) string {
	return fmt.Sprintf("Status:%s, Date:%s to %s, Comment:%s", status, start, end, comment)
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(config.DateLayout)
}

// ── 解码 ──

// decodeNotification 结构化列优先；旧数据按文本解析，解析失败填充占位值，不返回错误
func decodeNotification(n *model.Notification) dto.NotificationResponse {
	resp := dto.NotificationResponse{
		ID:        n.NotificationID,
		Type:      n.NotificationType,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}

	switch n.NotificationType {
	case model.NotificationTypeAlert:
		decodeAlert(n, &resp)
	case model.NotificationTypeLeave:
		decodeLeave(n, &resp)
	default:
		resp.Comment = n.Comment
	}
	return resp
}

func decodeAlert(n *model.Notification, resp *dto.NotificationResponse) {
	if n.AttendancePct != nil || n.MonthName != nil || n.CourseName != nil {
		pct := 0.0
		if n.AttendancePct != nil {
			pct = *n.AttendancePct
		}
		resp.AttendancePercentage = &pct
		resp.Month = derefOr(n.MonthName, placeholderMonth)
		resp.Course = derefOr(n.CourseName, courseNameOr(n, placeholderCourse))
		return
	}

	pct := 0.0
	resp.AttendancePercentage = &pct
	m := alertCommentPattern.FindStringSubmatch(n.Comment)
	if m == nil {
		resp.Month = placeholderMonth
		resp.Course = placeholderCourse
		return
	}
	if v, err := strconv.ParseFloat(m[1], 64); err == nil {
		pct = v
	}
	resp.Month = m[2]
	resp.Course = m[3]
}

func decodeLeave(n *model.Notification, resp *dto.NotificationResponse) {
	if n.LeaveStatus != nil {
		resp.LeaveStatus = *n.LeaveStatus
		resp.StartDate = datePtr(n.LeaveStartDate)
		resp.EndDate = datePtr(n.LeaveEndDate)
		resp.Comment = derefOr(n.LeaveComment, "")
		return
	}

	m := leaveCommentPattern.FindStringSubmatch(n.Comment)
	if m == nil {
		resp.LeaveStatus = placeholderStatus
		resp.Comment = placeholderComment
		return
	}
	resp.LeaveStatus = m[1]
	resp.StartDate = &m[2]
	resp.EndDate = &m[3]
	resp.Comment = m[4]
}

func derefOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

func courseNameOr(n *model.Notification, fallback string) string {
	if n.Course != nil {
		return n.Course.CourseName
	}
	return fallback
}

func datePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := formatDate(*d)
	return &s
}
