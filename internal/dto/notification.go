package dto

// ── 通知模块 DTO ──

// SendAlertRequest 出勤预警请求
type SendAlertRequest struct {
	StudentID         int64   `json:"student_id"         binding:"required,min=1"`
	CourseID          int64   `json:"course_id"          binding:"required,min=1"`
	MonthlyAttendance float64 `json:"monthly_attendance" binding:"min=0,max=100"`
	SelectedMonth     string  `json:"selected_month"     binding:"required,max=20"` // 月份名称，如 "May"
}

// SendAlertResponse 预警创建结果
type SendAlertResponse struct {
	NotificationID int64 `json:"notification_id"`
}

// NotificationResponse 解码后的通知
// Alert 使用 Course/Month/AttendancePercentage；Leave 使用 LeaveStatus/StartDate/EndDate/Comment
type NotificationResponse struct {
	ID                   int64    `json:"id"`
	Type                 string   `json:"type"`
	Course               string   `json:"course,omitempty"`
	Month                string   `json:"month,omitempty"`
	AttendancePercentage *float64 `json:"attendance_percentage,omitempty"`
	LeaveStatus          string   `json:"leave_status,omitempty"`
	StartDate            *string  `json:"start_date"`
	EndDate              *string  `json:"end_date"`
	Comment              string   `json:"comment,omitempty"`
	CreatedAt            string   `json:"created_at"`
}
