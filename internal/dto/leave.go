package dto

// ── 请假模块 DTO ──

// CreateLeaveRequest 学生请假申请
type CreateLeaveRequest struct {
	StudentID      int64  `json:"student_id"       binding:"omitempty,min=1"` // 缺省时取当前登录学生
	CourseID       int64  `json:"course_id"        binding:"required,min=1"`
	LeaveStartDate string `json:"leave_start_date" binding:"required,date"`
	LeaveEndDate   string `json:"leave_end_date"   binding:"required,date"`
	Reason         string `json:"reason"           binding:"required,min=1,max=1000"`
}

// UpdateLeaveRequest 审批请假
// Status 大小写不敏感，由 Service 统一规范为首字母大写
type UpdateLeaveRequest struct {
	Status  string `json:"status"  binding:"required"`
	Comment string `json:"comment" binding:"max=1000"`
}

// LeaveResponse 请假记录
type LeaveResponse struct {
	ID             int64  `json:"id"`
	StudentID      int64  `json:"student_id"`
	StudentName    string `json:"student_name,omitempty"`
	CourseID       int64  `json:"course_id"`
	CourseName     string `json:"course_name,omitempty"`
	LeaveStartDate string `json:"leave_start_date"`
	LeaveEndDate   string `json:"leave_end_date"`
	Reason         string `json:"reason"`
	Status         string `json:"status"`
	Comment        string `json:"comment"`
}
