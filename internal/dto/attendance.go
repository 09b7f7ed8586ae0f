package dto

// ── 考勤模块 DTO ──

// AttendanceMarkRequest 单个学生的出勤标记
type AttendanceMarkRequest struct {
	ID        int64 `json:"id"         binding:"required,min=1"`
	IsPresent bool  `json:"is_present"`
}

// SaveAttendanceRequest 保存某课程某日考勤（整体替换）
// AttendanceData 可为空，表示清空该日考勤
type SaveAttendanceRequest struct {
	CourseID       int64                   `json:"course_id"       binding:"required,min=1"`
	AttendanceDate string                  `json:"attendance_date" binding:"required,date"`
	AttendanceData []AttendanceMarkRequest `json:"attendance_data" binding:"omitempty,dive"`
}

// SaveAttendanceResponse 保存结果
type SaveAttendanceResponse struct {
	CourseID       int64  `json:"course_id"`
	AttendanceDate string `json:"attendance_date"`
	Saved          int    `json:"saved"`
}

// AttendanceRosterQuery 课程某日名册查询
type AttendanceRosterQuery struct {
	CourseID       int64  `form:"course_id"       binding:"required,min=1"`
	AttendanceDate string `form:"attendance_date" binding:"required,date"`
}

// AttendanceRosterItem 名册行
type AttendanceRosterItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsPresent bool   `json:"is_present"`
}

// StudentAttendanceRequest 单个学生出勤统计请求
type StudentAttendanceRequest struct {
	UserID   int64  `json:"user_id"   binding:"required,min=1"`
	CourseID int64  `json:"course_id" binding:"required,min=1"`
	Month    string `json:"month"     binding:"required,month"` // "2024-05"
	Date     string `json:"date"      binding:"required,date"`  // "2024-05-01"
}

// StudentAttendanceResponse 单个学生出勤统计
type StudentAttendanceResponse struct {
	MonthlyAttendance float64 `json:"monthly_attendance"`
	OverallAttendance float64 `json:"overall_attendance"`
	AttendanceStatus  string  `json:"attendance_status"` // Present | Absent | Not marked
}

// StudentListQuery 学生出勤列表查询
type StudentListQuery struct {
	CourseID   int64  `form:"course_id"   binding:"omitempty,min=1"`
	SearchName string `form:"search_name" binding:"omitempty,max=100"`
}

// StudentAttendanceSummary 学生出勤汇总行
type StudentAttendanceSummary struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Course            int64   `json:"course"`
	MonthlyAttendance float64 `json:"monthly_attendance"`
	OverallAttendance float64 `json:"overall_attendance"`
	Leaves            int64   `json:"leaves"` // 本月缺勤次数
	LowAttendance     bool    `json:"low_attendance"`
}

// ExportAttendanceQuery 月度考勤导出查询
type ExportAttendanceQuery struct {
	CourseID int64  `form:"course_id" binding:"required,min=1"`
	Month    string `form:"month"     binding:"required,month"`
}
