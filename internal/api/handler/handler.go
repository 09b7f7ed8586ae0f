package handler

import "github.com/yashjd12/attendance-tracker/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Course       *CourseHandler
	Attendance   *AttendanceHandler
	Leave        *LeaveHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Course:       NewCourseHandler(svc.Course),
		Attendance:   NewAttendanceHandler(svc.Attendance),
		Leave:        NewLeaveHandler(svc.Leave),
		Notification: NewNotificationHandler(svc.Notification),
		Export:       NewExportHandler(svc.Export),
	}
}
