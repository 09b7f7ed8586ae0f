package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/internal/service"
	"github.com/yashjd12/attendance-tracker/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// SaveAttendance 保存某课程某日考勤（整体替换）
// POST /api/attendance
func (h *AttendanceHandler) SaveAttendance(c *gin.Context) {
	var req dto.SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "course_id 与 attendance_date 为必填项")
		return
	}

	result, err := h.attendanceSvc.Save(c.Request.Context(), &req)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}

	response.Created(c, result)
}

// GetRoster 课程某日名册及出勤
// GET /api/attendance?course_id=&attendance_date=
func (h *AttendanceHandler) GetRoster(c *gin.Context) {
	var q dto.AttendanceRosterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "course_id 与 attendance_date 为必填项")
		return
	}

	items, err := h.attendanceSvc.Roster(c.Request.Context(), &q)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}

	response.OK(c, items)
}

// StudentAttendance 单个学生的月度/总出勤率及某日状态
// POST /api/student/attendance
func (h *AttendanceHandler) StudentAttendance(c *gin.Context) {
	var req dto.StudentAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attendanceSvc.StudentAttendance(c.Request.Context(), &req)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// ListStudents 学生出勤汇总
// GET /api/students?course_id=&search_name=
func (h *AttendanceHandler) ListStudents(c *gin.Context) {
	var q dto.StudentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.attendanceSvc.ListStudents(c.Request.Context(), &q)
	if err != nil {
		handleAttendanceError(c, err)
		return
	}

	response.OK(c, list)
}

func handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14001, "日期格式应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidMonth):
		response.BadRequest(c, 14002, "月份格式应为 YYYY-MM")
	case errors.Is(err, service.ErrUnknownStudent):
		response.BadRequest(c, 14003, "考勤中包含不存在的学生")
	case errors.Is(err, service.ErrAttendanceSave):
		response.InternalError(c)
	default:
		handleCourseError(c, err)
	}
}
