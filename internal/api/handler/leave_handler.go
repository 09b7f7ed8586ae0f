package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/internal/model"
	"github.com/yashjd12/attendance-tracker/internal/service"
	"github.com/yashjd12/attendance-tracker/pkg/response"
)

// LeaveHandler 请假模块 HTTP 处理器
type LeaveHandler struct {
	leaveSvc service.LeaveService
}

// NewLeaveHandler 创建 LeaveHandler
func NewLeaveHandler(leaveSvc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc}
}

// ApplyLeave 学生提交请假，申请人取自当前登录身份
// POST /api/student/leaves
func (h *LeaveHandler) ApplyLeave(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	if role != model.RoleStudent {
		response.Forbidden(c, 10003, "仅学生可提交请假")
		return
	}

	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.StudentID != 0 && req.StudentID != userID {
		response.Forbidden(c, 10003, "不能替其他学生请假")
		return
	}
	req.StudentID = userID

	leave, err := h.leaveSvc.Apply(c.Request.Context(), &req)
	if err != nil {
		handleLeaveError(c, err)
		return
	}

	response.Created(c, leave)
}

// ListStudentLeaves 学生自己的请假记录
// GET /api/student/leaves/:userId
func (h *LeaveHandler) ListStudentLeaves(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "userId")
	if !ok {
		return
	}

	leaves, err := h.leaveSvc.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, leaves)
}

// ListPendingLeaves 教师待审批请假
// GET /api/leaves/:id
func (h *LeaveHandler) ListPendingLeaves(c *gin.Context) {
	facultyID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	leaves, err := h.leaveSvc.ListPendingForFaculty(c.Request.Context(), facultyID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, leaves)
}

// UpdateLeave 审批请假
// PUT /api/leaves/:id
func (h *LeaveHandler) UpdateLeave(c *gin.Context) {
	leaveID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	leave, err := h.leaveSvc.Update(c.Request.Context(), leaveID, &req)
	if err != nil {
		handleLeaveError(c, err)
		return
	}

	response.OK(c, leave)
}

func handleLeaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLeaveNotFound):
		response.NotFound(c, 15001, "请假记录不存在")
	case errors.Is(err, service.ErrInvalidLeaveStatus):
		response.BadRequest(c, 15002, "请假状态应为 Pending、Approved 或 Rejected")
	case errors.Is(err, service.ErrInvalidLeaveRange):
		response.BadRequest(c, 15003, "结束日期不能早于开始日期")
	case errors.Is(err, service.ErrNotEnrolled):
		response.BadRequest(c, 15004, "学生未选该课程")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14001, "日期格式应为 YYYY-MM-DD")
	default:
		handleCourseError(c, err)
	}
}
