package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/internal/service"
	"github.com/yashjd12/attendance-tracker/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// SendAlert 发送出勤预警
// POST /api/sendAlert
func (h *NotificationHandler) SendAlert(c *gin.Context) {
	var req dto.SendAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.notificationSvc.SendAlert(c.Request.Context(), &req)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.Created(c, result)
}

// ListNotifications 学生通知列表（新到旧）
// GET /api/notifications/:userId
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := ParseIDParam(c, "userId")
	if !ok {
		return
	}

	list, err := h.notificationSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}
