package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/internal/service"
	"github.com/yashjd12/attendance-tracker/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListFacultyCourses 教师所授课程及选课学生
// GET /api/courses/faculty/:facultyId
func (h *CourseHandler) ListFacultyCourses(c *gin.Context) {
	facultyID, ok := ParseIDParam(c, "facultyId")
	if !ok {
		return
	}

	rosters, err := h.courseSvc.ListFacultyRosters(c.Request.Context(), facultyID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, rosters)
}

// CreateCourse 创建课程
// POST /api/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.Created(c, course)
}

// DeleteCourse 删除课程
// DELETE /api/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	courseID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), courseID); err != nil {
		handleCourseError(c, err)
		return
	}

	response.NoContent(c)
}

// EnrollStudent 学生选课
// POST /api/courses/:id/students
func (h *CourseHandler) EnrollStudent(c *gin.Context) {
	courseID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.courseSvc.EnrollStudent(c.Request.Context(), courseID, req.StudentID); err != nil {
		handleCourseError(c, err)
		return
	}

	response.Created(c, gin.H{"course_id": courseID, "student_id": req.StudentID})
}

// UnenrollStudent 学生退课
// DELETE /api/courses/:id/students/:studentId
func (h *CourseHandler) UnenrollStudent(c *gin.Context) {
	courseID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := ParseIDParam(c, "studentId")
	if !ok {
		return
	}

	if err := h.courseSvc.UnenrollStudent(c.Request.Context(), courseID, studentID); err != nil {
		handleCourseError(c, err)
		return
	}

	response.NoContent(c)
}

// AssignFaculty 分配授课教师
// POST /api/faculty/courses
func (h *CourseHandler) AssignFaculty(c *gin.Context) {
	var req dto.FacultyCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.courseSvc.AssignFaculty(c.Request.Context(), &req); err != nil {
		handleCourseError(c, err)
		return
	}

	response.Created(c, req)
}

// UnassignFaculty 取消授课教师
// DELETE /api/faculty/courses
func (h *CourseHandler) UnassignFaculty(c *gin.Context) {
	var req dto.FacultyCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.courseSvc.UnassignFaculty(c.Request.Context(), &req); err != nil {
		handleCourseError(c, err)
		return
	}

	response.NoContent(c)
}

// FacultyCourseOptions 教师课程下拉选项
// GET /api/facultyCourses?user_id=
func (h *CourseHandler) FacultyCourseOptions(c *gin.Context) {
	var q dto.FacultyCourseOptionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "user_id 不能为空")
		return
	}

	options, err := h.courseSvc.ListFacultyOptions(c.Request.Context(), q.UserID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, options)
}

// StudentCourses 学生已选课程
// GET /api/courses/:id
func (h *CourseHandler) StudentCourses(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	courses, err := h.courseSvc.ListStudentCourses(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, courses)
}

// handleCourseError 课程、用户角色相关错误映射（考勤、请假、通知共用）
func handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Conflict(c, 13002, "学生已选该课程")
	case errors.Is(err, service.ErrAlreadyAssigned):
		response.Conflict(c, 13003, "教师已分配该课程")
	case errors.Is(err, service.ErrNotStudent):
		response.BadRequest(c, 13004, "该用户不是学生")
	case errors.Is(err, service.ErrNotFaculty):
		response.BadRequest(c, 13005, "该用户不是教师")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 13006, "用户不存在")
	default:
		response.InternalError(c)
	}
}
