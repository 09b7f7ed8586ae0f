package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yashjd12/attendance-tracker/config"
	"github.com/yashjd12/attendance-tracker/internal/api/handler"
	"github.com/yashjd12/attendance-tracker/internal/api/middleware"
	"github.com/yashjd12/attendance-tracker/pkg/jwt"
	"github.com/yashjd12/attendance-tracker/pkg/response"
)

const (
	roleStudent = "student"
	roleFaculty = "faculty"
)

// Deps 路由依赖；Blacklist / Limiter 为 nil 时对应能力降级关闭
type Deps struct {
	JWT       *jwt.Manager
	Blacklist middleware.BlacklistChecker
	Limiter   middleware.RateLimiter
	DB        *gorm.DB
	Logger    *zap.Logger
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, deps Deps) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, 10006, "接口不存在")
	})

	// ── 运维端点 ──
	r.GET("/health", healthCheck(deps.DB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// 认证模块（无需认证，按 IP 限流）
	authLimit := middleware.RateLimit(deps.Limiter, cfg.Auth.RateLimit.Limit, cfg.Auth.RateLimit.Window)
	api.POST("/signup", authLimit, h.Auth.Signup)
	api.POST("/login", authLimit, h.Auth.Login)

	// 需要认证的路由
	authorized := api.Group("")
	authorized.Use(middleware.JWTAuth(deps.JWT, deps.Blacklist, deps.Logger))
	facultyOnly := middleware.RoleAuth(roleFaculty)
	{
		authorized.POST("/logout", h.Auth.Logout)
		authorized.GET("/profile/:userId", h.User.GetProfile)

		// 课程模块
		courses := authorized.Group("/courses")
		{
			courses.GET("/faculty/:facultyId", facultyOnly, h.Course.ListFacultyCourses)
			courses.POST("", facultyOnly, h.Course.CreateCourse)
			courses.DELETE("/:id", facultyOnly, h.Course.DeleteCourse)
			courses.POST("/:id/students", facultyOnly, h.Course.EnrollStudent)
			courses.DELETE("/:id/students/:studentId", facultyOnly, h.Course.UnenrollStudent)
			courses.GET("/:id", h.Course.StudentCourses) // :id 为学生 user_id
		}
		authorized.POST("/faculty/courses", facultyOnly, h.Course.AssignFaculty)
		authorized.DELETE("/faculty/courses", facultyOnly, h.Course.UnassignFaculty)
		authorized.GET("/facultyCourses", facultyOnly, h.Course.FacultyCourseOptions)

		// 考勤模块
		authorized.POST("/attendance", facultyOnly, h.Attendance.SaveAttendance)
		authorized.GET("/attendance", facultyOnly, h.Attendance.GetRoster)
		authorized.GET("/attendance/export", facultyOnly, h.Export.ExportAttendance)
		authorized.POST("/student/attendance", h.Attendance.StudentAttendance)
		authorized.GET("/students", facultyOnly, h.Attendance.ListStudents)

		// 通知模块
		authorized.POST("/sendAlert", facultyOnly, h.Notification.SendAlert)
		authorized.GET("/notifications/:userId", h.Notification.ListNotifications)

		// 请假模块
		authorized.POST("/student/leaves", middleware.RoleAuth(roleStudent), h.Leave.ApplyLeave)
		authorized.GET("/student/leaves/:userId", h.Leave.ListStudentLeaves)
		authorized.GET("/leaves/:id", facultyOnly, h.Leave.ListPendingLeaves) // :id 为教师 user_id
		authorized.PUT("/leaves/:id", facultyOnly, h.Leave.UpdateLeave)       // :id 为请假记录 ID
	}

	return r
}

// healthCheck 探活：数据库可达时返回 ok
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
				err = sqlDB.PingContext(ctx)
				cancel()
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
