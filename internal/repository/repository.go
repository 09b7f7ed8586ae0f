package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yashjd12/attendance-tracker/config"
)

// Repository 所有 Repository 的聚合入口
// db 为空时（单元测试注入 mock）BeginTx 返回 nil 事务，WithTx 返回自身
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Course       CourseRepository
	Enrollment   EnrollmentRepository
	Attendance   AttendanceRepository
	Leave        LeaveRepository
	Notification NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Course:       NewCourseRepo(db),
		Enrollment:   NewEnrollmentRepo(db),
		Attendance:   NewAttendanceRepo(db),
		Leave:        NewLeaveRepo(db),
		Notification: NewNotificationRepo(db),
	}
}

// BeginTx 开启事务
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// dateArg 将日期格式化为 SQL DATE 参数，避免时区换算
func dateArg(t time.Time) string {
	return t.Format(config.DateLayout)
}

// likePattern 构造 ILIKE 子串匹配参数并转义通配符
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
