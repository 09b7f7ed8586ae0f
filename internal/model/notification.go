package model

import (
	"time"

	"gorm.io/datatypes"
)

// 通知类型（变体标签）
const (
	NotificationTypeAlert = "Alert"
	NotificationTypeLeave = "Leave"
)

// Notification 通知表，对应 notifications
// NotificationType 决定哪一组可空列有效：
//   - Alert: AttendancePct / MonthName / CourseName
//   - Leave: LeaveStatus / LeaveStartDate / LeaveEndDate / LeaveComment
//
// Comment 保留旧版文本格式，仅在结构化列缺失时用于解析。
type Notification struct {
	NotificationID   int64           `gorm:"primaryKey;autoIncrement"          json:"notification_id"`
	StudentID        int64           `gorm:"not null"                          json:"student_id"`
	CourseID         *int64          `json:"course_id,omitempty"`
	NotificationType string          `gorm:"type:varchar(20);not null"         json:"notification_type"`
	AttendancePct    *float64        `gorm:"type:numeric(5,2)"                 json:"attendance_pct,omitempty"`
	MonthName        *string         `gorm:"type:varchar(20)"                  json:"month_name,omitempty"`
	CourseName       *string         `gorm:"type:varchar(200)"                 json:"course_name,omitempty"`
	LeaveStatus      *string         `gorm:"type:varchar(20)"                  json:"leave_status,omitempty"`
	LeaveStartDate   *datatypes.Date `json:"leave_start_date,omitempty"`
	LeaveEndDate     *datatypes.Date `json:"leave_end_date,omitempty"`
	LeaveComment     *string         `gorm:"type:text"                         json:"leave_comment,omitempty"`
	Comment          string          `gorm:"type:text;not null;default:''"     json:"comment"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联（课程被删除时为空）
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
