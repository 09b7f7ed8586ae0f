package model

import "gorm.io/datatypes"

// 请假状态
const (
	LeaveStatusPending  = "Pending"
	LeaveStatusApproved = "Approved"
	LeaveStatusRejected = "Rejected"
)

// Leave 请假申请，对应 leaves
type Leave struct {
	LeaveID        int64          `gorm:"primaryKey;autoIncrement"                    json:"leave_id"`
	StudentID      int64          `gorm:"not null"                                    json:"student_id"`
	CourseID       int64          `gorm:"not null"                                    json:"course_id"`
	LeaveStartDate datatypes.Date `gorm:"not null"                                    json:"leave_start_date"`
	LeaveEndDate   datatypes.Date `gorm:"not null"                                    json:"leave_end_date"`
	Reason         string         `gorm:"type:text;not null"                          json:"reason"`
	Status         string         `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Comment        string         `gorm:"type:text;not null;default:''"               json:"comment"`
	BaseModel

	// 关联
	Student *User   `gorm:"foreignKey:StudentID;references:UserID"   json:"student,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (Leave) TableName() string { return "leaves" }
