package model

import "gorm.io/datatypes"

// Attendance 考勤记录，对应 attendance
// (student_id, course_id, attendance_date) 由数据库唯一约束保证至多一条
type Attendance struct {
	AttendanceID   int64          `gorm:"primaryKey;autoIncrement"                                        json:"attendance_id"`
	StudentID      int64          `gorm:"not null;uniqueIndex:uk_attendance_student_course_date,priority:1" json:"student_id"`
	CourseID       int64          `gorm:"not null;uniqueIndex:uk_attendance_student_course_date,priority:2" json:"course_id"`
	AttendanceDate datatypes.Date `gorm:"not null;uniqueIndex:uk_attendance_student_course_date,priority:3" json:"attendance_date"`
	IsPresent      bool           `gorm:"not null;default:false"                                          json:"is_present"`
	BaseModel
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendance" }

// AttendanceMark 单个学生的出勤标记（保存考勤的输入）
type AttendanceMark struct {
	StudentID int64
	IsPresent bool
}

// AttendanceStats 区间内出勤计数
type AttendanceStats struct {
	Total   int64
	Present int64
}

// Absent 缺勤次数
func (s AttendanceStats) Absent() int64 { return s.Total - s.Present }

// RosterEntry 某课程某日的名册行（未标记时 IsPresent=false, Marked=false）
type RosterEntry struct {
	StudentID int64
	Name      string
	IsPresent bool
	Marked    bool
}
