package model

import "time"

// Course 课程表，对应 courses
type Course struct {
	CourseID   int64  `gorm:"primaryKey;autoIncrement"   json:"course_id"`
	CourseName string `gorm:"type:varchar(200);not null" json:"course_name"`
	BaseModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// FacultyCourse 教师授课关系，对应 faculty_courses
type FacultyCourse struct {
	FacultyID int64     `gorm:"primaryKey;autoIncrement:false" json:"faculty_id"`
	CourseID  int64     `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (FacultyCourse) TableName() string { return "faculty_courses" }

// StudentCourse 学生选课关系，对应 student_courses
type StudentCourse struct {
	StudentID int64     `gorm:"primaryKey;autoIncrement:false" json:"student_id"`
	CourseID  int64     `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (StudentCourse) TableName() string { return "student_courses" }

// CourseMember 课程成员（名册查询结果，非表）
type CourseMember struct {
	UserID int64
	Name   string
}

// CourseRoster 教师课程及其选课学生（查询结果，非表）
type CourseRoster struct {
	CourseID   int64
	CourseName string
	Students   []CourseMember
}

// Enrollment 学生选课记录（含学生姓名，查询结果，非表）
type Enrollment struct {
	StudentID   int64
	StudentName string
	CourseID    int64
}
