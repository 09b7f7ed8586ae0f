package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
// FacultyID 非空时在同一事务内将课程分配给该教师
type CreateCourseRequest struct {
	CourseName string `json:"course_name" binding:"required,min=1,max=200"`
	FacultyID  *int64 `json:"faculty_id"  binding:"omitempty,min=1"`
}

// EnrollStudentRequest 学生选课请求
type EnrollStudentRequest struct {
	StudentID int64 `json:"student_id" binding:"required,min=1"`
}

// FacultyCourseRequest 教师授课分配/取消请求
type FacultyCourseRequest struct {
	FacultyID int64 `json:"faculty_id" binding:"required,min=1"`
	CourseID  int64 `json:"course_id"  binding:"required,min=1"`
}

// FacultyCourseOptionsQuery 教师课程下拉选项查询
type FacultyCourseOptionsQuery struct {
	UserID int64 `form:"user_id" binding:"required,min=1"`
}

// CourseResponse 课程信息
type CourseResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CourseStudentResponse 课程下的学生
type CourseStudentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CourseRosterResponse 教师课程及选课学生
type CourseRosterResponse struct {
	ID       int64                   `json:"id"`
	Name     string                  `json:"name"`
	Students []CourseStudentResponse `json:"students"`
}

// CourseOption 下拉选项 {value, label}
type CourseOption struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
}
