package model

// User 用户表，对应 users
type User struct {
	UserID       int64  `gorm:"primaryKey;autoIncrement"         json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"       json:"name"`
	Email        string `gorm:"type:varchar(255);not null"       json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"       json:"-"`
	Role         string `gorm:"type:varchar(20);not null"        json:"role"` // student | faculty
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// IsStudent 是否学生
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// IsFaculty 是否教师
func (u *User) IsFaculty() bool { return u.Role == RoleFaculty }
