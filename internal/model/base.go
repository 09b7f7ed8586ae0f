package model

import "time"

// 角色
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
)

// BaseModel 通用审计字段（业务主表嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
