package dto

// ── 认证模块响应 ──

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ID        int64  `json:"id"`
	ExpiresIn int    `json:"expires_in"` // Token 有效期（秒）
}

// SignupResponse 注册成功响应
type SignupResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ── 用户模块响应 ──

// ProfileResponse 个人资料（脱敏）
type ProfileResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	EnrollmentYear string `json:"enrollment_year"`
}
