package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 5000},
		Auth: AuthConfig{
			JWTSecret: "unit-test-secret-0123456789",
			TokenTTL:  time.Hour,
		},
		Attendance: AttendanceConfig{
			OverallStartDate: "2024-01-01",
			AlertThreshold:   75,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("期望校验通过，实际: %v", err)
	}
}

func TestValidate_EmptySecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Error("空 jwt_secret 应校验失败")
	}
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Error("过短 jwt_secret 应校验失败")
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("端口越界应校验失败")
	}
}

func TestValidate_BadStartDate(t *testing.T) {
	cfg := validConfig()
	cfg.Attendance.OverallStartDate = "2024/01/01"
	if err := cfg.Validate(); err == nil {
		t.Error("起始日期格式错误应校验失败")
	}
}

func TestValidate_TokenTTLFixedAtOneHour(t *testing.T) {
	for _, ttl := range []time.Duration{0, 30 * time.Minute, 24 * time.Hour} {
		cfg := validConfig()
		cfg.Auth.TokenTTL = ttl
		if err := cfg.Validate(); err == nil {
			t.Errorf("token_ttl=%v 应校验失败", ttl)
		}
	}
}

func TestLoad_RejectsTokenTTLOverride(t *testing.T) {
	t.Setenv("ATTENDANCE_AUTH_JWT_SECRET", "env-secret-0123456789abcdef")
	t.Setenv("ATTENDANCE_AUTH_TOKEN_TTL", "24h")

	if _, err := Load(""); err == nil {
		t.Error("token_ttl 非 1h 时 Load 应失败")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ATTENDANCE_AUTH_JWT_SECRET", "env-secret-0123456789abcdef")
	t.Setenv("ATTENDANCE_SERVER_PORT", "6001")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Server.Port != 6001 {
		t.Errorf("期望 port=6001，实际=%d", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("期望默认 token_ttl=1h，实际=%v", cfg.Auth.TokenTTL)
	}
	if cfg.Attendance.AlertThreshold != 75 {
		t.Errorf("期望默认预警线=75，实际=%v", cfg.Attendance.AlertThreshold)
	}
}
