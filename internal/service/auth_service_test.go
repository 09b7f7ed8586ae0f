package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yashjd12/attendance-tracker/config"
	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/pkg/jwt"
)

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	entries map[string]time.Duration
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = make(map[string]time.Duration)
	}
	m.entries[jti] = ttl
	return nil
}

func newTestAuthService(store *mockStore, bl TokenBlacklist) *authService {
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret: "unit-test-secret-0123456789",
		TokenTTL:  time.Hour,
	})
	return NewAuthService(store.repo(), jwtMgr, bl, testLogger()).(*authService)
}

func TestSignup_HashesPasswordAndNormalizesEmail(t *testing.T) {
	store := newMockStore()
	svc := newTestAuthService(store, nil)

	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Alice",
		Email:    "  Alice@Example.COM ",
		Password: "secret123",
		Role:     "student",
	})
	if err != nil {
		t.Fatalf("期望注册成功，实际: %v", err)
	}
	if resp.Email != "alice@example.com" {
		t.Errorf("期望邮箱规范为小写，实际 %q", resp.Email)
	}

	user := store.users.users[resp.ID]
	if user.PasswordHash == "secret123" {
		t.Fatal("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")); err != nil {
		t.Errorf("存储的哈希应能校验原密码: %v", err)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	store := newMockStore()
	svc := newTestAuthService(store, nil)
	ctx := context.Background()

	req := &dto.SignupRequest{Name: "Bob", Email: "bob@example.com", Password: "secret123", Role: "faculty"}
	if _, err := svc.Signup(ctx, req); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}

	req.Email = "BOB@example.com"
	_, err := svc.Signup(ctx, req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	store := newMockStore()
	svc := newTestAuthService(store, nil)
	ctx := context.Background()

	signup, _ := svc.Signup(ctx, &dto.SignupRequest{Name: "Carol", Email: "carol@example.com", Password: "secret123", Role: "faculty"})

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "Carol@Example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("期望登录成功，实际: %v", err)
	}
	if resp.ID != signup.ID || resp.Role != "faculty" {
		t.Errorf("登录响应不匹配: %+v", resp)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("期望 expires_in=3600，实际 %d", resp.ExpiresIn)
	}

	claims, err := svc.jwtMgr.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("Token 应可解析: %v", err)
	}
	if claims.UserID != signup.ID || claims.Role != "faculty" {
		t.Errorf("Token 声明不匹配: %+v", claims)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newMockStore(), nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newMockStore()
	svc := newTestAuthService(store, nil)
	ctx := context.Background()

	svc.Signup(ctx, &dto.SignupRequest{Name: "Dave", Email: "dave@example.com", Password: "secret123", Role: "student"})

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "dave@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("期望 ErrInvalidPassword，实际: %v", err)
	}
}

func TestLogout_BlacklistsRemainingTTL(t *testing.T) {
	bl := &mockBlacklist{}
	svc := newTestAuthService(newMockStore(), bl)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if err := svc.Logout(context.Background(), "jti-1", now.Add(30*time.Minute)); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	if bl.entries["jti-1"] != 30*time.Minute {
		t.Errorf("期望黑名单 TTL=30m，实际 %v", bl.entries["jti-1"])
	}

	// 已过期的 Token 无需加入黑名单
	if err := svc.Logout(context.Background(), "jti-2", now.Add(-time.Minute)); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	if _, ok := bl.entries["jti-2"]; ok {
		t.Error("过期 Token 不应加入黑名单")
	}
}

func TestLogout_WithoutBlacklist(t *testing.T) {
	svc := newTestAuthService(newMockStore(), nil)
	if err := svc.Logout(context.Background(), "jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("无黑名单时登出应成功，实际: %v", err)
	}
}
