package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yashjd12/attendance-tracker/internal/model"
)

func TestGetProfile_EnrollmentYear(t *testing.T) {
	store := newMockStore()
	u := store.users.add(1, "Alice", model.RoleStudent)
	u.CreatedAt = time.Date(2023, 8, 15, 9, 0, 0, 0, time.UTC)

	svc := NewUserService(store.repo(), testLogger())
	profile, err := svc.GetProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetProfile 失败: %v", err)
	}
	if profile.EnrollmentYear != "2023" {
		t.Errorf("期望入学年份 2023，实际 %q", profile.EnrollmentYear)
	}
	if profile.Name != "Alice" || profile.Role != model.RoleStudent {
		t.Errorf("资料不匹配: %+v", profile)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := NewUserService(newMockStore().repo(), testLogger())
	_, err := svc.GetProfile(context.Background(), 42)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
