package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yashjd12/attendance-tracker/internal/dto"
	"github.com/yashjd12/attendance-tracker/internal/model"
)

func newLeaveFixture() (*mockStore, LeaveService) {
	store := newMockStore()
	store.course(7, "Networks")
	store.users.add(1, "Alice", model.RoleStudent)
	store.users.add(9, "Prof Smith", model.RoleFaculty)
	store.enrollments.links[linkKey{1, 7}] = true
	return store, NewLeaveService(store.repo(), testLogger())
}

func leaveReq() *dto.CreateLeaveRequest {
	return &dto.CreateLeaveRequest{
		StudentID:      1,
		CourseID:       7,
		LeaveStartDate: "2024-05-01",
		LeaveEndDate:   "2024-05-03",
		Reason:         "fever",
	}
}

func TestNormalizeLeaveStatus(t *testing.T) {
	cases := map[string]string{
		"approved": "Approved",
		"REJECTED": "Rejected",
		" Pending": "Pending",
	}
	for in, want := range cases {
		got, ok := NormalizeLeaveStatus(in)
		if !ok || got != want {
			t.Errorf("NormalizeLeaveStatus(%q) = %q, %v; 期望 %q", in, got, ok, want)
		}
	}
	if _, ok := NormalizeLeaveStatus("maybe"); ok {
		t.Error("非法状态应返回 false")
	}
}

func TestApplyLeave_Pending(t *testing.T) {
	_, svc := newLeaveFixture()

	resp, err := svc.Apply(context.Background(), leaveReq())
	if err != nil {
		t.Fatalf("申请请假失败: %v", err)
	}
	if resp.Status != model.LeaveStatusPending || resp.CourseName != "Networks" || resp.StudentName != "Alice" {
		t.Errorf("请假响应错误: %+v", resp)
	}
	if resp.LeaveStartDate != "2024-05-01" || resp.LeaveEndDate != "2024-05-03" {
		t.Errorf("日期错误: %+v", resp)
	}
}

func TestApplyLeave_EndBeforeStart(t *testing.T) {
	_, svc := newLeaveFixture()
	req := leaveReq()
	req.LeaveEndDate = "2024-04-30"

	if _, err := svc.Apply(context.Background(), req); !errors.Is(err, ErrInvalidLeaveRange) {
		t.Errorf("期望 ErrInvalidLeaveRange，实际: %v", err)
	}
}

func TestApplyLeave_NotEnrolled(t *testing.T) {
	store, svc := newLeaveFixture()
	delete(store.enrollments.links, linkKey{1, 7})

	if _, err := svc.Apply(context.Background(), leaveReq()); !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("期望 ErrNotEnrolled，实际: %v", err)
	}
}

func TestUpdateLeave_NormalizesAndNotifies(t *testing.T) {
	store, svc := newLeaveFixture()
	ctx := context.Background()
	created, _ := svc.Apply(ctx, leaveReq())

	resp, err := svc.Update(ctx, created.ID, &dto.UpdateLeaveRequest{Status: "approved", Comment: "get well"})
	if err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	if resp.Status != "Approved" || resp.Comment != "get well" {
		t.Errorf("审批响应错误: %+v", resp)
	}
	if store.leaves.leaves[created.ID].Status != "Approved" {
		t.Error("请假状态应持久化")
	}

	if len(store.notifications.list) != 1 {
		t.Fatalf("期望 1 条请假通知，实际 %d", len(store.notifications.list))
	}
	n := store.notifications.list[0]
	if n.NotificationType != model.NotificationTypeLeave || n.StudentID != 1 {
		t.Errorf("通知类型或学生错误: %+v", n)
	}
	if n.Comment != "Status:Approved, Date:2024-05-01 to 2024-05-03, Comment:get well" {
		t.Errorf("旧版文本错误: %q", n.Comment)
	}

	pending, _ := svc.ListPendingForFaculty(ctx, 9)
	if len(pending) != 0 {
		t.Errorf("审批后不应再待审批，实际 %d", len(pending))
	}
}

func TestUpdateLeave_InvalidStatus(t *testing.T) {
	store, svc := newLeaveFixture()
	ctx := context.Background()
	created, _ := svc.Apply(ctx, leaveReq())

	_, err := svc.Update(ctx, created.ID, &dto.UpdateLeaveRequest{Status: "maybe"})
	if !errors.Is(err, ErrInvalidLeaveStatus) {
		t.Errorf("期望 ErrInvalidLeaveStatus，实际: %v", err)
	}
	if len(store.notifications.list) != 0 {
		t.Error("非法状态不应产生通知")
	}
}

func TestUpdateLeave_NotFound(t *testing.T) {
	_, svc := newLeaveFixture()
	_, err := svc.Update(context.Background(), 99, &dto.UpdateLeaveRequest{Status: "Approved"})
	if !errors.Is(err, ErrLeaveNotFound) {
		t.Errorf("期望 ErrLeaveNotFound，实际: %v", err)
	}
}

func TestUpdateLeave_NotificationFailure(t *testing.T) {
	store, svc := newLeaveFixture()
	ctx := context.Background()
	created, _ := svc.Apply(ctx, leaveReq())
	store.notifications.createErr = errors.New("disk full")

	if _, err := svc.Update(ctx, created.ID, &dto.UpdateLeaveRequest{Status: "Rejected"}); err == nil {
		t.Error("通知写入失败时审批应返回错误")
	}
}

func TestListLeavesByStudent(t *testing.T) {
	_, svc := newLeaveFixture()
	ctx := context.Background()
	svc.Apply(ctx, leaveReq())
	svc.Apply(ctx, leaveReq())

	list, err := svc.ListByStudent(ctx, 1)
	if err != nil || len(list) != 2 {
		t.Errorf("期望 2 条请假，实际 %d, err=%v", len(list), err)
	}
}
