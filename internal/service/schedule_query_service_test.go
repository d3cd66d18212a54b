package service

import (
	"context"
	"errors"
	"testing"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/model"
)

func setupScheduleQueryService() (ScheduleQueryService, *mockStore) {
	store := newMockStore()
	store.seedScheduling()
	store.slots.slots["S0"] = &model.TimeSlot{TimeSlotID: "S0", DayOfWeek: model.Sunday, StartTime: "09:00", EndTime: "11:00", SlotType: model.SlotTutorial, Status: model.StatusActive}
	store.slots.slots["S3"] = &model.TimeSlot{TimeSlotID: "S3", DayOfWeek: model.Monday, StartTime: "13:30", EndTime: "15:00", SlotType: model.SlotLecture, Status: model.StatusActive}
	return NewScheduleQueryService(store.repo, nopLogger()), store
}

func slotIDs(list []dto.ScheduleDetailResponse) []string {
	ids := make([]string, 0, len(list))
	for _, d := range list {
		if d.TimeSlot == nil {
			ids = append(ids, "")
			continue
		}
		ids = append(ids, d.TimeSlot.ID)
	}
	return ids
}

func TestScheduleQueryService_AssistantWeeklySchedule(t *testing.T) {
	svc, store := setupScheduleQueryService()
	// 插入顺序故意打乱
	store.putAssignment("A0", "R1", "LA2024001", "S0", model.StatusActive)
	store.putAssignment("A2", "R1", "LA2024001", "S2", model.StatusActive)
	store.putAssignment("A3", "R2", "LA2024001", "S3", model.StatusActive)
	store.putAssignment("A1", "R2", "LA2024001", "S1", model.StatusActive)
	// 其他助教与已下线记录不应出现
	store.putAssignment("B1", "R1", "LA2024002", "S1", model.StatusActive)
	store.putAssignment("OLD", "R1", "LA2024001", "S1", model.StatusInactive)

	list, err := svc.AssistantWeeklySchedule(context.Background(), "LA2024001")
	if err != nil {
		t.Fatalf("查询课表失败: %v", err)
	}

	want := []string{"S1", "S3", "S2", "S0"}
	got := slotIDs(list)
	if len(got) != len(want) {
		t.Fatalf("期望 %v，实际 %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("期望顺序 %v，实际 %v", want, got)
		}
	}
	if list[0].LabRoom == nil || list[0].LabRoom.ID != "R2" {
		t.Errorf("实验室未展开: %+v", list[0].LabRoom)
	}
}

func TestScheduleQueryService_AssistantWeeklySchedule_Empty(t *testing.T) {
	svc, _ := setupScheduleQueryService()

	list, err := svc.AssistantWeeklySchedule(context.Background(), "LA2099999")
	if err != nil {
		t.Fatalf("未知助教应返回空列表，实际: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("期望空数组，实际 %v", list)
	}

	if _, err := svc.AssistantWeeklySchedule(context.Background(), "  "); !errors.Is(err, ErrValidation) {
		t.Errorf("空工号期望 ErrValidation，实际: %v", err)
	}
}

func TestScheduleQueryService_AssistantView(t *testing.T) {
	svc, store := setupScheduleQueryService()
	store.putAssignment("A1", "R1", "LA2024001", "S1", model.StatusActive)

	view, err := svc.AssistantView(context.Background(), "LA2024001")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if view.Assistant.LabAssistantID != "LA2024001" || len(view.Schedules) != 1 {
		t.Errorf("视图不符: %+v", view)
	}

	if _, err := svc.AssistantView(context.Background(), "LA2099999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("期望 ErrNotFound，实际: %v", err)
	}
}

func TestScheduleQueryService_ListAssignments(t *testing.T) {
	svc, store := setupScheduleQueryService()
	store.putAssignment("A1", "R1", "LA2024001", "S1", model.StatusActive)
	store.putAssignment("A2", "R2", "LA2024002", "S2", model.StatusActive)
	store.putAssignment("OLD", "R1", "LA2024001", "S1", model.StatusInactive)

	tests := []struct {
		status string
		want   int
	}{
		{status: "", want: 2},
		{status: "active", want: 2},
		{status: "inactive", want: 1},
		{status: "all", want: 3},
	}
	for _, tt := range tests {
		t.Run("status="+tt.status, func(t *testing.T) {
			list, err := svc.ListAssignments(context.Background(), &dto.AssignmentListRequest{Status: tt.status})
			if err != nil {
				t.Fatalf("查询失败: %v", err)
			}
			if len(list) != tt.want {
				t.Errorf("期望 %d 条，实际 %d", tt.want, len(list))
			}
		})
	}

	if _, err := svc.ListAssignments(context.Background(), &dto.AssignmentListRequest{Status: "deleted"}); !errors.Is(err, ErrValidation) {
		t.Errorf("非法状态期望 ErrValidation，实际: %v", err)
	}
}

func TestSortWeekly_MissingSlotLast(t *testing.T) {
	list := []model.ScheduleAssignment{
		{ScheduleAssignmentID: "orphan"},
		{ScheduleAssignmentID: "fri", TimeSlot: &model.TimeSlot{DayOfWeek: model.Friday, StartTime: "08:00"}},
		{ScheduleAssignmentID: "mon-late", TimeSlot: &model.TimeSlot{DayOfWeek: model.Monday, StartTime: "16:00"}},
		{ScheduleAssignmentID: "mon-early", TimeSlot: &model.TimeSlot{DayOfWeek: model.Monday, StartTime: "08:00"}},
	}

	sorted := sortWeekly(list)
	want := []string{"mon-early", "mon-late", "fri", "orphan"}
	for i, a := range sorted {
		if a.ScheduleAssignmentID != want[i] {
			t.Fatalf("期望顺序 %v，第 %d 个为 %s", want, i, a.ScheduleAssignmentID)
		}
	}
}
