package service

import (
	"context"
	"errors"
	"testing"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/model"
	"lab-scheduler/internal/repository"
)

func setupConflictService() (ConflictService, *mockStore) {
	store := newMockStore()
	store.seedScheduling()
	return NewConflictService(store.repo, nopLogger()), store
}

// putAssignment 直接写入一条排课记录，绕过服务层校验
func (s *mockStore) putAssignment(id, room, assistant, slot string, status model.Status) {
	a := &model.ScheduleAssignment{
		ScheduleAssignmentID: id,
		CourseID:             "C1",
		SectionID:            "SEC1",
		LabRoomID:            room,
		LabAssistantID:       assistant,
		TimeSlotID:           slot,
		Status:               status,
	}
	if err := s.assignments.Create(context.Background(), a); err != nil {
		panic(err)
	}
}

func conflictIDs(conflicts []Conflict) []string {
	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.Assignment.ScheduleAssignmentID)
	}
	return ids
}

func TestConflictService_FindConflicts(t *testing.T) {
	svc, store := setupConflictService()
	// A: R1 / T1 / S1
	store.putAssignment("A", "R1", "LA2024001", "S1", model.StatusActive)

	tests := []struct {
		name    string
		cand    repository.ConflictCandidate
		wantIDs []string
		wantDim ConflictDimension
	}{
		{
			name:    "同室同时段",
			cand:    repository.ConflictCandidate{LabRoomID: "R1", LabAssistantID: "LA2024002", TimeSlotID: "S1"},
			wantIDs: []string{"A"},
			wantDim: DimensionRoom,
		},
		{
			name:    "同助教同时段",
			cand:    repository.ConflictCandidate{LabRoomID: "R2", LabAssistantID: "LA2024001", TimeSlotID: "S1"},
			wantIDs: []string{"A"},
			wantDim: DimensionAssistant,
		},
		{
			name:    "实验室与助教同时冲突只算一条",
			cand:    repository.ConflictCandidate{LabRoomID: "R1", LabAssistantID: "LA2024001", TimeSlotID: "S1"},
			wantIDs: []string{"A"},
			wantDim: DimensionRoomAndAssistant,
		},
		{
			name: "不同实验室不同助教",
			cand: repository.ConflictCandidate{LabRoomID: "R2", LabAssistantID: "LA2024002", TimeSlotID: "S1"},
		},
		{
			name: "不同时间段",
			cand: repository.ConflictCandidate{LabRoomID: "R1", LabAssistantID: "LA2024001", TimeSlotID: "S2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts, err := svc.FindConflicts(context.Background(), tt.cand, "")
			if err != nil {
				t.Fatalf("FindConflicts 失败: %v", err)
			}
			ids := conflictIDs(conflicts)
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("期望冲突 %v，实际 %v", tt.wantIDs, ids)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("期望冲突 %v，实际 %v", tt.wantIDs, ids)
				}
			}
			if len(conflicts) == 1 && conflicts[0].Dimension != tt.wantDim {
				t.Errorf("期望维度 %s，实际 %s", tt.wantDim, conflicts[0].Dimension)
			}
		})
	}
}

func TestConflictService_FindConflicts_ReturnsWholeSet(t *testing.T) {
	svc, store := setupConflictService()
	store.putAssignment("A", "R1", "LA2024001", "S1", model.StatusActive)
	store.putAssignment("B", "R2", "LA2024002", "S1", model.StatusActive)

	// 同时撞上 A 的实验室和 B 的助教
	conflicts, err := svc.FindConflicts(context.Background(), repository.ConflictCandidate{
		LabRoomID: "R1", LabAssistantID: "LA2024002", TimeSlotID: "S1",
	}, "")
	if err != nil {
		t.Fatalf("FindConflicts 失败: %v", err)
	}
	if len(conflicts) != 2 {
		t.Fatalf("期望 2 条冲突，实际 %d", len(conflicts))
	}
	dims := map[string]ConflictDimension{}
	for _, c := range conflicts {
		dims[c.Assignment.ScheduleAssignmentID] = c.Dimension
	}
	if dims["A"] != DimensionRoom || dims["B"] != DimensionAssistant {
		t.Errorf("维度不符: %v", dims)
	}
}

func TestConflictService_InactiveIgnored(t *testing.T) {
	svc, store := setupConflictService()
	store.putAssignment("OLD", "R1", "LA2024001", "S1", model.StatusInactive)

	conflicts, err := svc.FindConflicts(context.Background(), repository.ConflictCandidate{
		LabRoomID: "R1", LabAssistantID: "LA2024001", TimeSlotID: "S1",
	}, "")
	if err != nil {
		t.Fatalf("FindConflicts 失败: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("inactive 记录不应参与冲突，实际 %v", conflictIDs(conflicts))
	}
}

func TestConflictService_ExcludeSelf(t *testing.T) {
	svc, store := setupConflictService()
	store.putAssignment("A", "R1", "LA2024001", "S1", model.StatusActive)

	conflicts, err := svc.FindConflicts(context.Background(), repository.ConflictCandidate{
		LabRoomID: "R1", LabAssistantID: "LA2024001", TimeSlotID: "S1",
	}, "A")
	if err != nil {
		t.Fatalf("FindConflicts 失败: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("排除自身后不应有冲突，实际 %v", conflictIDs(conflicts))
	}
}

func TestConflictService_MissingField(t *testing.T) {
	svc, _ := setupConflictService()

	_, err := svc.FindConflicts(context.Background(), repository.ConflictCandidate{
		LabRoomID: "R1", TimeSlotID: "S1",
	}, "")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "lab_assistant_id" {
		t.Errorf("期望 lab_assistant_id 校验错误，实际: %v", err)
	}
}

func TestConflictService_StoreFailure(t *testing.T) {
	svc, store := setupConflictService()
	store.assignments.findErr = errors.New("connection reset")

	_, err := svc.FindConflicts(context.Background(), repository.ConflictCandidate{
		LabRoomID: "R1", LabAssistantID: "LA2024001", TimeSlotID: "S1",
	}, "")
	if !errors.Is(err, ErrStore) {
		t.Errorf("期望 ErrStore，实际: %v", err)
	}
}

func TestConflictService_FindConflicts_TrimsCandidate(t *testing.T) {
	svc, store := setupConflictService()
	store.putAssignment("A", "R1", "LA2024001", "S1", model.StatusActive)

	got, err := svc.FindConflicts(context.Background(), repository.ConflictCandidate{
		LabRoomID: " R1", LabAssistantID: "LA2024002 ", TimeSlotID: " S1 ",
	}, "")
	if err != nil {
		t.Fatalf("FindConflicts 失败: %v", err)
	}
	if ids := conflictIDs(got); len(ids) != 1 || ids[0] != "A" {
		t.Errorf("期望 [A]，实际 %v", ids)
	}

	if _, err := svc.FindConflicts(context.Background(), repository.ConflictCandidate{
		LabRoomID: "  ", LabAssistantID: "LA2024002", TimeSlotID: "S1",
	}, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("纯空白 id 期望 ErrValidation，实际: %v", err)
	}
}

func TestConflictService_Check(t *testing.T) {
	svc, store := setupConflictService()
	store.putAssignment("A", "R1", "LA2024001", "S1", model.StatusActive)

	resp, err := svc.Check(context.Background(), &dto.CheckConflictRequest{
		LabRoomID: "R1", LabAssistantID: "LA2024002", TimeSlotID: "S1",
	})
	if err != nil {
		t.Fatalf("Check 失败: %v", err)
	}
	if !resp.HasConflict || len(resp.Conflicts) != 1 {
		t.Fatalf("期望 1 条冲突，实际 %+v", resp)
	}
	if resp.Conflicts[0].Assignment.ID != "A" || resp.Conflicts[0].Dimension != "room" {
		t.Errorf("冲突内容不符: %+v", resp.Conflicts[0])
	}

	exclude := "A"
	resp, err = svc.Check(context.Background(), &dto.CheckConflictRequest{
		LabRoomID: "R1", LabAssistantID: "LA2024002", TimeSlotID: "S1", ExcludeAssignmentID: &exclude,
	})
	if err != nil {
		t.Fatalf("Check 失败: %v", err)
	}
	if resp.HasConflict || resp.Conflicts == nil {
		t.Errorf("期望无冲突且 conflicts 为空数组，实际 %+v", resp)
	}
}
