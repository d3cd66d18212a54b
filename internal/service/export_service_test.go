package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"lab-scheduler/internal/model"
)

func setupTestExportService() (*exportService, *mockStore) {
	store := newMockStore()
	store.seedScheduling()
	svc := NewExportService(store.repo, nopLogger(), time.UTC).(*exportService)
	svc.now = func() time.Time { return time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestExportService_ExportAssignments(t *testing.T) {
	svc, store := setupTestExportService()
	g1 := "G1"
	store.putAssignment("A2", "R2", "LA2024002", "S2", model.StatusActive)
	store.putAssignment("A1", "R1", "LA2024001", "S1", model.StatusActive)
	store.assignments.assignments["A1"].GroupID = &g1
	store.putAssignment("OLD", "R1", "LA2024002", "S2", model.StatusInactive)

	buf, filename, err := svc.ExportAssignments(context.Background())
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if filename != "lab_schedule_20240902.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析导出的 Excel: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("排课表")
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	// 标题 + 表头 + 2 条 active 排课
	if len(rows) != 4 {
		t.Fatalf("期望 4 行，实际 %d", len(rows))
	}
	for i, h := range exportHeaders {
		if rows[1][i] != h {
			t.Errorf("表头第 %d 列期望 %s，实际 %s", i, h, rows[1][i])
		}
	}

	// 周一在前
	first := rows[2]
	if first[0] != "Monday" || first[1] != "08:00" || first[4] != "CS301" || first[7] != "A组" || first[10] != "LA2024001" || first[11] != "Ada Lovelace" {
		t.Errorf("第一条数据不符: %v", first)
	}
	second := rows[3]
	if second[0] != "Wednesday" || second[7] != "-" || second[10] != "LA2024002" {
		t.Errorf("第二条数据不符: %v", second)
	}

	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("默认 Sheet1 应被删除")
	}
}

func TestExportService_ExportAssignments_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, _, err := svc.ExportAssignments(context.Background())
	if err != nil {
		t.Fatalf("空数据也应导出成功: %v", err)
	}
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析导出的 Excel: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("排课表")
	if len(rows) != 2 {
		t.Errorf("期望只有标题与表头 2 行，实际 %d", len(rows))
	}
}

func TestExportService_StoreFailure(t *testing.T) {
	svc, store := setupTestExportService()
	store.repo.Assignment = failingAssignmentRepo{store.assignments}

	_, _, err := svc.ExportAssignments(context.Background())
	if !errors.Is(err, ErrStore) {
		t.Errorf("期望 ErrStore，实际: %v", err)
	}
}
