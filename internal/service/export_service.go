package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"lab-scheduler/internal/model"
	"lab-scheduler/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
//   - 导出全部 active 排课为 Excel (.xlsx)，排序与周课表一致
//   - 以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 无排课时仍导出仅含表头的文件
//   - 助教周课表另可导出为 iCalendar (.ics)，供日历客户端订阅
type ExportService interface {
	ExportAssignments(ctx context.Context) (*bytes.Buffer, string, error)
	ExportAssistantCalendar(ctx context.Context, labAssistantID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
	loc    *time.Location
}

// NewExportService 创建 ExportService 实例
// 时间段的 "HH:MM" 按 loc 解释；loc 为 nil 时使用 time.Local
func NewExportService(repo *repository.Repository, logger *zap.Logger, loc *time.Location) ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &exportService{repo: repo, logger: logger, now: time.Now, loc: loc}
}

var exportHeaders = []string{
	"星期", "开始", "结束", "类型",
	"课程代码", "课程名称", "教学班", "分组",
	"实验室", "地点", "助教工号", "助教姓名",
}

// ═══════════════════════════════════════════════════════════
// ExportAssignments: 导出排课表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "排课表"
//   - 第 1 行标题，第 2 行表头，第 3 行起每条排课一行
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportAssignments(ctx context.Context) (*bytes.Buffer, string, error) {
	active := model.StatusActive
	list, err := s.repo.Assignment.ListDetailed(ctx, repository.AssignmentFilter{Status: &active})
	if err != nil {
		s.logger.Error("查询排课失败", zap.Error(err))
		return nil, "", storeErr("导出排课", err)
	}
	list = sortWeekly(list)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "排课表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	for i := range exportHeaders {
		col := colName(i)
		width := 14.0
		if i == 5 || i == 11 {
			width = 24
		}
		f.SetColWidth(sheetName, col, col, width)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("实验室排课表（%s）", s.now().Format("2006-01-02")))
	f.MergeCell(sheetName, "A1", cell(colName(len(exportHeaders)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range exportHeaders {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(exportHeaders)-1), 2), headerStyle)

	// 数据行
	for i := range list {
		row := 3 + i
		for col, v := range exportRow(&list[i]) {
			f.SetCellValue(sheetName, cell(colName(col), row), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("lab_schedule_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

func exportRow(a *model.ScheduleAssignment) []string {
	row := make([]string, len(exportHeaders))
	for i := range row {
		row[i] = "-"
	}
	if ts := a.TimeSlot; ts != nil {
		row[0], row[1], row[2], row[3] = string(ts.DayOfWeek), ts.StartTime, ts.EndTime, string(ts.SlotType)
	}
	if c := a.Course; c != nil {
		row[4], row[5] = c.Code, c.Name
	}
	if sec := a.Section; sec != nil {
		row[6] = sec.Name
	}
	if g := a.Group; g != nil {
		row[7] = g.Name
	}
	if r := a.LabRoom; r != nil {
		row[8] = r.Name
		if r.Location != "" {
			row[9] = r.Location
		}
	}
	row[10] = a.LabAssistantID
	if la := a.LabAssistant; la != nil {
		row[11] = la.FullName()
	}
	return row
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
