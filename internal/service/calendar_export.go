package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"lab-scheduler/internal/model"
	"lab-scheduler/internal/repository"
)

const calendarProductID = "-//lab-scheduler//assistant schedule//ZH"

// ═══════════════════════════════════════════════════════════
// ExportAssistantCalendar: 助教周课表导出为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每条 active 排课生成一个按周重复的 VEVENT，首次发生日期取本周对应的星期几。
// 未知工号返回空日历，与周课表查询保持一致。

func (s *exportService) ExportAssistantCalendar(ctx context.Context, labAssistantID string) (*bytes.Buffer, string, error) {
	labAssistantID = strings.TrimSpace(labAssistantID)
	if labAssistantID == "" {
		return nil, "", &ValidationError{Field: "lab_assistant_id", Reason: "不能为空"}
	}

	active := model.StatusActive
	list, err := s.repo.Assignment.ListDetailed(ctx, repository.AssignmentFilter{
		Status:         &active,
		LabAssistantID: labAssistantID,
	})
	if err != nil {
		s.logger.Error("查询助教课表失败", zap.String("lab_assistant_id", labAssistantID), zap.Error(err))
		return nil, "", storeErr("导出助教日历", err)
	}
	list = sortWeekly(list)

	now := s.now().In(s.loc)
	weekStart := mondayOf(now)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName(fmt.Sprintf("实验课表 %s", labAssistantID))
	cal.SetXWRTimezone(s.loc.String())

	for i := range list {
		a := &list[i]
		if a.TimeSlot == nil {
			continue
		}
		start, end, ok := slotOccurrence(weekStart, a.TimeSlot)
		if !ok {
			s.logger.Warn("时间段格式异常，跳过", zap.String("time_slot_id", a.TimeSlot.TimeSlotID))
			continue
		}

		event := cal.AddEvent(a.ScheduleAssignmentID + "@lab-scheduler")
		event.SetDtStampTime(now)
		if !a.CreatedAt.IsZero() {
			event.SetCreatedTime(a.CreatedAt)
		}
		if !a.UpdatedAt.IsZero() {
			event.SetModifiedAt(a.UpdatedAt)
		}
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(calendarSummary(a))
		if a.LabRoom != nil {
			location := a.LabRoom.Name
			if a.LabRoom.Location != "" {
				location += " (" + a.LabRoom.Location + ")"
			}
			event.SetLocation(location)
		}
		event.SetDescription(strings.Join(exportRow(a), " | "))
		event.AddRrule("FREQ=WEEKLY")
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("lab_schedule_%s_%s.ics", labAssistantID, now.Format("20060102"))
	return buf, filename, nil
}

// mondayOf 返回 t 所在周的周一零点
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

func slotOccurrence(weekStart time.Time, ts *model.TimeSlot) (time.Time, time.Time, bool) {
	idx := ts.DayOfWeek.Index()
	if idx < 0 {
		return time.Time{}, time.Time{}, false
	}
	from, err1 := time.Parse("15:04", ts.StartTime)
	to, err2 := time.Parse("15:04", ts.EndTime)
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, false
	}
	day := weekStart.AddDate(0, 0, idx)
	at := func(c time.Time) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location())
	}
	return at(from), at(to), true
}

func calendarSummary(a *model.ScheduleAssignment) string {
	parts := make([]string, 0, 3)
	if a.Course != nil {
		parts = append(parts, a.Course.Code+" "+a.Course.Name)
	}
	if a.Section != nil {
		parts = append(parts, a.Section.Name)
	}
	if a.Group != nil {
		parts = append(parts, a.Group.Name)
	}
	if len(parts) == 0 {
		return "实验课"
	}
	return strings.Join(parts, " · ")
}
