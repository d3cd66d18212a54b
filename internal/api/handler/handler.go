package handler

import "lab-scheduler/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	LabRoom      *LabRoomHandler
	LabAssistant *LabAssistantHandler
	Course       *CourseHandler
	Section      *SectionHandler
	TimeSlot     *TimeSlotHandler
	Schedule     *ScheduleHandler
	Export       *ExportHandler
	Dashboard    *DashboardHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		LabRoom:      NewLabRoomHandler(svc.LabRoom),
		LabAssistant: NewLabAssistantHandler(svc.LabAssistant),
		Course:       NewCourseHandler(svc.Course),
		Section:      NewSectionHandler(svc.Section),
		TimeSlot:     NewTimeSlotHandler(svc.TimeSlot),
		Schedule:     NewScheduleHandler(svc.Conflict, svc.Assignment, svc.ScheduleQuery),
		Export:       NewExportHandler(svc.Export),
		Dashboard:    NewDashboardHandler(svc.Dashboard),
	}
}
