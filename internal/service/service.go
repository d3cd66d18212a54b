package service

import (
	"time"

	"go.uber.org/zap"

	"lab-scheduler/config"
	"lab-scheduler/internal/repository"
	applogger "lab-scheduler/pkg/logger"
)

// Service 所有 Service 的聚合入口
type Service struct {
	LabRoom       LabRoomService
	LabAssistant  LabAssistantService
	Course        CourseService
	Section       SectionService
	TimeSlot      TimeSlotService
	Conflict      ConflictService
	Assignment    AssignmentService
	ScheduleQuery ScheduleQueryService
	Export        ExportService
	Dashboard     DashboardService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	logger *zap.Logger,
) *Service {
	entityLog := applogger.Component(logger, applogger.ComponentEntity)
	exportLog := applogger.Component(logger, applogger.ComponentExport)

	return &Service{
		LabRoom:       NewLabRoomService(repo, entityLog),
		LabAssistant:  NewLabAssistantService(repo, applogger.Component(logger, applogger.ComponentAllocator), cfg.Scheduling.IDAllocMaxAttempts),
		Course:        NewCourseService(repo, entityLog),
		Section:       NewSectionService(repo, entityLog),
		TimeSlot:      NewTimeSlotService(repo, entityLog),
		Conflict:      NewConflictService(repo, applogger.Component(logger, applogger.ComponentConflict)),
		Assignment:    NewAssignmentService(repo, applogger.Component(logger, applogger.ComponentAssignment), cfg.Scheduling.CommitMaxAttempts),
		ScheduleQuery: NewScheduleQueryService(repo, applogger.Component(logger, applogger.ComponentQuery)),
		Export:        NewExportService(repo, exportLog, scheduleLocation(cfg.Scheduling.Timezone, exportLog)),
		Dashboard:     NewDashboardService(repo, entityLog),
	}
}

// scheduleLocation 解析排课时区，失败时回退到 time.Local
func scheduleLocation(name string, logger *zap.Logger) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("排课时区无效，使用本地时区", zap.String("timezone", name), zap.Error(err))
		return time.Local
	}
	return loc
}
