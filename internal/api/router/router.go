package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lab-scheduler/config"
	"lab-scheduler/internal/api/handler"
	"lab-scheduler/internal/api/middleware"
	"lab-scheduler/pkg/jwt"
	"lab-scheduler/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	admin := middleware.RoleAuth(jwt.RoleAdmin)
	writeLimit := middleware.RateLimit(rdb, cfg.Scheduling.WriteRateLimit, cfg.Scheduling.WriteRateWindow, logger)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
	{
		// 实验室
		labRooms := authorized.Group("/lab-rooms")
		{
			labRooms.GET("", h.LabRoom.ListLabRooms)
			labRooms.GET("/:id", h.LabRoom.GetLabRoom)
			labRooms.POST("", admin, writeLimit, h.LabRoom.CreateLabRoom)
			labRooms.PUT("/:id", admin, writeLimit, h.LabRoom.UpdateLabRoom)
			labRooms.DELETE("/:id", admin, writeLimit, h.LabRoom.DeleteLabRoom)
		}

		// 实验助教（含邮箱等个人信息，仅管理员可见；助教本人走 /assistant）
		labAssistants := authorized.Group("/lab-assistants", admin)
		{
			labAssistants.GET("", h.LabAssistant.ListLabAssistants)
			labAssistants.GET("/next-id", h.LabAssistant.NextLabAssistantID)
			labAssistants.GET("/:id", h.LabAssistant.GetLabAssistant)
			labAssistants.POST("", writeLimit, h.LabAssistant.CreateLabAssistant)
			labAssistants.PUT("/:id", writeLimit, h.LabAssistant.UpdateLabAssistant)
			labAssistants.PUT("/:id/password", writeLimit, h.LabAssistant.ResetPassword)
			labAssistants.DELETE("/:id", writeLimit, h.LabAssistant.DeleteLabAssistant)
		}

		// 课程
		courses := authorized.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.GET("/:id", h.Course.GetCourse)
			courses.POST("", admin, writeLimit, h.Course.CreateCourse)
			courses.PUT("/:id", admin, writeLimit, h.Course.UpdateCourse)
			courses.DELETE("/:id", admin, writeLimit, h.Course.DeleteCourse)
		}

		// 教学班与分组
		sections := authorized.Group("/sections")
		{
			sections.GET("", h.Section.ListSections)
			sections.GET("/:id", h.Section.GetSection)
			sections.POST("", admin, writeLimit, h.Section.CreateSection)
			sections.PUT("/:id", admin, writeLimit, h.Section.UpdateSection)
			sections.DELETE("/:id", admin, writeLimit, h.Section.DeleteSection)
			sections.GET("/:id/groups", h.Section.ListGroups)
			sections.POST("/:id/groups", admin, writeLimit, h.Section.CreateGroup)
		}
		groups := authorized.Group("/groups")
		{
			groups.PUT("/:id", admin, writeLimit, h.Section.UpdateGroup)
			groups.DELETE("/:id", admin, writeLimit, h.Section.DeleteGroup)
		}

		// 时间段
		timeSlots := authorized.Group("/time-slots")
		{
			timeSlots.GET("", h.TimeSlot.ListTimeSlots)
			timeSlots.GET("/:id", h.TimeSlot.GetTimeSlot)
			timeSlots.POST("", admin, writeLimit, h.TimeSlot.CreateTimeSlot)
			timeSlots.PUT("/:id", admin, writeLimit, h.TimeSlot.UpdateTimeSlot)
			timeSlots.DELETE("/:id", admin, writeLimit, h.TimeSlot.DeleteTimeSlot)
		}

		// 排课（仅管理员）
		schedules := authorized.Group("/schedules", admin)
		{
			schedules.POST("/check-conflict", h.Schedule.CheckConflict)
			schedules.GET("", h.Schedule.ListAssignments)
			schedules.GET("/export", h.Export.ExportAssignments)
			schedules.GET("/assistant/:labAssistantId", h.Schedule.GetAssistantSchedule)
			schedules.GET("/assistant/:labAssistantId/calendar", h.Export.ExportAssistantCalendar)
			schedules.GET("/:id", h.Schedule.GetAssignment)
			schedules.POST("", writeLimit, h.Schedule.CreateAssignment)
			schedules.PUT("/:id", writeLimit, h.Schedule.UpdateAssignment)
			schedules.DELETE("/:id", writeLimit, h.Schedule.DeleteAssignment)
		}

		// 助教本人视图
		assistant := authorized.Group("/assistant", middleware.RoleAuth(jwt.RoleLabAssistant))
		{
			assistant.GET("/schedule", h.Schedule.GetMySchedule)
			assistant.GET("/schedule/calendar", h.Export.ExportMyCalendar)
			assistant.PUT("/password", writeLimit, h.LabAssistant.ChangeMyPassword)
		}

		authorized.GET("/dashboard", admin, h.Dashboard.Summary)
	}

	return r, nil
}
