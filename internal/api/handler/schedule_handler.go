package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/service"
	"lab-scheduler/pkg/response"
)

// ScheduleHandler 排课模块 HTTP 处理器
type ScheduleHandler struct {
	conflictSvc   service.ConflictService
	assignmentSvc service.AssignmentService
	querySvc      service.ScheduleQueryService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(
	conflictSvc service.ConflictService,
	assignmentSvc service.AssignmentService,
	querySvc service.ScheduleQueryService,
) *ScheduleHandler {
	return &ScheduleHandler{
		conflictSvc:   conflictSvc,
		assignmentSvc: assignmentSvc,
		querySvc:      querySvc,
	}
}

// CheckConflict 冲突检测（只读）
// POST /api/v1/schedules/check-conflict
func (h *ScheduleHandler) CheckConflict(c *gin.Context) {
	var req dto.CheckConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.conflictSvc.Check(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// ListAssignments 管理端排课列表
// GET /api/v1/schedules?status=active|inactive|all
func (h *ScheduleHandler) ListAssignments(c *gin.Context) {
	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.querySvc.ListAssignments(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetAssignment 排课详情
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetAssignment(c *gin.Context) {
	id, ok := pathID(c, "id", "排课")
	if !ok {
		return
	}

	detail, err := h.assignmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, detail)
}

// CreateAssignment 创建排课
// POST /api/v1/schedules
// 冲突时返回 409，data.conflicts 为全部冲突记录
func (h *ScheduleHandler) CreateAssignment(c *gin.Context) {
	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	a, err := h.assignmentSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, a)
}

// UpdateAssignment 更新排课（整体替换）
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) UpdateAssignment(c *gin.Context) {
	id, ok := pathID(c, "id", "排课")
	if !ok {
		return
	}

	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	a, err := h.assignmentSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, a)
}

// DeleteAssignment 下线排课
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteAssignment(c *gin.Context) {
	id, ok := pathID(c, "id", "排课")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.assignmentSvc.Retire(c.Request.Context(), id, callerID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetAssistantSchedule 指定助教的周课表（管理端）
// GET /api/v1/schedules/assistant/:labAssistantId
func (h *ScheduleHandler) GetAssistantSchedule(c *gin.Context) {
	labAssistantID := strings.TrimSpace(c.Param("labAssistantId"))
	if labAssistantID == "" {
		response.BadRequest(c, codeInvalidParam, "助教工号不能为空")
		return
	}

	list, err := h.querySvc.AssistantWeeklySchedule(c.Request.Context(), labAssistantID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetMySchedule 助教本人的信息与周课表；工号取自 Token
// GET /api/v1/assistant/schedule
func (h *ScheduleHandler) GetMySchedule(c *gin.Context) {
	labAssistantID, ok := MustGetLabAssistantID(c)
	if !ok {
		return
	}

	view, err := h.querySvc.AssistantView(c.Request.Context(), labAssistantID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, view)
}
