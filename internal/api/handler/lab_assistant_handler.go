package handler

import (
	"github.com/gin-gonic/gin"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/service"
	"lab-scheduler/pkg/response"
)

// LabAssistantHandler 实验助教模块 HTTP 处理器
type LabAssistantHandler struct {
	labAssistantSvc service.LabAssistantService
}

// NewLabAssistantHandler 创建 LabAssistantHandler
func NewLabAssistantHandler(labAssistantSvc service.LabAssistantService) *LabAssistantHandler {
	return &LabAssistantHandler{labAssistantSvc: labAssistantSvc}
}

// ListLabAssistants 获取助教列表
// GET /api/v1/lab-assistants
func (h *LabAssistantHandler) ListLabAssistants(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.labAssistantSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetLabAssistant 获取助教详情
// GET /api/v1/lab-assistants/:id
func (h *LabAssistantHandler) GetLabAssistant(c *gin.Context) {
	id, ok := pathID(c, "id", "助教")
	if !ok {
		return
	}

	a, err := h.labAssistantSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, a)
}

// NextLabAssistantID 预览下一个自动分配的工号
// GET /api/v1/lab-assistants/next-id
func (h *LabAssistantHandler) NextLabAssistantID(c *gin.Context) {
	resp, err := h.labAssistantSvc.NextID(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, resp)
}

// CreateLabAssistant 创建助教；lab_assistant_id 为空时自动分配
// POST /api/v1/lab-assistants
func (h *LabAssistantHandler) CreateLabAssistant(c *gin.Context) {
	var req dto.CreateLabAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	a, err := h.labAssistantSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, a)
}

// UpdateLabAssistant 更新助教信息
// PUT /api/v1/lab-assistants/:id
func (h *LabAssistantHandler) UpdateLabAssistant(c *gin.Context) {
	id, ok := pathID(c, "id", "助教")
	if !ok {
		return
	}

	var req dto.UpdateLabAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	a, err := h.labAssistantSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, a)
}

// ResetPassword 重置助教密码
// PUT /api/v1/lab-assistants/:id/password
func (h *LabAssistantHandler) ResetPassword(c *gin.Context) {
	id, ok := pathID(c, "id", "助教")
	if !ok {
		return
	}

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.labAssistantSvc.ResetPassword(c.Request.Context(), id, &req, callerID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ChangeMyPassword 助教修改本人密码；工号取自 Token
// PUT /api/v1/assistant/password
func (h *LabAssistantHandler) ChangeMyPassword(c *gin.Context) {
	labAssistantID, ok := MustGetLabAssistantID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.labAssistantSvc.ChangePassword(c.Request.Context(), labAssistantID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteLabAssistant 停用助教
// DELETE /api/v1/lab-assistants/:id
func (h *LabAssistantHandler) DeleteLabAssistant(c *gin.Context) {
	id, ok := pathID(c, "id", "助教")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.labAssistantSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}
