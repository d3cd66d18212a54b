package handler

import (
	"github.com/gin-gonic/gin"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/service"
	"lab-scheduler/pkg/response"
)

// LabRoomHandler 实验室模块 HTTP 处理器
type LabRoomHandler struct {
	labRoomSvc service.LabRoomService
}

// NewLabRoomHandler 创建 LabRoomHandler
func NewLabRoomHandler(labRoomSvc service.LabRoomService) *LabRoomHandler {
	return &LabRoomHandler{labRoomSvc: labRoomSvc}
}

// ListLabRooms 获取实验室列表
// GET /api/v1/lab-rooms?include_inactive=true
func (h *LabRoomHandler) ListLabRooms(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	rooms, err := h.labRoomSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rooms})
}

// GetLabRoom 获取实验室详情
// GET /api/v1/lab-rooms/:id
func (h *LabRoomHandler) GetLabRoom(c *gin.Context) {
	id, ok := pathID(c, "id", "实验室")
	if !ok {
		return
	}

	room, err := h.labRoomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, room)
}

// CreateLabRoom 创建实验室
// POST /api/v1/lab-rooms
func (h *LabRoomHandler) CreateLabRoom(c *gin.Context) {
	var req dto.CreateLabRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.labRoomSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, room)
}

// UpdateLabRoom 更新实验室
// PUT /api/v1/lab-rooms/:id
func (h *LabRoomHandler) UpdateLabRoom(c *gin.Context) {
	id, ok := pathID(c, "id", "实验室")
	if !ok {
		return
	}

	var req dto.UpdateLabRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.labRoomSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, room)
}

// DeleteLabRoom 停用实验室（软删除）
// DELETE /api/v1/lab-rooms/:id
func (h *LabRoomHandler) DeleteLabRoom(c *gin.Context) {
	id, ok := pathID(c, "id", "实验室")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.labRoomSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}
