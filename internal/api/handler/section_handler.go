package handler

import (
	"github.com/gin-gonic/gin"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/service"
	"lab-scheduler/pkg/response"
)

// SectionHandler 教学班 / 分组模块 HTTP 处理器
type SectionHandler struct {
	sectionSvc service.SectionService
}

// NewSectionHandler 创建 SectionHandler
func NewSectionHandler(sectionSvc service.SectionService) *SectionHandler {
	return &SectionHandler{sectionSvc: sectionSvc}
}

// ────────────────────── 教学班 ──────────────────────

// ListSections GET /api/v1/sections
func (h *SectionHandler) ListSections(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	sections, err := h.sectionSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"list": sections})
}

// GetSection GET /api/v1/sections/:id
func (h *SectionHandler) GetSection(c *gin.Context) {
	id, ok := pathID(c, "id", "教学班")
	if !ok {
		return
	}

	section, err := h.sectionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, section)
}

// CreateSection POST /api/v1/sections
func (h *SectionHandler) CreateSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	section, err := h.sectionSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, section)
}

// UpdateSection PUT /api/v1/sections/:id
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	id, ok := pathID(c, "id", "教学班")
	if !ok {
		return
	}
	var req dto.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	section, err := h.sectionSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, section)
}

// DeleteSection DELETE /api/v1/sections/:id
func (h *SectionHandler) DeleteSection(c *gin.Context) {
	id, ok := pathID(c, "id", "教学班")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.sectionSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── 分组 ──────────────────────

// ListGroups GET /api/v1/sections/:id/groups
func (h *SectionHandler) ListGroups(c *gin.Context) {
	sectionID, ok := pathID(c, "id", "教学班")
	if !ok {
		return
	}
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	groups, err := h.sectionSvc.ListGroups(c.Request.Context(), sectionID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"list": groups})
}

// CreateGroup POST /api/v1/sections/:id/groups
func (h *SectionHandler) CreateGroup(c *gin.Context) {
	sectionID, ok := pathID(c, "id", "教学班")
	if !ok {
		return
	}
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	group, err := h.sectionSvc.CreateGroup(c.Request.Context(), sectionID, &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, group)
}

// UpdateGroup PUT /api/v1/groups/:id
func (h *SectionHandler) UpdateGroup(c *gin.Context) {
	id, ok := pathID(c, "id", "分组")
	if !ok {
		return
	}
	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	group, err := h.sectionSvc.UpdateGroup(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, group)
}

// DeleteGroup DELETE /api/v1/groups/:id
func (h *SectionHandler) DeleteGroup(c *gin.Context) {
	id, ok := pathID(c, "id", "分组")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.sectionSvc.DeleteGroup(c.Request.Context(), id, callerID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, nil)
}
