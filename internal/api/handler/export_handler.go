package handler

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"lab-scheduler/internal/service"
	"lab-scheduler/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAssignments 导出当前 active 排课表
// GET /api/v1/schedules/export
func (h *ExportHandler) ExportAssignments(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportAssignments(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	attachment(c, xlsxContentType, filename, buf)
}

// ExportAssistantCalendar 指定助教周课表的 iCalendar 文件（管理端）
// GET /api/v1/schedules/assistant/:labAssistantId/calendar
func (h *ExportHandler) ExportAssistantCalendar(c *gin.Context) {
	labAssistantID := strings.TrimSpace(c.Param("labAssistantId"))
	if labAssistantID == "" {
		response.BadRequest(c, codeInvalidParam, "助教工号不能为空")
		return
	}
	h.writeCalendar(c, labAssistantID)
}

// ExportMyCalendar 助教本人周课表的 iCalendar 文件
// GET /api/v1/assistant/schedule/calendar
func (h *ExportHandler) ExportMyCalendar(c *gin.Context) {
	labAssistantID, ok := MustGetLabAssistantID(c)
	if !ok {
		return
	}
	h.writeCalendar(c, labAssistantID)
}

func (h *ExportHandler) writeCalendar(c *gin.Context, labAssistantID string) {
	buf, filename, err := h.exportSvc.ExportAssistantCalendar(c.Request.Context(), labAssistantID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	attachment(c, icsContentType, filename, buf)
}

// attachment 以附件形式写出文件内容
func attachment(c *gin.Context, contentType, filename string, buf *bytes.Buffer) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
