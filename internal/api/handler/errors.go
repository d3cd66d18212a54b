package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"lab-scheduler/internal/service"
	"lab-scheduler/pkg/response"
)

// 业务错误码
const (
	codeInvalidParam     = 10001
	codeUnauthenticated  = 10002
	codeNotFound         = 12001
	codeConflict         = 12002
	codeStoreUnavailable = 12003
)

// handleServiceError 统一翻译 Service 层错误
//
//	ValidationError → 400，NotFoundError → 404，
//	ConflictError → 409（data 为冲突记录），StoreError → 503
func handleServiceError(c *gin.Context, err error) {
	var (
		ve *service.ValidationError
		nf *service.NotFoundError
		ce *service.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, codeInvalidParam, "参数校验失败", ve.Error())
	case errors.As(err, &nf):
		response.NotFound(c, codeNotFound, nf.Error())
	case errors.As(err, &ce):
		response.Conflict(c, codeConflict, "排课冲突", gin.H{"conflicts": ce.Entries()})
	case errors.Is(err, service.ErrStore):
		response.ServiceUnavailable(c, codeStoreUnavailable, "存储暂不可用，请稍后重试")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// bindError 请求绑定 / 校验失败
// validator 的字段错误整理为 "field:tag" 列表放入 details
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s:%s", fe.Field(), fe.Tag()))
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, codeInvalidParam, "参数校验失败", strings.Join(fields, ", "))
		return
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		_ = c.Error(err)
		return
	}
	response.BadRequest(c, codeInvalidParam, "参数校验失败")
}
