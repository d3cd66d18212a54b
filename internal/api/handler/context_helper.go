package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lab-scheduler/pkg/response"
)

// 由 JWTAuth 中间件注入的上下文键
const (
	ctxUserID         = "user_id"
	ctxRole           = "role"
	ctxLabAssistantID = "lab_assistant_id"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, ctxUserID)
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, ctxRole)
}

// MustGetLabAssistantID 从 Gin 上下文中提取助教工号（仅 lab_assistant 角色的 Token 携带）
func MustGetLabAssistantID(c *gin.Context) (string, bool) {
	return mustGetString(c, ctxLabAssistantID)
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, codeUnauthenticated, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, codeUnauthenticated, "未认证")
		return "", false
	}
	return s, true
}

// pathID 读取并校验 UUID 格式的路径参数
func pathID(c *gin.Context, name, label string) (string, bool) {
	id := c.Param(name)
	if id == "" {
		response.BadRequest(c, codeInvalidParam, label+"ID不能为空")
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, codeInvalidParam, label+"ID格式无效")
		return "", false
	}
	return id, true
}
