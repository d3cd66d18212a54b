package dto

// ── 实验助教模块 DTO ──

// CreateLabAssistantRequest 创建助教请求
// LabAssistantID 为空时自动分配 LA<year><seq>
type CreateLabAssistantRequest struct {
	LabAssistantID string `json:"lab_assistant_id" binding:"omitempty,min=3,max=20,alphanum"`
	Username       string `json:"username"         binding:"omitempty,max=50"`
	FirstName      string `json:"first_name"       binding:"required,min=1,max=50"`
	LastName       string `json:"last_name"        binding:"required,min=1,max=50"`
	Email          string `json:"email"            binding:"required,email,max=255"`
	Password       string `json:"password"         binding:"required,min=6,max=72"`
	Department     string `json:"department"       binding:"omitempty,max=100"`
}

// UpdateLabAssistantRequest 更新助教请求；业务工号不可修改
type UpdateLabAssistantRequest struct {
	Username   *string `json:"username"   binding:"omitempty,max=50"`
	FirstName  *string `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName   *string `json:"last_name"  binding:"omitempty,min=1,max=50"`
	Email      *string `json:"email"      binding:"omitempty,email,max=255"`
	Department *string `json:"department" binding:"omitempty,max=100"`
}

// ResetPasswordRequest 重置助教密码
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// ChangePasswordRequest 助教修改本人密码
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// LabAssistantResponse 助教信息响应（不含密码哈希）
type LabAssistantResponse struct {
	ID             string `json:"id"`
	LabAssistantID string `json:"lab_assistant_id"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Status         string `json:"status"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// NextLabAssistantIDResponse 下一个可用工号预览
type NextLabAssistantIDResponse struct {
	LabAssistantID string `json:"lab_assistant_id"`
}
