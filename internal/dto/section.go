package dto

// ── 教学班 / 分组模块 DTO ──

// CreateSectionRequest 创建教学班请求
type CreateSectionRequest struct {
	Name       string `json:"name"       binding:"required,min=1,max=100"`
	Year       int    `json:"year"       binding:"required,min=1,max=5"`
	Department string `json:"department" binding:"omitempty,max=100"`
	Capacity   int    `json:"capacity"   binding:"required,gt=0"`
}

// UpdateSectionRequest 更新教学班请求
type UpdateSectionRequest struct {
	Name       *string `json:"name"       binding:"omitempty,min=1,max=100"`
	Year       *int    `json:"year"       binding:"omitempty,min=1,max=5"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Capacity   *int    `json:"capacity"   binding:"omitempty,gt=0"`
}

// SectionResponse 教学班信息响应（含 active 分组）
type SectionResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Year       int             `json:"year"`
	Department string          `json:"department"`
	Capacity   int             `json:"capacity"`
	Status     string          `json:"status"`
	IsActive   bool            `json:"is_active"`
	Groups     []GroupResponse `json:"groups"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

// CreateGroupRequest 创建分组请求；所属教学班取自路径参数
type CreateGroupRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

// UpdateGroupRequest 更新分组请求；分组不可转移到其他教学班
type UpdateGroupRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=100"`
	Capacity *int    `json:"capacity" binding:"omitempty,gt=0"`
}

// GroupResponse 分组信息响应
type GroupResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SectionID string `json:"section_id"`
	Capacity  int    `json:"capacity"`
	Status    string `json:"status"`
	IsActive  bool   `json:"is_active"`
}
