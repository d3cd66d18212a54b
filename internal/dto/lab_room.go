package dto

// ── 实验室模块 DTO ──

// CreateLabRoomRequest 创建实验室请求
type CreateLabRoomRequest struct {
	Name      string   `json:"name"      binding:"required,min=1,max=100"`
	Capacity  int      `json:"capacity"  binding:"required,gt=0"`
	Location  string   `json:"location"  binding:"omitempty,max=200"`
	Equipment []string `json:"equipment" binding:"omitempty,dive,max=100"`
}

// UpdateLabRoomRequest 更新实验室请求
type UpdateLabRoomRequest struct {
	Name      *string   `json:"name"      binding:"omitempty,min=1,max=100"`
	Capacity  *int      `json:"capacity"  binding:"omitempty,gt=0"`
	Location  *string   `json:"location"  binding:"omitempty,max=200"`
	Equipment *[]string `json:"equipment" binding:"omitempty,dive,max=100"`
}

// LabRoomResponse 实验室信息响应
type LabRoomResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Location  string   `json:"location"`
	Equipment []string `json:"equipment"`
	Status    string   `json:"status"`
	IsActive  bool     `json:"is_active"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}
