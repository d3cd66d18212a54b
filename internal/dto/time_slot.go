package dto

// ── 时间段模块 DTO ──

// CreateTimeSlotRequest 创建时间段请求
type CreateTimeSlotRequest struct {
	DayOfWeek string `json:"day_of_week" binding:"required,weekday"` // "Monday"
	StartTime string `json:"start_time"  binding:"required,hhmm"`    // "08:00"
	EndTime   string `json:"end_time"    binding:"required,hhmm"`    // "10:00"
	SlotType  string `json:"slot_type"   binding:"omitempty,slot_type"`
}

// UpdateTimeSlotRequest 更新时间段请求
type UpdateTimeSlotRequest struct {
	DayOfWeek *string `json:"day_of_week" binding:"omitempty,weekday"`
	StartTime *string `json:"start_time"  binding:"omitempty,hhmm"`
	EndTime   *string `json:"end_time"    binding:"omitempty,hhmm"`
	SlotType  *string `json:"slot_type"   binding:"omitempty,slot_type"`
}

// TimeSlotListRequest 时间段列表查询参数
type TimeSlotListRequest struct {
	IncludeInactive bool   `form:"include_inactive"`
	DayOfWeek       string `form:"day_of_week" binding:"omitempty,weekday"`
}

// TimeSlotResponse 时间段信息响应
type TimeSlotResponse struct {
	ID        string `json:"id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	SlotType  string `json:"slot_type"`
	Status    string `json:"status"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
