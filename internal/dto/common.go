package dto

// ListRequest 实体列表通用查询参数；默认只返回 active 记录
type ListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// DashboardResponse 管理端首页统计
type DashboardResponse struct {
	LabRooms          int64 `json:"lab_rooms"`
	Courses           int64 `json:"courses"`
	LabAssistants     int64 `json:"lab_assistants"`
	ActiveAssignments int64 `json:"active_assignments"`
}
