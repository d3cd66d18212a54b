package dto

// ── 排课模块 DTO ──

// CheckConflictRequest 冲突检测请求
type CheckConflictRequest struct {
	LabRoomID           string  `json:"lab_room_id"           binding:"required,uuid"`
	LabAssistantID      string  `json:"lab_assistant_id"      binding:"required,max=20"`
	TimeSlotID          string  `json:"time_slot_id"          binding:"required,uuid"`
	ExcludeAssignmentID *string `json:"exclude_assignment_id" binding:"omitempty,uuid"`
}

// AssignmentRequest 创建 / 更新排课请求（更新为整体替换）
type AssignmentRequest struct {
	CourseID       string  `json:"course_id"        binding:"required,uuid"`
	SectionID      string  `json:"section_id"       binding:"required,uuid"`
	GroupID        *string `json:"group_id"         binding:"omitempty,uuid"`
	LabRoomID      string  `json:"lab_room_id"      binding:"required,uuid"`
	LabAssistantID string  `json:"lab_assistant_id" binding:"required,max=20"`
	TimeSlotID     string  `json:"time_slot_id"     binding:"required,uuid"`
}

// AssignmentListRequest 排课列表查询参数
type AssignmentListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=active inactive all"` // 默认 active
}

// AssignmentResponse 排课记录响应
type AssignmentResponse struct {
	ID             string  `json:"id"`
	CourseID       string  `json:"course_id"`
	SectionID      string  `json:"section_id"`
	GroupID        *string `json:"group_id,omitempty"`
	LabRoomID      string  `json:"lab_room_id"`
	LabAssistantID string  `json:"lab_assistant_id"`
	TimeSlotID     string  `json:"time_slot_id"`
	Status         string  `json:"status"`
	Version        int     `json:"version"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// ConflictEntryResponse 单条冲突记录；dimension 为 room | assistant | room_and_assistant
type ConflictEntryResponse struct {
	Assignment AssignmentResponse `json:"assignment"`
	Dimension  string             `json:"dimension"`
}

// CheckConflictResponse 冲突检测结果，conflicts 为空表示可排
type CheckConflictResponse struct {
	HasConflict bool                    `json:"has_conflict"`
	Conflicts   []ConflictEntryResponse `json:"conflicts"`
}

// ScheduleDetailResponse 排课详情（关联实体名称已展开）
type ScheduleDetailResponse struct {
	ID           string             `json:"id"`
	Status       string             `json:"status"`
	Version      int                `json:"version"`
	Course       *CourseBrief       `json:"course,omitempty"`
	Section      *SectionBrief      `json:"section,omitempty"`
	Group        *GroupBrief        `json:"group,omitempty"`
	LabRoom      *LabRoomBrief      `json:"lab_room,omitempty"`
	LabAssistant *LabAssistantBrief `json:"lab_assistant,omitempty"`
	TimeSlot     *TimeSlotBrief     `json:"time_slot,omitempty"`
}

// CourseBrief 课程简要信息
type CourseBrief struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// SectionBrief 教学班简要信息
type SectionBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GroupBrief 分组简要信息
type GroupBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LabRoomBrief 实验室简要信息
type LabRoomBrief struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// LabAssistantBrief 助教简要信息
type LabAssistantBrief struct {
	LabAssistantID string `json:"lab_assistant_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email,omitempty"`
}

// TimeSlotBrief 时间段简要信息
type TimeSlotBrief struct {
	ID        string `json:"id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	SlotType  string `json:"slot_type"`
}

// AssistantScheduleResponse 助教本人视图：个人信息 + 周课表
type AssistantScheduleResponse struct {
	Assistant LabAssistantResponse     `json:"assistant"`
	Schedules []ScheduleDetailResponse `json:"schedules"`
}
