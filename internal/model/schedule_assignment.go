package model

// ScheduleAssignment 排课记录，对应 schedule_assignments
// LabAssistantID 引用助教业务工号而非内部主键
type ScheduleAssignment struct {
	ScheduleAssignmentID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_assignment_id"`
	CourseID             string  `gorm:"type:uuid;not null"                             json:"course_id"`
	SectionID            string  `gorm:"type:uuid;not null"                             json:"section_id"`
	GroupID              *string `gorm:"type:uuid"                                      json:"group_id,omitempty"`
	LabRoomID            string  `gorm:"type:uuid;not null"                             json:"lab_room_id"`
	LabAssistantID       string  `gorm:"type:varchar(20);not null"                      json:"lab_assistant_id"`
	TimeSlotID           string  `gorm:"type:uuid;not null"                             json:"time_slot_id"`
	Status               Status  `gorm:"type:varchar(10);not null;default:'active'"     json:"status"`
	VersionedModel

	// 关联
	Course       *Course       `gorm:"foreignKey:CourseID;references:CourseID"             json:"course,omitempty"`
	Section      *Section      `gorm:"foreignKey:SectionID;references:SectionID"           json:"section,omitempty"`
	Group        *Group        `gorm:"foreignKey:GroupID;references:GroupID"               json:"group,omitempty"`
	LabRoom      *LabRoom      `gorm:"foreignKey:LabRoomID;references:LabRoomID"           json:"lab_room,omitempty"`
	LabAssistant *LabAssistant `gorm:"foreignKey:LabAssistantID;references:LabAssistantID" json:"lab_assistant,omitempty"`
	TimeSlot     *TimeSlot     `gorm:"foreignKey:TimeSlotID;references:TimeSlotID"         json:"time_slot,omitempty"`
}

// TableName 指定表名
func (ScheduleAssignment) TableName() string { return "schedule_assignments" }
