package model

import "regexp"

// TimeSlot 时间段，对应 time_slots
// StartTime/EndTime 为零填充的 24 小时制 "HH:MM"，字典序即时间先后
type TimeSlot struct {
	TimeSlotID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_slot_id"`
	DayOfWeek  DayOfWeek `gorm:"type:varchar(10);not null"                      json:"day_of_week"`
	StartTime  string    `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime    string    `gorm:"type:varchar(5);not null"                       json:"end_time"`
	SlotType   SlotType  `gorm:"type:varchar(10);not null;default:'Lab'"        json:"slot_type"`
	Status     Status    `gorm:"type:varchar(10);not null;default:'active'"     json:"status"`
	BaseModel
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClock 是否为零填充的 24 小时制 "HH:MM"
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}
