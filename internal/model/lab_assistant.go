package model

import "strings"

// LabAssistant 实验助教，对应 lab_assistants
// AssistantID 为内部主键；LabAssistantID 为业务工号（LA<year><seq>），排课记录引用的是业务工号
type LabAssistant struct {
	AssistantID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assistant_id"`
	LabAssistantID string `gorm:"type:varchar(20);not null"                      json:"lab_assistant_id"`
	Username       string `gorm:"type:varchar(50);not null;default:''"           json:"username"`
	FirstName      string `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName       string `gorm:"type:varchar(50);not null"                      json:"last_name"`
	Email          string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash   string `gorm:"type:varchar(255);not null"                     json:"-"`
	Department     string `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	Status         Status `gorm:"type:varchar(10);not null;default:'active'"     json:"status"`
	BaseModel
}

// TableName 指定表名
func (LabAssistant) TableName() string { return "lab_assistants" }

// FullName 姓名
func (a *LabAssistant) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
