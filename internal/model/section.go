package model

// Section 教学班，对应 sections
type Section struct {
	SectionID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"section_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Year       int    `gorm:"type:smallint;not null"                         json:"year"`
	Department string `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	Capacity   int    `gorm:"not null"                                       json:"capacity"`
	Status     Status `gorm:"type:varchar(10);not null;default:'active'"     json:"status"`
	BaseModel

	// 关联
	Groups []Group `gorm:"foreignKey:SectionID;references:SectionID" json:"groups,omitempty"`
}

// TableName 指定表名
func (Section) TableName() string { return "sections" }

// Group 实验分组，对应 section_groups
type Group struct {
	GroupID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	SectionID string `gorm:"type:uuid;not null"                             json:"section_id"`
	Capacity  int    `gorm:"not null"                                       json:"capacity"`
	Status    Status `gorm:"type:varchar(10);not null;default:'active'"     json:"status"`
	BaseModel
}

// TableName 指定表名
func (Group) TableName() string { return "section_groups" }
