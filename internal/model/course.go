package model

// Course 课程，对应 courses
type Course struct {
	CourseID    string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Code        string      `gorm:"type:varchar(20);not null"                      json:"code"`
	Name        string      `gorm:"type:varchar(200);not null"                     json:"name"`
	Department  string      `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	Credits     int         `gorm:"type:smallint;not null"                         json:"credits"` // 1-6
	Year        int         `gorm:"type:smallint;not null"                         json:"year"`    // 1-5
	Section     string      `gorm:"type:varchar(50);not null;default:''"           json:"section"`
	Batch       string      `gorm:"type:varchar(50);not null;default:''"           json:"batch"`
	StudentType StudentType `gorm:"type:varchar(10);not null;default:'regular'"    json:"student_type"`
	Status      Status      `gorm:"type:varchar(10);not null;default:'active'"     json:"status"`
	BaseModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
