package model

// LabRoom 实验室，对应 lab_rooms
type LabRoom struct {
	LabRoomID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"   json:"lab_room_id"`
	Name      string    `gorm:"type:varchar(100);not null"                       json:"name"`
	Capacity  int       `gorm:"not null"                                         json:"capacity"`
	Location  string    `gorm:"type:varchar(200);not null;default:''"            json:"location"`
	Equipment StringSet `gorm:"type:text[];not null;default:'{}'"                json:"equipment"`
	Status    Status    `gorm:"type:varchar(10);not null;default:'active'"       json:"status"`
	BaseModel
}

// TableName 指定表名
func (LabRoom) TableName() string { return "lab_rooms" }
