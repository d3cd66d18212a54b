package model

// Status 生命周期状态；inactive 即软删除墓碑，只允许 active → inactive
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid 是否为合法状态
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// IsActive 是否处于 active 状态
func (s Status) IsActive() bool { return s == StatusActive }

// DayOfWeek 星期
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

// Weekdays 按周顺序排列
var Weekdays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index 周内序号，Monday=0 … Sunday=6；非法值返回 -1
func (d DayOfWeek) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// Valid 是否为合法星期
func (d DayOfWeek) Valid() bool { return d.Index() >= 0 }

// SlotType 时间段类型
type SlotType string

const (
	SlotLab      SlotType = "Lab"
	SlotLecture  SlotType = "Lecture"
	SlotTutorial SlotType = "Tutorial"
)

// Valid 是否为合法类型
func (t SlotType) Valid() bool {
	switch t {
	case SlotLab, SlotLecture, SlotTutorial:
		return true
	}
	return false
}

// StudentType 学生类型
type StudentType string

const (
	StudentRegular   StudentType = "regular"
	StudentExtension StudentType = "extension"
)

// Valid 是否为合法学生类型
func (t StudentType) Valid() bool {
	return t == StudentRegular || t == StudentExtension
}
