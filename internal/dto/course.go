package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Code        string `json:"code"         binding:"required,min=1,max=20"`
	Name        string `json:"name"         binding:"required,min=1,max=200"`
	Department  string `json:"department"   binding:"omitempty,max=100"`
	Credits     int    `json:"credits"      binding:"required,min=1,max=6"`
	Year        int    `json:"year"         binding:"required,min=1,max=5"`
	Section     string `json:"section"      binding:"omitempty,max=50"`
	Batch       string `json:"batch"        binding:"omitempty,max=50"`
	StudentType string `json:"student_type" binding:"omitempty,student_type"` // 默认 regular
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Code        *string `json:"code"         binding:"omitempty,min=1,max=20"`
	Name        *string `json:"name"         binding:"omitempty,min=1,max=200"`
	Department  *string `json:"department"   binding:"omitempty,max=100"`
	Credits     *int    `json:"credits"      binding:"omitempty,min=1,max=6"`
	Year        *int    `json:"year"         binding:"omitempty,min=1,max=5"`
	Section     *string `json:"section"      binding:"omitempty,max=50"`
	Batch       *string `json:"batch"        binding:"omitempty,max=50"`
	StudentType *string `json:"student_type" binding:"omitempty,student_type"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Credits     int    `json:"credits"`
	Year        int    `json:"year"`
	Section     string `json:"section"`
	Batch       string `json:"batch"`
	StudentType string `json:"student_type"`
	Status      string `json:"status"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
