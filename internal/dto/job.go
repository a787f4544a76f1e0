package dto

// ── 岗位模块 DTO ──

// CreateJobRequest 发布岗位请求
// college_id / posted_by 不接受客户端输入，由调用者身份决定
type CreateJobRequest struct {
	Title        string `json:"title"         binding:"max=255"`
	Description  string `json:"description"`
	Location     string `json:"location"      binding:"max=255"`
	Type         string `json:"type"`
	Deadline     string `json:"deadline"` // YYYY-MM-DD
	SalaryRange  string `json:"salary_range"  binding:"max=100"`
	Requirements string `json:"requirements"`
}

// JobResponse 岗位信息（含读取时计算的状态与投递统计）
type JobResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Location          string  `json:"location"`
	Type              string  `json:"type"`
	Deadline          string  `json:"deadline"`
	SalaryRange       *string `json:"salary_range,omitempty"`
	Requirements      *string `json:"requirements,omitempty"`
	CollegeID         string  `json:"college_id"`
	CollegeName       string  `json:"college_name,omitempty"`
	PostedBy          string  `json:"posted_by"`
	PostedByName      string  `json:"posted_by_name,omitempty"`
	CreatedAt         string  `json:"created_at"`
	Status            string  `json:"status"` // active | expired
	ApplicationsCount int64   `json:"applications_count"`
	HasApplied        *bool   `json:"has_applied,omitempty"` // 仅学生返回
}
