package dto

// ── 投递模块 DTO ──

// ApplyRequest 投递请求
type ApplyRequest struct {
	JobID string `json:"job_id"`
}

// UpdateApplicationStatusRequest 更新投递状态请求
// 状态合法性由 Service 层校验，便于统一返回 ValidationError
type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

// ApplyResponse 投递成功响应
type ApplyResponse struct {
	ID        string `json:"id"`
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	AppliedAt string `json:"applied_at"`
}

// JobApplicationResponse 管理员视角：某岗位下的投递（含申请人信息）
type JobApplicationResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	AppliedAt    string `json:"applied_at"`
	StudentID    string `json:"student_id"`
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
}

// StudentApplicationResponse 学生视角：本人投递（含岗位信息）
type StudentApplicationResponse struct {
	ID          string `json:"id"`
	JobID       string `json:"job_id"`
	Status      string `json:"status"`
	AppliedAt   string `json:"applied_at"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Deadline    string `json:"deadline"`
	CollegeName string `json:"college_name"`
}
