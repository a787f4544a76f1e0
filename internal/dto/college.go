package dto

// ── 学院模块 DTO ──

// CollegeResponse 学院信息
type CollegeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Location string `json:"location,omitempty"`
}
