package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求
// 管理员可选择已有学院（college_id），或填写 college_name 新建学院
type RegisterRequest struct {
	Email           string `json:"email"            binding:"required,email,max=255"`
	Password        string `json:"password"         binding:"required,min=6,max=72"`
	Name            string `json:"name"             binding:"required,max=100"`
	Role            string `json:"role"             binding:"required,oneof=student admin"`
	CollegeID       string `json:"college_id"       binding:"omitempty,uuid"`
	CollegeName     string `json:"college_name"     binding:"omitempty,max=255"`
	CollegeEmail    string `json:"college_email"    binding:"omitempty,email,max=255"`
	CollegeLocation string `json:"college_location" binding:"omitempty,max=255"`
}

// CheckAdminDomainRequest 管理员邮箱域名检查请求
type CheckAdminDomainRequest struct {
	EmailDomain string `json:"email_domain" binding:"required,max=255"`
}

// CheckAdminDomainResponse 管理员邮箱域名检查响应
type CheckAdminDomainResponse struct {
	Exists bool `json:"exists"`
}

// [自证通过] internal/dto/auth.go
