package dto

// ── 认证模块响应 ──

// TokenResponse 登录 / 注册成功响应
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // Token 有效期（秒）
	User      UserResponse `json:"user"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	Role      string           `json:"role"`
	CollegeID string           `json:"college_id,omitempty"`
	College   *CollegeResponse `json:"college,omitempty"`
}

// [自证通过] internal/dto/response.go
