package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qaidjoharj53/Job-Portal/internal/model"
	"github.com/qaidjoharj53/Job-Portal/internal/service"
	"github.com/qaidjoharj53/Job-Portal/pkg/response"
)

// MustGetCaller 从 Gin 上下文中提取 JWT 中间件注入的调用者身份。
// 缺失时返回 false 并写入 401 响应，调用方应直接 return。
func MustGetCaller(c *gin.Context) (*service.Caller, bool) {
	userID := c.GetString("user_id")
	role := c.GetString("role")
	if userID == "" || role == "" {
		response.Unauthorized(c, 10002, "Unauthorized")
		return nil, false
	}
	return &service.Caller{
		UserID:    userID,
		Email:     c.GetString("email"),
		Role:      model.Role(role),
		CollegeID: c.GetString("college_id"),
	}, true
}

// tokenInfo 当前 Token 的 jti 与过期时间（登出时使用）
func tokenInfo(c *gin.Context) (string, time.Time) {
	return c.GetString("token_jti"), c.GetTime("token_exp")
}

// bindJSON 绑定请求体；超出 BodyLimit 时返回 413，其余返回 400
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
			return false
		}
		response.BadRequest(c, 10001, "Invalid request body")
		return false
	}
	return true
}

// validationMessage 提取 *service.ValidationError 的用户可读信息
func validationMessage(err error) string {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return "Validation failed"
}
