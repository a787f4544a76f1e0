package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qaidjoharj53/Job-Portal/config"
	"github.com/qaidjoharj53/Job-Portal/internal/dto"
	"github.com/qaidjoharj53/Job-Portal/internal/model"
	"github.com/qaidjoharj53/Job-Portal/internal/repository"
	pkgerrors "github.com/qaidjoharj53/Job-Portal/pkg/errors"
	"github.com/qaidjoharj53/Job-Portal/pkg/jwt"
	applogger "github.com/qaidjoharj53/Job-Portal/pkg/logger"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrCollegeExists      = errors.New("college already exists")
	ErrCollegeNotFound    = errors.New("college not found")
)

// TokenBlacklist Token 黑名单存储（由 Redis 实现）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Identity 解析后的请求身份
type Identity struct {
	Caller    Caller
	TokenID   string
	ExpiresAt time.Time
}

// IdentityResolver 将 Bearer Token 解析为调用者身份
// Token 无效、过期、已登出或用户不存在时返回 (nil, nil)，仅存储故障返回 error
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// AuthService 认证业务接口
type AuthService interface {
	IdentityResolver
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout 将当前 Token 加入黑名单直至其自然过期
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, caller *Caller) (*dto.UserResponse, error)
	CheckAdminDomain(ctx context.Context, emailDomain string) (bool, error)
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ────────────────────── Resolve ──────────────────────

func (s *authService) Resolve(ctx context.Context, token string) (*Identity, error) {
	log := applogger.FromContext(ctx, s.logger)

	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		log.Debug("Token 解析失败", zap.Error(err))
		return nil, nil
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// Redis 故障时降级放行
			log.Warn("查询 Token 黑名单失败", zap.Error(err))
		} else if revoked {
			return nil, nil
		}
	}

	// 按 ID 重新读取用户，角色与学院变更即时生效
	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error("查询用户失败", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, err
	}

	if !user.Role.Valid() || user.CollegeIDValue() == "" {
		log.Warn("用户角色或学院无效", zap.String("user_id", user.UserID), zap.String("role", string(user.Role)))
		return nil, nil
	}

	identity := &Identity{
		Caller: Caller{
			UserID:    user.UserID,
			Email:     user.Email,
			Role:      user.Role,
			CollegeID: user.CollegeIDValue(),
		},
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	log := applogger.FromContext(ctx, s.logger)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	role := model.Role(req.Role)
	if email == "" || req.Password == "" || name == "" || req.Role == "" {
		return nil, validationError("Missing required fields")
	}
	if !role.Valid() {
		return nil, validationError("Invalid role")
	}

	// 邮箱唯一性预检（最终由唯一约束保证）
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.Auth.BcryptCost)
	if err != nil {
		log.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}

	collegeID := strings.TrimSpace(req.CollegeID)
	collegeName := strings.TrimSpace(req.CollegeName)

	switch {
	case collegeID != "":
		college, err := s.getCollege(ctx, collegeID)
		if err != nil {
			return nil, err
		}
		user.CollegeID = &college.CollegeID
		user.College = nil
		if err := s.repo.User.Create(ctx, user); err != nil {
			return nil, s.mapRegisterError(ctx, err)
		}
		user.College = college

	case role == model.RoleAdmin && collegeName != "":
		college := &model.College{
			Name:     collegeName,
			Email:    strings.TrimSpace(req.CollegeEmail),
			Location: strings.TrimSpace(req.CollegeLocation),
		}
		if err := s.repo.User.CreateWithCollege(ctx, user, college); err != nil {
			return nil, s.mapRegisterError(ctx, err)
		}
		user.College = college

	case role == model.RoleStudent:
		return nil, validationError("Students must select a college")

	default:
		return nil, validationError("Select an existing college or provide a new college name")
	}

	log.Info("用户注册成功",
		zap.String("user_id", user.UserID),
		zap.String("role", string(user.Role)),
		zap.String("college_id", user.CollegeIDValue()),
	)

	return s.issueToken(ctx, user)
}

func (s *authService) getCollege(ctx context.Context, id string) (*model.College, error) {
	if !isUUID(id) {
		return nil, ErrCollegeNotFound
	}
	college, err := s.repo.College.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		applogger.FromContext(ctx, s.logger).Error("查询学院失败", zap.String("college_id", id), zap.Error(err))
		return nil, err
	}
	return college, nil
}

// mapRegisterError 唯一约束冲突转换为领域错误
func (s *authService) mapRegisterError(ctx context.Context, err error) error {
	switch {
	case pkgerrors.IsUniqueViolation(err, repository.ConstraintCollegeName):
		return ErrCollegeExists
	case pkgerrors.IsUniqueViolation(err, repository.ConstraintUserEmail):
		return ErrEmailExists
	}
	applogger.FromContext(ctx, s.logger).Error("创建用户失败", zap.Error(err))
	return err
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		applogger.FromContext(ctx, s.logger).Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(ctx, user)
}

func (s *authService) issueToken(ctx context.Context, user *model.User) (*dto.TokenResponse, error) {
	token, err := s.jwtMgr.GenerateToken(user.UserID, user.Email, string(user.Role), user.CollegeIDValue())
	if err != nil {
		applogger.FromContext(ctx, s.logger).Error("生成 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int(s.jwtMgr.TTL().Seconds()),
		User:      toUserResponse(user),
	}, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.blacklist == nil || tokenID == "" {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, tokenID, time.Until(expiresAt)); err != nil {
		applogger.FromContext(ctx, s.logger).Error("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, caller *Caller) (*dto.UserResponse, error) {
	if caller == nil || caller.UserID == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.repo.User.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		applogger.FromContext(ctx, s.logger).Error("查询用户失败", zap.String("user_id", caller.UserID), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── CheckAdminDomain ──────────────────────

func (s *authService) CheckAdminDomain(ctx context.Context, emailDomain string) (bool, error) {
	domain := strings.TrimSpace(emailDomain)
	if domain == "" {
		return false, validationError("Domain ending is required")
	}
	exists, err := s.repo.User.ExistsAdminWithEmailSuffix(ctx, domain)
	if err != nil {
		applogger.FromContext(ctx, s.logger).Error("查询管理员域名失败", zap.Error(err))
		return false, err
	}
	return exists, nil
}

// ── 转换 ──

func toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        user.UserID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CollegeID: user.CollegeIDValue(),
	}
	if user.College != nil {
		resp.College = toCollegeResponse(user.College)
	}
	return resp
}

// [自证通过] internal/service/auth_service.go
