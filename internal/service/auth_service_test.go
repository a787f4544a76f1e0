package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/qaidjoharj53/Job-Portal/config"
	"github.com/qaidjoharj53/Job-Portal/internal/dto"
	"github.com/qaidjoharj53/Job-Portal/internal/model"
	"github.com/qaidjoharj53/Job-Portal/pkg/jwt"
)

// ── 测试辅助 ──

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret-key-for-unit-testing",
			TokenTTL:   168 * time.Hour,
			Issuer:     "job-portal-test",
			BcryptCost: bcrypt.MinCost,
		},
	}
}

func setupTestAuthService() (AuthService, *fixture, *jwt.Manager, *mockBlacklist) {
	cfg := testConfig()
	f := newFixture()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	bl := newMockBlacklist()
	svc := NewAuthService(cfg, f.repo, jwtMgr, bl, zap.NewNop())
	return svc, f, jwtMgr, bl
}

func registerStudent(t *testing.T, svc AuthService, f *fixture, email string) *dto.TokenResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     email,
		Password:  "secret123",
		Name:      "New Student",
		Role:      "student",
		CollegeID: f.collegeA.CollegeID,
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	return resp
}

// ── Register 测试 ──

func TestAuthService_Register_StudentWithCollege(t *testing.T) {
	svc, f, _, _ := setupTestAuthService()

	resp := registerStudent(t, svc, f, "New@A.edu")

	if resp.Token == "" {
		t.Error("期望返回 token")
	}
	if resp.User.Email != "new@a.edu" {
		t.Errorf("期望邮箱转为小写 new@a.edu，实际 %s", resp.User.Email)
	}
	if resp.User.CollegeID != f.collegeA.CollegeID {
		t.Errorf("期望 college_id=%s，实际=%s", f.collegeA.CollegeID, resp.User.CollegeID)
	}
	if resp.User.College == nil || resp.User.College.Name != "College A" {
		t.Error("期望响应包含学院信息")
	}
	if resp.ExpiresIn != int((168 * time.Hour).Seconds()) {
		t.Errorf("期望 expires_in 为 7 天，实际 %d", resp.ExpiresIn)
	}
}

func TestAuthService_Register_StudentRequiresCollege(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "lonely@x.edu",
		Password:    "secret123",
		Name:        "Lonely",
		Role:        "student",
		CollegeName: "Student Made College",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("期望 ErrValidation，实际: %v", err)
	}
}

func TestAuthService_Register_UnknownCollege(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	for _, id := range []string{"00000000-0000-0000-0000-000000000000", "not-a-uuid"} {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:     "ghost@x.edu",
			Password:  "secret123",
			Name:      "Ghost",
			Role:      "student",
			CollegeID: id,
		})
		if !errors.Is(err, ErrCollegeNotFound) {
			t.Errorf("college_id=%s: 期望 ErrCollegeNotFound，实际: %v", id, err)
		}
	}
}

func TestAuthService_Register_AdminCreatesCollege(t *testing.T) {
	svc, f, _, _ := setupTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:           "dean@c.edu",
		Password:        "secret123",
		Name:            "Dean C",
		Role:            "admin",
		CollegeName:     "College C",
		CollegeEmail:    "info@c.edu",
		CollegeLocation: "City C",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if resp.User.Role != "admin" {
		t.Errorf("期望 role=admin，实际=%s", resp.User.Role)
	}
	if resp.User.CollegeID == "" {
		t.Fatal("期望管理员绑定新建学院")
	}

	college, err := f.repo.College.GetByID(context.Background(), resp.User.CollegeID)
	if err != nil {
		t.Fatalf("新学院未落库: %v", err)
	}
	if college.Name != "College C" || college.Location != "City C" {
		t.Errorf("学院信息不符: %+v", college)
	}
}

func TestAuthService_Register_DuplicateCollege(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "other@a.edu",
		Password:    "secret123",
		Name:        "Other",
		Role:        "admin",
		CollegeName: "College A",
	})
	if !errors.Is(err, ErrCollegeExists) {
		t.Errorf("期望 ErrCollegeExists，实际: %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, f, _, _ := setupTestAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "STUDENT@a.edu",
		Password:  "secret123",
		Name:      "Copycat",
		Role:      "student",
		CollegeID: f.collegeA.CollegeID,
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}
}

func TestAuthService_Register_AdminNeedsCollegeChoice(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "admin@z.edu",
		Password: "secret123",
		Name:     "Admin Z",
		Role:     "admin",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("期望 ErrValidation，实际: %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc, f, _, _ := setupTestAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "root@a.edu",
		Password:  "secret123",
		Name:      "Root",
		Role:      "superuser",
		CollegeID: f.collegeA.CollegeID,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("期望 ErrValidation，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestAuthService_Login(t *testing.T) {
	svc, f, _, _ := setupTestAuthService()
	registerStudent(t, svc, f, "login@a.edu")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "login@a.edu", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.Token == "" || resp.User.Email != "login@a.edu" {
		t.Errorf("登录响应不完整: %+v", resp)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, f, _, _ := setupTestAuthService()
	registerStudent(t, svc, f, "login@a.edu")

	cases := map[string]*dto.LoginRequest{
		"密码错误":  {Email: "login@a.edu", Password: "wrong-pass"},
		"邮箱不存在": {Email: "nobody@a.edu", Password: "secret123"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), req); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
			}
		})
	}
}

// ── Resolve 测试 ──

func TestAuthService_Resolve_Valid(t *testing.T) {
	svc, f, jwtMgr, _ := setupTestAuthService()
	token, _ := jwtMgr.GenerateToken(f.studentA.UserID, f.studentA.Email, "student", f.collegeA.CollegeID)

	identity, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve 失败: %v", err)
	}
	if identity == nil {
		t.Fatal("期望解析出身份")
	}
	if identity.Caller.UserID != f.studentA.UserID || identity.Caller.Role != model.RoleStudent {
		t.Errorf("身份不符: %+v", identity.Caller)
	}
	if identity.Caller.CollegeID != f.collegeA.CollegeID {
		t.Errorf("期望 college_id=%s，实际=%s", f.collegeA.CollegeID, identity.Caller.CollegeID)
	}
	if identity.TokenID == "" || identity.ExpiresAt.IsZero() {
		t.Error("期望返回 jti 与过期时间")
	}
}

func TestAuthService_Resolve_UsesStoredRoleAndCollege(t *testing.T) {
	svc, f, jwtMgr, _ := setupTestAuthService()
	// Token 内嵌的角色与学院是过期副本
	token, _ := jwtMgr.GenerateToken(f.studentA.UserID, f.studentA.Email, "admin", f.collegeB.CollegeID)

	identity, err := svc.Resolve(context.Background(), token)
	if err != nil || identity == nil {
		t.Fatalf("Resolve 失败: %v", err)
	}
	if identity.Caller.Role != model.RoleStudent {
		t.Errorf("期望以数据库角色 student 为准，实际=%s", identity.Caller.Role)
	}
	if identity.Caller.CollegeID != f.collegeA.CollegeID {
		t.Errorf("期望以数据库学院为准，实际=%s", identity.Caller.CollegeID)
	}
}

func TestAuthService_Resolve_NullIdentity(t *testing.T) {
	svc, f, jwtMgr, _ := setupTestAuthService()

	orphan := &model.User{Email: "orphan@x.edu", Name: "Orphan", Role: model.RoleAdmin, PasswordHash: "x"}
	_ = f.store.insertUser(orphan)

	otherMgr := jwt.NewManager(&config.AuthConfig{JWTSecret: "another-secret-key-0123456", TokenTTL: time.Hour})
	forged, _ := otherMgr.GenerateToken(f.studentA.UserID, f.studentA.Email, "student", f.collegeA.CollegeID)
	ghost, _ := jwtMgr.GenerateToken("7b0c1f4e-0000-4000-8000-000000000000", "ghost@x.edu", "student", f.collegeA.CollegeID)
	noCollege, _ := jwtMgr.GenerateToken(orphan.UserID, orphan.Email, "admin", "")

	cases := map[string]string{
		"格式错误":   "not.a.token",
		"签名错误":   forged,
		"用户不存在":  ghost,
		"未绑定学院":  noCollege,
		"空 Token": "",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			identity, err := svc.Resolve(context.Background(), token)
			if err != nil {
				t.Errorf("期望无错误，实际: %v", err)
			}
			if identity != nil {
				t.Errorf("期望空身份，实际: %+v", identity)
			}
		})
	}
}

func TestAuthService_Resolve_StorageFailure(t *testing.T) {
	svc, f, jwtMgr, _ := setupTestAuthService()
	token, _ := jwtMgr.GenerateToken(f.studentA.UserID, f.studentA.Email, "student", f.collegeA.CollegeID)

	f.store.failErr = errors.New("connection refused")

	identity, err := svc.Resolve(context.Background(), token)
	if err == nil {
		t.Error("期望存储故障返回错误")
	}
	if identity != nil {
		t.Error("期望空身份")
	}
}

// ── Logout 测试 ──

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	svc, f, jwtMgr, bl := setupTestAuthService()
	token, _ := jwtMgr.GenerateToken(f.adminA.UserID, f.adminA.Email, "admin", f.collegeA.CollegeID)

	identity, _ := svc.Resolve(context.Background(), token)
	if identity == nil {
		t.Fatal("登出前期望身份有效")
	}

	if err := svc.Logout(context.Background(), identity.TokenID, identity.ExpiresAt); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	if ttl := bl.revoked[identity.TokenID]; ttl <= 0 || ttl > 168*time.Hour {
		t.Errorf("黑名单 TTL 应为剩余有效期，实际 %v", ttl)
	}

	identity, err := svc.Resolve(context.Background(), token)
	if err != nil || identity != nil {
		t.Errorf("登出后期望空身份，实际 identity=%+v err=%v", identity, err)
	}
}

func TestAuthService_Resolve_BlacklistUnavailable(t *testing.T) {
	svc, f, jwtMgr, bl := setupTestAuthService()
	token, _ := jwtMgr.GenerateToken(f.adminA.UserID, f.adminA.Email, "admin", f.collegeA.CollegeID)
	bl.err = errors.New("redis down")

	identity, err := svc.Resolve(context.Background(), token)
	if err != nil || identity == nil {
		t.Errorf("黑名单不可用时期望降级放行，实际 identity=%+v err=%v", identity, err)
	}
}

func TestAuthService_Logout_NoBlacklist(t *testing.T) {
	cfg := testConfig()
	f := newFixture()
	svc := NewAuthService(cfg, f.repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())

	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("未配置黑名单时登出应为空操作，实际: %v", err)
	}
}

// ── GetCurrentUser / CheckAdminDomain 测试 ──

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc, f, _, _ := setupTestAuthService()

	user, err := svc.GetCurrentUser(context.Background(), callerOf(f.adminB))
	if err != nil {
		t.Fatalf("GetCurrentUser 失败: %v", err)
	}
	if user.Email != "admin@b.edu" || user.College == nil || user.College.Name != "College B" {
		t.Errorf("用户信息不符: %+v", user)
	}

	if _, err := svc.GetCurrentUser(context.Background(), nil); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("期望 ErrUnauthorized，实际: %v", err)
	}
}

func TestAuthService_CheckAdminDomain(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()
	ctx := context.Background()

	cases := []struct {
		domain string
		want   bool
	}{
		{"a.edu", true},
		{"@B.EDU", true},
		{"student.edu", false},
		{"c.edu", false},
	}
	for _, tc := range cases {
		got, err := svc.CheckAdminDomain(ctx, tc.domain)
		if err != nil {
			t.Fatalf("%s: 意外错误 %v", tc.domain, err)
		}
		if got != tc.want {
			t.Errorf("%s: 期望 %v，实际 %v", tc.domain, tc.want, got)
		}
	}

	if _, err := svc.CheckAdminDomain(ctx, "  "); !errors.Is(err, ErrValidation) {
		t.Errorf("期望 ErrValidation，实际: %v", err)
	}
}
