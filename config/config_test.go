package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Auth: AuthConfig{
			JWTSecret:  "test-secret-key-for-unit-testing",
			TokenTTL:   168 * time.Hour,
			BcryptCost: 10,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("期望校验通过，实际: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	cases := map[string]func(c *Config){
		"空密钥":      func(c *Config) { c.Auth.JWTSecret = "" },
		"密钥过短":     func(c *Config) { c.Auth.JWTSecret = "short" },
		"TTL 为 0":   func(c *Config) { c.Auth.TokenTTL = 0 },
		"bcrypt 过低": func(c *Config) { c.Auth.BcryptCost = 1 },
		"bcrypt 过高": func(c *Config) { c.Auth.BcryptCost = 99 },
		"端口越界":     func(c *Config) { c.Server.Port = 70000 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("期望校验失败")
			}
		})
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 9090\nauth:\n  jwt_secret: file-secret-0123456789\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	t.Setenv("PORTAL_DB_NAME", "portal_from_env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Database.Name != "portal_from_env" {
		t.Errorf("期望 db.name=portal_from_env，实际=%s", cfg.Database.Name)
	}
	if cfg.Auth.TokenTTL != 168*time.Hour {
		t.Errorf("期望默认 token_ttl=168h，实际=%v", cfg.Auth.TokenTTL)
	}
}
