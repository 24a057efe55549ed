package config

import (
	"testing"
	"time"
)

func TestReload(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.JWT.Secret = "old-secret"
	cfg.JWT.ExpireTime = time.Hour

	next := &Config{}
	next.Server.Port = "9999"
	next.JWT.Secret = "new-secret"
	next.JWT.ExpireTime = 2 * time.Hour

	cfg.Reload(next)

	if got := cfg.JWTSecret(); got != "new-secret" {
		t.Errorf("JWTSecret() = %q, want %q", got, "new-secret")
	}
	if got := cfg.JWTExpire(); got != 2*time.Hour {
		t.Errorf("JWTExpire() = %v, want %v", got, 2*time.Hour)
	}
	// 启动期字段不受热加载影响
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8080")
	}
}

func TestReloadConcurrentReads(t *testing.T) {
	cfg := &Config{}
	cfg.JWT.Secret = "initial"

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = cfg.JWTSecret()
		}
	}()

	next := &Config{}
	next.JWT.Secret = "rotated"
	for i := 0; i < 1000; i++ {
		cfg.Reload(next)
	}
	<-done

	if got := cfg.JWTSecret(); got != "rotated" {
		t.Errorf("JWTSecret() = %q, want %q", got, "rotated")
	}
}
