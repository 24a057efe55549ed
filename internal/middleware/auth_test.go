package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"akademisi_backend/internal/config"
	"akademisi_backend/internal/model"
	"akademisi_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const testSecret = "middleware-test-secret-32-chars!!!!"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func tokenFor(t *testing.T, role model.UserRole) string {
	t.Helper()
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Email: "x@akademisi.local", Role: role}
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return token
}

func protectedRouter(cfg *config.Config, roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api")
	group.Use(AuthMiddleware(cfg))
	if len(roles) > 0 {
		group.Use(RoleMiddleware(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	router := protectedRouter(cfg)

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{"no token", "", "", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", "", http.StatusUnauthorized},
		{"valid bearer token", "Bearer " + tokenFor(t, model.Student), "", http.StatusOK},
		{"valid query token", "", tokenFor(t, model.Student), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := "/api/ping"
			if tt.query != "" {
				url += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthMiddlewareSecretReload(t *testing.T) {
	cfg := testConfig()
	router := protectedRouter(cfg)

	const rotatedSecret = "rotated-secret-also-32-chars-long!!"
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Role: model.Student}
	token, err := util.GenerateJWT(user, rotatedSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	// 轮换前：新密钥签发的令牌不被接受
	if code := send(); code != http.StatusUnauthorized {
		t.Fatalf("before reload: status = %d, want %d", code, http.StatusUnauthorized)
	}

	next := &config.Config{}
	next.JWT.Secret = rotatedSecret
	next.JWT.ExpireTime = time.Hour
	cfg.Reload(next)

	// 轮换后：已建好的中间件按请求读到新密钥
	if code := send(); code != http.StatusOK {
		t.Fatalf("after reload: status = %d, want %d", code, http.StatusOK)
	}
}

func TestRoleMiddleware(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name       string
		gate       model.UserRole
		role       model.UserRole
		wantStatus int
	}{
		{"teacher passes teacher gate", model.Teacher, model.Teacher, http.StatusOK},
		{"student blocked at teacher gate", model.Teacher, model.Student, http.StatusForbidden},
		{"admin inherits teacher permissions", model.Teacher, model.Admin, http.StatusOK},
		{"student passes student gate", model.Student, model.Student, http.StatusOK},
		{"teacher blocked at student gate", model.Student, model.Teacher, http.StatusForbidden},
		{"admin blocked at student gate", model.Student, model.Admin, http.StatusForbidden},
		{"admin passes admin gate", model.Admin, model.Admin, http.StatusOK},
		{"teacher blocked at admin gate", model.Admin, model.Teacher, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := protectedRouter(cfg, tt.gate)
			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, tt.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("role %s at %s gate: status = %d, want %d", tt.role, tt.gate, w.Code, tt.wantStatus)
			}
		})
	}
}
