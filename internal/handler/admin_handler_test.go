package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusfront/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func newAuthTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("campusfront_session", store))
	r.POST("/admin/login", Login)
	r.POST("/admin/logout", Logout)
	protected := r.Group("/admin/api", AuthRequired())
	protected.GET("/check", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestLoginAndAuthRequired(t *testing.T) {
	_, cleanup := setupTestDB(t)
	defer cleanup()

	if err := db.EnsureUser("editor", "secret123"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	r := newAuthTestEngine()

	// 未登录访问受保护接口
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/api/check", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 before login, got %d", w.Code)
	}

	// 登录
	body, _ := json.Marshal(map[string]string{"username": "editor", "password": "secret123"})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 on login, got %d: %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie after login")
	}

	// 登录后再访问
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/api/check", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 after login, got %d", w.Code)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	_, cleanup := setupTestDB(t)
	defer cleanup()

	if err := db.EnsureUser("editor", "secret123"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	r := newAuthTestEngine()

	body, _ := json.Marshal(map[string]string{"username": "editor", "password": "wrong"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for wrong password, got %d", w.Code)
	}
}
