package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"traffic-dashboard-api/config"
	"traffic-dashboard-api/services"

	"github.com/gin-gonic/gin"
)

func authRouter(t *testing.T) (*gin.Engine, *services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	authService := services.NewAuthService(config.JWTConfig{Secret: "test-secret", ExpiryHours: 1})

	router := gin.New()
	router.GET("/protected", RequireAuth(authService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, authService
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthValidToken(t *testing.T) {
	router, authService := authRouter(t)

	token, err := authService.GenerateToken(1, "user@traffic.dev", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	w := request(router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router, _ := authRouter(t)

	w := request(router, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	router, authService := authRouter(t)

	token, _ := authService.GenerateToken(1, "user@traffic.dev", "user")
	w := request(router, token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for non-bearer header", w.Code)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	router, _ := authRouter(t)

	w := request(router, "Bearer not.a.token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
