package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, userID uint, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func protectedRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuthWithRole(role), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("user_id")})
	})
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := protectedRouter("driver")

	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if w := get(r, "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("non-bearer scheme: status %d, want 401", w.Code)
	}
}

func TestRequireAuthBadToken(t *testing.T) {
	r := protectedRouter("driver")

	if w := get(r, "Bearer not.a.token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestRequireAuthRoleMismatch(t *testing.T) {
	// A valid token with the wrong role must be rejected before the protected
	// handler runs at all, not after it has already written a response.
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := false
	r.GET("/protected", RequireAuthWithRole("admin"), func(c *gin.Context) {
		reached = true
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("user_id")})
	})

	w := get(r, "Bearer "+signToken(t, 7, "driver"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", w.Code)
	}
	if reached {
		t.Fatal("protected handler ran despite role mismatch")
	}
}

func TestRequireAuthSuccess(t *testing.T) {
	r := protectedRouter("driver")

	w := get(r, "Bearer "+signToken(t, 7, "driver"))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", w.Code, w.Body.String())
	}
}
