package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	manager := NewTokenManager("secret", 0)
	fixed := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return fixed }

	token, expiresAt, err := manager.Issue(models.Principal{UserID: "u1", Role: models.RoleStudent, Name: "Asha"})
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(24*time.Hour), expiresAt)

	principal, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", principal.UserID)
	assert.Equal(t, models.RoleStudent, principal.Role)
	assert.Equal(t, "Asha", principal.Name)
}

func TestTokenManager_Expired(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)
	start := time.Now()
	manager.now = func() time.Time { return start }

	token, _, err := manager.Issue(models.Principal{UserID: "u1", Role: models.RoleStaff})
	require.NoError(t, err)

	manager.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, _, err := other.Issue(models.Principal{UserID: "u1", Role: models.RoleStaff})
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = manager.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_RejectsUnknownRole(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)
	claims := &Claims{
		UserID:   "u1",
		UserType: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func newGuardedRouter(manager *TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/staff", Middleware(manager), RequireRole(models.RoleStaff), func(c *gin.Context) {
		principal, _ := PrincipalFrom(c)
		c.String(http.StatusOK, principal.UserID)
	})
	return router
}

func TestMiddleware(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)
	router := newGuardedRouter(manager)

	staffToken, _, err := manager.Issue(models.Principal{UserID: "staff-1", Role: models.RoleStaff})
	require.NoError(t, err)
	studentToken, _, err := manager.Issue(models.Principal{UserID: "student-1", Role: models.RoleStudent})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", status: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + studentToken, status: http.StatusForbidden},
		{name: "staff", header: "Bearer " + staffToken, status: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + staffToken, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/staff", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
