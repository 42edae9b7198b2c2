package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/domain/services"
	"niddo-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWT() services.InterfaceJWTService {
	return services.NewJWTService(&config.Config{JWTSecretKey: "middleware-secret", JWTTTL: time.Hour}, nil)
}

func tokenFor(t *testing.T, jwtService services.InterfaceJWTService, id uint, role string) string {
	t.Helper()
	token, _, err := jwtService.GenerateToken(&models.User{BaseModel: models.BaseModel{ID: id}, Name: "tester", Role: role, CondoID: 3})
	require.NoError(t, err)
	return token
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer abc.def", "abc.def", true},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"abc.def", "", false},
	}
	for _, tt := range tests {
		token, ok := extractToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestRequireRoles(t *testing.T) {
	if DevBypassEnabled() {
		t.Skip("built with the devauth tag")
	}

	jwtService := newTestJWT()
	auth := NewAuth(jwtService)

	router := gin.New()
	router.GET("/admin", auth.RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint(ContextUserID), "condo_id": claims.CondoID})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"resident", "Bearer " + tokenFor(t, jwtService, 2, models.RoleResident), http.StatusForbidden},
		{"admin", "Bearer " + tokenFor(t, jwtService, 1, models.RoleAdmin), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireSelfOrRoles(t *testing.T) {
	if DevBypassEnabled() {
		t.Skip("built with the devauth tag")
	}

	jwtService := newTestJWT()
	auth := NewAuth(jwtService)

	router := gin.New()
	router.PUT("/users/:user_id",
		auth.RequireRoles(models.RoleAdmin, models.RoleResident),
		auth.RequireSelfOrRoles("user_id", models.RoleAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	do := func(path, token string) int {
		req := httptest.NewRequest(http.MethodPut, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	resident := tokenFor(t, jwtService, 5, models.RoleResident)
	admin := tokenFor(t, jwtService, 1, models.RoleAdmin)

	assert.Equal(t, http.StatusOK, do("/users/5", resident))
	assert.Equal(t, http.StatusForbidden, do("/users/6", resident))
	assert.Equal(t, http.StatusForbidden, do("/users/abc", resident))
	assert.Equal(t, http.StatusOK, do("/users/6", admin))
}
