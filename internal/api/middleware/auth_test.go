package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()

	claims := Claims{
		UserID: 42,
		Email:  "admin@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func authTestRouter(adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/", AuthRequired(testSecret))
	if adminOnly {
		group.Use(AdminRequired())
	}
	group.GET("/secure", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	return router
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	router := authTestRouter(false)

	assert.Equal(t, http.StatusUnauthorized, request(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "not-a-bearer-token").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer garbage").Code)

	expired := signToken(t, "user", -time.Hour)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer "+expired).Code)

	valid := signToken(t, "user", time.Hour)
	assert.Equal(t, http.StatusOK, request(router, "Bearer "+valid).Code)
}

func TestAdminRequired(t *testing.T) {
	router := authTestRouter(true)

	user := signToken(t, "user", time.Hour)
	assert.Equal(t, http.StatusForbidden, request(router, "Bearer "+user).Code)

	admin := signToken(t, "admin", time.Hour)
	assert.Equal(t, http.StatusOK, request(router, "Bearer "+admin).Code)
}
