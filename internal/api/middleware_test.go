package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"strengthdesk/coach-app/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, userID string, role domain.Role, expiresIn time.Duration) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "coach-app",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(roles ...domain.Role) *gin.Engine {
	router := gin.New()
	group := router.Group("", AuthMiddleware(testSecret))
	if len(roles) > 0 {
		group.Use(RoleMiddleware(roles...))
	}
	group.GET("/resource", func(c *gin.Context) {
		id, _ := getUserIDFromContext(c)
		role, _ := getUserRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": id, "role": role})
	})
	return router
}

func doRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	t.Run("valid token passes", func(t *testing.T) {
		token := signToken(t, userID, domain.RoleCoach, time.Hour)
		rec := doRequest(protectedRouter(), "Bearer "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), userID)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(protectedRouter(), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := doRequest(protectedRouter(), "Token abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, userID, domain.RoleCoach, -time.Minute)
		rec := doRequest(protectedRouter(), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signature", func(t *testing.T) {
		claims := &jwtClaims{UserID: userID, Role: domain.RoleCoach, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		require.NoError(t, err)

		rec := doRequest(protectedRouter(), "Bearer "+forged)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	t.Run("allowed role", func(t *testing.T) {
		token := signToken(t, userID, domain.RoleTrainer, time.Hour)
		rec := doRequest(protectedRouter(domain.RoleCoach, domain.RoleTrainer), "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("athlete cannot reach coach routes", func(t *testing.T) {
		token := signToken(t, userID, domain.RoleAthlete, time.Hour)
		rec := doRequest(protectedRouter(domain.RoleCoach, domain.RoleTrainer), "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
