package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcro/widget-service/internal/api/middleware"
	"github.com/vcro/widget-service/tests/testutils"
)

const testSecret = "test-admin-secret"

func signToken(t *testing.T, secret, tenantID string, expiresAt time.Time) string {
	t.Helper()

	claims := &middleware.AdminClaims{
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func setupAuthRouter() *gin.Engine {
	router := testutils.SetupTestRouter()
	authMw := middleware.NewAuthMiddleware(testSecret)
	router.GET("/tenants/:tenantId/admin", authMw.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenantId": middleware.GetAdminTenantID(c)})
	})
	return router
}

func TestAuthenticate_ValidToken(t *testing.T) {
	// Arrange
	router := setupAuthRouter()
	token := signToken(t, testSecret, testutils.TestTenantID, time.Now().Add(time.Hour))

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/"+testutils.TestTenantID+"/admin", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)

	var body map[string]string
	testutils.ParseJSONResponse(t, w, &body)
	assert.Equal(t, testutils.TestTenantID, body["tenantId"])
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	// Arrange
	router := setupAuthRouter()

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/"+testutils.TestTenantID+"/admin", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusUnauthorized, w)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	// Arrange
	router := setupAuthRouter()

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/"+testutils.TestTenantID+"/admin", nil, map[string]string{
		"Authorization": "Basic dXNlcjpwYXNz",
	})

	// Assert
	testutils.AssertStatusCode(t, http.StatusUnauthorized, w)
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	// Arrange
	router := setupAuthRouter()
	token := signToken(t, "other-secret", testutils.TestTenantID, time.Now().Add(time.Hour))

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/"+testutils.TestTenantID+"/admin", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})

	// Assert
	testutils.AssertStatusCode(t, http.StatusUnauthorized, w)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	// Arrange
	router := setupAuthRouter()
	token := signToken(t, testSecret, testutils.TestTenantID, time.Now().Add(-time.Hour))

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/"+testutils.TestTenantID+"/admin", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})

	// Assert
	testutils.AssertStatusCode(t, http.StatusUnauthorized, w)
}

func TestAuthenticate_TenantMismatch(t *testing.T) {
	// Arrange
	router := setupAuthRouter()
	token := signToken(t, testSecret, "tenant-other", time.Now().Add(time.Hour))

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/"+testutils.TestTenantID+"/admin", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})

	// Assert
	testutils.AssertStatusCode(t, http.StatusForbidden, w)

	var body map[string]string
	testutils.ParseJSONResponse(t, w, &body)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestAuthenticate_CaseInsensitiveBearer(t *testing.T) {
	// Arrange
	router := setupAuthRouter()
	token := signToken(t, testSecret, testutils.TestTenantID, time.Now().Add(time.Hour))

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/"+testutils.TestTenantID+"/admin", nil, map[string]string{
		"Authorization": "bearer " + token,
	})

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
}
