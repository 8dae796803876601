package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-rooms/models"
	"hotel-rooms/services"
	"hotel-rooms/stores"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAuth(t *testing.T) *services.AuthService {
	t.Helper()
	mem := stores.NewMemoryDB()
	for _, a := range []models.Admin{
		{Username: "boss", Role: models.RoleAdmin},
		{Username: "desk", Role: models.RoleStaff},
	} {
		hash, err := services.HashPassword("pw")
		require.NoError(t, err)
		a.Password = hash
		mem.PutAdmin(a)
	}
	return services.NewAuthService(mem.Admins(), mem.Sessions(), time.Hour)
}

func newTestEngine(auth *services.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/open", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })
	r.GET("/staff", Protect(auth), func(c *gin.Context) {
		admin, _ := CurrentAdmin(c)
		c.String(http.StatusOK, admin.Username)
	})
	r.GET("/admin", Protect(auth), Authorize(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtectRequiresSession(t *testing.T) {
	auth := newTestAuth(t)
	r := newTestEngine(auth)

	w := do(r, "/staff", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Not authorized to access this route"}`, w.Body.String())

	w = do(r, "/staff", "made-up")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _, err := auth.Login(context.Background(), "desk", "pw")
	require.NoError(t, err)
	w = do(r, "/staff", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "desk", w.Body.String())
}

func TestAuthorizeChecksRole(t *testing.T) {
	auth := newTestAuth(t)
	r := newTestEngine(auth)

	staff, _, err := auth.Login(context.Background(), "desk", "pw")
	require.NoError(t, err)
	w := do(r, "/admin", staff)
	assert.Equal(t, http.StatusForbidden, w.Code)

	boss, _, err := auth.Login(context.Background(), "boss", "pw")
	require.NoError(t, err)
	w = do(r, "/admin", boss)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newTestEngine(newTestAuth(t))

	w := do(r, "/open", "")
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestBearerToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	c.Request.Header.Set("Authorization", "bearer  xyz ")
	assert.Equal(t, "xyz", BearerToken(c))

	c.Request.Header.Set("Authorization", "Basic xyz")
	assert.Empty(t, BearerToken(c))
}
