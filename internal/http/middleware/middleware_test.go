package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bizadmin/internal/domain"
	"bizadmin/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubParser struct {
	claims *services.Claims
	err    error
	gotRaw string
}

func (s *stubParser) Parse(_ context.Context, raw, _ string) (*services.Claims, error) {
	s.gotRaw = raw
	return s.claims, s.err
}

func perform(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestIDGeneratedOrKept(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = perform(r, req)
	assert.Equal(t, "abc-123", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "has spaces")
	w = perform(r, req)
	assert.NotEqual(t, "has spaces", w.Body.String())
}

func TestAuthRequired(t *testing.T) {
	parser := &stubParser{claims: &services.Claims{
		Role:             "staff",
		Type:             services.TokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "42", ID: "jti-1"},
	}}
	r := gin.New()
	r.Use(RequestID(), AuthRequired(parser))
	r.GET("/me", func(c *gin.Context) {
		rc := GetRequestContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": rc.UserID, "role": rc.Role, "jti": GetClaims(c).ID})
	})

	w := perform(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, domain.CodeUnauthorized, body["code"])
	assert.NotEmpty(t, body["request_id"])

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w = perform(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok", parser.gotRaw)
	body = decode(t, w)
	assert.Equal(t, float64(42), body["user_id"])
	assert.Equal(t, "staff", body["role"])
	assert.Equal(t, "jti-1", body["jti"])

	parser.err = domain.UnauthorizedError{Msg: "token revoked"}
	w = perform(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token revoked", decode(t, w)["error"])
}

func TestRequireRoles(t *testing.T) {
	withRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set(userRoleKey, role)
			}
		}
	}
	build := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(withRole(role), RequireRoles("Admin", " staff "))
		r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		return r
	}

	assert.Equal(t, http.StatusNoContent, perform(build("admin"), httptest.NewRequest(http.MethodPost, "/", nil)).Code)
	assert.Equal(t, http.StatusNoContent, perform(build("STAFF"), httptest.NewRequest(http.MethodPost, "/", nil)).Code)

	w := perform(build("user"), httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, domain.CodeForbidden, decode(t, w)["code"])

	assert.Equal(t, http.StatusUnauthorized, perform(build(""), httptest.NewRequest(http.MethodPost, "/", nil)).Code)
}

func TestRequireRolesFor(t *testing.T) {
	build := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set(userRoleKey, role) })
		r.PATCH("/:resource/:id", RequireRolesFor([]string{"users"}, "admin"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
		return r
	}

	for _, path := range []string{"/users/2", "/User/2", "/user/2"} {
		w := perform(build("staff"), httptest.NewRequest(http.MethodPatch, path, nil))
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.Equal(t, http.StatusNoContent, perform(build("admin"), httptest.NewRequest(http.MethodPatch, path, nil)).Code, path)
	}
	assert.Equal(t, http.StatusNoContent, perform(build("staff"), httptest.NewRequest(http.MethodPatch, "/products/2", nil)).Code)
}

func TestRecoveryWritesEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := perform(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, domain.CodeInternal, body["code"])
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://admin.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := perform(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
