package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(cfg Config) *echo.Echo {
	e := echo.New()
	e.Use(Middleware(cfg))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/items", ok)
	e.POST("/items", ok)
	e.POST("/open", ok)
	return e
}

func issuedToken(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "XSRF-TOKEN" {
			return ck
		}
	}
	t.Fatal("no token cookie issued")
	return nil
}

func TestGetIssuesTokenCookie(t *testing.T) {
	t.Parallel()

	e := newServer(Config{})
	ck := issuedToken(t, e)
	assert.NotEmpty(t, ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.False(t, ck.HttpOnly)
}

func TestPostRequiresMatchingHeader(t *testing.T) {
	t.Parallel()

	e := newServer(Config{})
	ck := issuedToken(t, e)

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.Host = "shop.local"
	req.Header.Set("Origin", "http://shop.local")
	req.AddCookie(ck)
	req.Header.Set("X-CSRF-Token", ck.Value)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostWithoutHeaderRejected(t *testing.T) {
	t.Parallel()

	e := newServer(Config{})
	ck := issuedToken(t, e)

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.Host = "shop.local"
	req.Header.Set("Origin", "http://shop.local")
	req.AddCookie(ck)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCrossOriginPostRejected(t *testing.T) {
	t.Parallel()

	e := newServer(Config{})
	ck := issuedToken(t, e)

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.Host = "shop.local"
	req.Header.Set("Origin", "http://evil.example")
	req.AddCookie(ck)
	req.Header.Set("X-CSRF-Token", ck.Value)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSkipPathsBypassCheck(t *testing.T) {
	t.Parallel()

	e := newServer(Config{SkipPaths: []string{"/open"}})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/open", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
