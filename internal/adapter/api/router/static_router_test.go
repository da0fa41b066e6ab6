package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticServer(t *testing.T) *echo.Echo {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>cwrs</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log('cwrs')"), 0o644))

	e := echo.New()
	SetupStaticRouter(e, dir)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStaticRouter_ServesAssets(t *testing.T) {
	e := newStaticServer(t)

	rec := get(e, "/assets/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log('cwrs')", rec.Body.String())

	rec = get(e, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<html>cwrs</html>")
}

func TestStaticRouter_FallsBackToIndex(t *testing.T) {
	e := newStaticServer(t)

	for _, path := range []string{"/buyer/cart", "/seller/dashboard"} {
		rec := get(e, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "<html>cwrs</html>", path)
	}
}

func TestStaticRouter_SkipsAPIPaths(t *testing.T) {
	e := newStaticServer(t)

	for _, path := range []string{"/v1/unknown", "/api/x", "/ws"} {
		rec := get(e, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "<html>cwrs</html>", path)
	}
}
