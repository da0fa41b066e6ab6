package router

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// SetupStaticRouter serves the single-page bundle from dir. Unknown paths
// outside the API fall back to index.html.
func SetupStaticRouter(e *echo.Echo, dir string) {
	e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
		Root:  dir,
		Index: "index.html",
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/v1/") || strings.HasPrefix(p, "/api/") || p == "/ws" || p == "/health" || p == "/firebase-health"
		},
	}))
}

