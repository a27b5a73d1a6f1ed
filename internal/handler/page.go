package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Index renders the landing page.  It needs e.Renderer to be set.
func Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", map[string]any{
		"Title":   "Little Lemon",
		"Tagline": "Chicago",
		"Year":    time.Now().Year(),
	})
}
