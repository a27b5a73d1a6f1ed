package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// NumericParam guards item routes: the path parameter name must be a
// positive decimal integer that fits in uint64.  Anything else is answered
// with 404 before the handler runs.  The parsed value is available through
// IDParam.
func NumericParam(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := parseID(c.Param(name))
			if !ok {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
			}
			c.Set(ctxParamID, id)
			return next(c)
		}
	}
}

// IDParam returns the id validated by NumericParam, falling back to parsing
// the "id" path parameter when the guard did not run.
func IDParam(c echo.Context) (uint64, bool) {
	if id, ok := c.Get(ctxParamID).(uint64); ok {
		return id, true
	}
	return parseID(c.Param("id"))
}

func parseID(s string) (uint64, bool) {
	// Leading zeros are fine: "007" names row 7.
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
