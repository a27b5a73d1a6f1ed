package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/little-lemon/internal/serializer"
)

// storeTimeout bounds every data store call made while serving a request.
const storeTimeout = 5 * time.Second

func storeCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

var errInvalidBody = echo.NewHTTPError(http.StatusBadRequest, "invalid request body")

// bindBody decodes the request body into a field map.  JSON objects are
// decoded as is; form posts are turned into string fields.  An empty body
// yields an empty map, leaving "required" errors to the serializer.
func bindBody(c echo.Context) (serializer.Body, error) {
	req := c.Request()
	mediatype, _, _ := strings.Cut(req.Header.Get(echo.HeaderContentType), ";")
	mediatype = strings.TrimSpace(mediatype)

	if mediatype == echo.MIMEApplicationForm || mediatype == echo.MIMEMultipartForm {
		params, err := c.FormParams()
		if err != nil {
			return nil, errInvalidBody
		}
		body := serializer.Body{}
		for k, v := range params {
			if len(v) == 0 {
				continue
			}
			raw, _ := json.Marshal(v[0]) // a string always marshals
			body[k] = raw
		}
		return body, nil
	}

	var body serializer.Body
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
			return nil, he
		}
		return nil, errInvalidBody
	}
	if body == nil {
		body = serializer.Body{}
	}
	return body, nil
}

func validationFailed(c echo.Context, errs serializer.FieldErrors) error {
	return c.JSON(http.StatusBadRequest, errs)
}

func notFound(c echo.Context, what string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": what + " not found"})
}

// internalError logs err with the request id and answers 500 without
// leaking details.
func internalError(c echo.Context, op string, err error) error {
	c.Logger().Errorf("%s failed (request_id=%s): %v", op, requestID(c), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HTTPErrorHandler renders every error that reaches echo as {"error": ...}.
// Unknown paths become 404 and known paths with the wrong verb 405.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch code {
		case http.StatusNotFound:
			msg = "not found"
		case http.StatusMethodNotAllowed:
			msg = "method not allowed"
		default:
			if s, ok := he.Message.(string); ok && s != "" {
				msg = s
			} else {
				msg = strings.ToLower(http.StatusText(code))
			}
		}
	}
	if code >= http.StatusInternalServerError {
		c.Logger().Errorf("unhandled error (request_id=%s): %v", requestID(c), err)
		msg = "internal server error"
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"error": msg})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
