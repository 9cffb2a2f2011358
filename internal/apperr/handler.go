package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}

// GlobalErrorHandler maps the error taxonomy onto HTTP responses.
// Anything unclassified is a 500 with a generic body; details stay in the
// log.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := classify(err)
		if code == http.StatusInternalServerError {
			slog.Error("Unhandled error", "error", err, "uri", c.Request().RequestURI)
		}
		_ = c.JSON(code, body)
	}
}

func classify(err error) (int, errorBody) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorBody{Error: ve.Message, Title: "validation error"}
	}

	var ce *ConflictError
	if errors.As(err, &ce) {
		return http.StatusConflict, errorBody{Error: ce.Error(), Title: "conflict"}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorBody{Error: fmt.Sprintf("%v", he.Message)}
	}

	return http.StatusInternalServerError, errorBody{Error: "internal server error"}
}
