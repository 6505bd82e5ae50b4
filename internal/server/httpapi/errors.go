package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/server/services"
	"github.com/labstack/echo/v4"
)

// statusFor maps an error to its HTTP status and client message. Messages
// of unexpected errors never reach the client.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" && he.Internal == nil {
			msg = s
		}
		if he.Code == http.StatusRequestEntityTooLarge {
			msg = fileTooLargeMessage
		}
		return he.Code, msg
	}

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrorValidation):
		code = http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		code = http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		code = http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		code = http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		code = http.StatusConflict
	case errors.Is(err, common.ErrFileTooLarge):
		code = http.StatusRequestEntityTooLarge
	case errors.Is(err, common.ErrUnsupportedFileType):
		code = http.StatusUnsupportedMediaType
	}

	var se *services.Error
	if errors.As(err, &se) {
		return code, se.Message
	}
	var fe *common.FieldError
	if errors.As(err, &fe) {
		return code, fe.Reason
	}
	return code, defaultMessage(code)
}

const fileTooLargeMessage = "File size must be less than 10MB"

var defaultMessages = map[int]string{
	http.StatusBadRequest:            "Invalid request",
	http.StatusUnauthorized:          "Authentication required",
	http.StatusForbidden:             "Insufficient permissions",
	http.StatusNotFound:              "Not found",
	http.StatusConflict:              "Already exists",
	http.StatusRequestEntityTooLarge: fileTooLargeMessage,
	http.StatusUnsupportedMediaType:  "Only JPEG, PNG and PDF files are allowed",
	http.StatusInternalServerError:   "Internal server error",
}

func defaultMessage(code int) string {
	if m, ok := defaultMessages[code]; ok {
		return m
	}
	return http.StatusText(code)
}

// handleError writes every error as {"message": ...}.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, api.ErrorResponse{Message: msg})
	}
	if err != nil {
		s.logger.Error(c.Request().Context(), "write error response", "error", err)
	}
}
