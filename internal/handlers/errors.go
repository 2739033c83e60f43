package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mauriciosoaresd/todo-study-spring/internal/dto"
	"github.com/mauriciosoaresd/todo-study-spring/internal/service"
	"github.com/mauriciosoaresd/todo-study-spring/internal/validation"

	"github.com/gin-gonic/gin"
)

// ParamError reports a path or query parameter that could not be converted
// to its declared type. Allowed lists the legal values of enum parameters.
type ParamError struct {
	Name    string
	Value   string
	Type    string
	Allowed []string
}

func (e *ParamError) Error() string {
	msg := fmt.Sprintf("Failed to convert '%s' with value: '%s' -  Must be '%s'", e.Name, e.Value, e.Type)
	if len(e.Allowed) > 0 {
		msg += "[" + strings.Join(e.Allowed, ", ") + "]"
	}
	return msg
}

// ParamRangeError reports a well-typed parameter outside its allowed range.
type ParamRangeError struct {
	Detail string
}

func (e *ParamRangeError) Error() string { return e.Detail }

// BodyError wraps a request body that could not be decoded.
type BodyError struct {
	Err error
}

func (e *BodyError) Error() string { return e.Err.Error() }

func (e *BodyError) Unwrap() error { return e.Err }

// writeError translates err into the error body and status code. It is the
// only place that maps failures to HTTP.
func writeError(c *gin.Context, err error) {
	status, body := errorResponse(err, c.Request.URL.Path)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, body)
}

func errorResponse(err error, path string) (int, dto.ErrorDetails) {
	var (
		violations validation.Violations
		fieldErr   *validation.FieldError
		fieldKey   *validation.UnexpectedFieldError
		paramErr   *ParamError
		rangeErr   *ParamRangeError
		bodyErr    *BodyError
	)
	body := dto.ErrorDetails{Timestamp: time.Now()}

	switch {
	case errors.Is(err, service.ErrNotFound):
		body.Message, body.Details = "Resource not found", err.Error()
		return http.StatusNotFound, body
	case errors.As(err, &violations):
		body.Message, body.Details = "Invalid field inputs", map[string]string(violations)
		return http.StatusBadRequest, body
	case errors.As(err, &fieldErr):
		body.Message, body.Details = "Invalid field inputs", map[string]string{fieldErr.Field: fieldErr.Message}
		return http.StatusBadRequest, body
	case errors.As(err, &fieldKey):
		body.Message, body.Details = "Unexpected field", fieldKey.Error()
		return http.StatusBadRequest, body
	case errors.As(err, &paramErr):
		body.Message, body.Details = "Invalid Argument Type", paramErr.Error()
		return http.StatusBadRequest, body
	case errors.As(err, &rangeErr):
		body.Message, body.Details = "Invalid Parameter Input", rangeErr.Detail
		return http.StatusBadRequest, body
	case errors.Is(err, service.ErrInvalidPage):
		body.Message, body.Details = "Invalid Parameter Input", err.Error()
		return http.StatusBadRequest, body
	case errors.As(err, &bodyErr):
		body.Message, body.Details = "Invalid body request", bodyErr.Error()
		return http.StatusBadRequest, body
	}

	msg := err.Error()
	if cause := errors.Unwrap(err); cause != nil {
		msg = cause.Error()
	}
	body.Message, body.Details = msg, "uri="+path
	return http.StatusInternalServerError, body
}

// Recovery turns a panic into the catch-all error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		writeError(c, fmt.Errorf("panic: %v", rec))
	})
}
