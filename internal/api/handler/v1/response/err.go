package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

type Err struct {
	Err     error             `json:"-"`
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (e *Err) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

// RenderErr writes e as JSON and aborts the chain. Server errors are logged
// with their cause; the cause is never sent to the client.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.Status >= http.StatusInternalServerError {
		zap.L().Error(e.Message,
			zap.Error(e.Err),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.String("request_id", requestid.Get(ctx)),
		)
	}

	ctx.AbortWithStatusJSON(e.Status, e)
}

// ErrBadRequest turns ozzo validation errors into per-field messages.
func ErrBadRequest(err error) *Err {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for field, fieldErr := range verrs {
			if fieldErr != nil {
				fields[field] = fieldErr.Error()
			}
		}

		return &Err{
			Err:     err,
			Status:  http.StatusBadRequest,
			Message: "invalid request",
			Errors:  fields,
		}
	}

	return &Err{
		Err:     err,
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}

func ErrNotFound(resource, field string, value interface{}) *Err {
	return &Err{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%v with %v=%v not found", resource, field, value),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		Err:     err,
		Status:  http.StatusUnauthorized,
		Message: err.Error(),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		Err:     err,
		Status:  http.StatusUnauthorized,
		Message: "invalid credentials",
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		Err:     err,
		Status:  http.StatusForbidden,
		Message: err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		Err:     err,
		Status:  http.StatusConflict,
		Message: err.Error(),
	}
}

func ErrTooManyRequests() *Err {
	return &Err{
		Status:  http.StatusTooManyRequests,
		Message: "too many requests, slow down",
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:     err,
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
	}
}

// ErrBadGateway reports an upstream failure; the upstream detail is included.
func ErrBadGateway(err error) *Err {
	return &Err{
		Err:     err,
		Status:  http.StatusBadGateway,
		Message: err.Error(),
	}
}
