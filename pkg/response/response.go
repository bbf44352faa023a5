package response

import (
	"errors"
	"net/http"
	"time"

	"vtu-billing/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Data      any    `json:"data"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, success(c, data, ""))
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, success(c, data, ""))
}

// Message sends a 200 carrying only a message, e.g. webhook acknowledgements.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, success(c, nil, message))
}

// Error writes the envelope for err. Errors that are not an *apperror.AppError
// are reported as SYS_001. Server-side failures keep their cause on the gin
// context so the request log shows what went wrong without leaking it.
func Error(c *gin.Context, err error) {
	appErr := classify(c, err)
	c.JSON(appErr.HTTPStatus, failure(c, appErr))
}

// Abort writes the envelope for err and stops the handler chain.
func Abort(c *gin.Context, err error) {
	appErr := classify(c, err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, failure(c, appErr))
}

func classify(c *gin.Context, err error) *apperror.AppError {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.InternalError(err)
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	return appErr
}

func success(c *gin.Context, data any, message string) SuccessResponse {
	return SuccessResponse{
		Data:      data,
		Message:   message,
		RequestID: requestID(c),
		Timestamp: now(),
	}
}

func failure(c *gin.Context, appErr *apperror.AppError) ErrorResponse {
	return ErrorResponse{
		ErrorCode: appErr.Code,
		Message:   appErr.Message,
		RequestID: requestID(c),
		Timestamp: now(),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// requestID returns the id set by the RequestID middleware, or a fresh one
// for handlers mounted without it.
func requestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return uuid.NewString()
}
