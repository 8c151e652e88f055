package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/nebs-hr/noticeboard/pkg/errors"
)

// Response defines the base API payload.
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Meta       *Meta       `json:"meta,omitempty"`
	Error      *ErrorInfo  `json:"error,omitempty"`
	StatusCode int         `json:"status_code,omitempty"`
	Timestamp  string      `json:"timestamp"`
}

// ErrorInfo holds error details to send to clients.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta describes pagination metadata for list responses. LastPage is the
// ceiling of total/limit and stays 0 when no rows match, so none of the
// fields are omitted when zero.
type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

// Success writes a JSON success response.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

// SuccessWithMeta writes a JSON success response including pagination metadata.
func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success:   true,
		Data:      data,
		Meta:      meta,
		Timestamp: now(),
	})
}

// Error writes a JSON error response derived from an AppError.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    appErr.Code,
			Message: appErr.Message,
		},
		StatusCode: status,
		Timestamp:  now(),
	})
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
