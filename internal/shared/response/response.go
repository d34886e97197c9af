package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/shared"
	"shop-backend/internal/shared/apperror"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Timestamp        time.Time         `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// Page is the envelope of paginated list endpoints. CurrentPage is zero-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Size          int   `json:"size"`
}

func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{Content: content, CurrentPage: page, TotalPages: totalPages, TotalElements: total, Size: size}
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error translates err into the matching status and error body.
// Unclassified errors become 500 and their text is only logged.
func Error(c *gin.Context, err error) {
	var appErr *apperror.Error
	status := http.StatusInternalServerError
	label := "Internal Server Error"
	message := "An unexpected error occurred"
	var fields map[string]string

	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Kind {
		case apperror.KindNotFound:
			status, label = http.StatusNotFound, "Not Found"
		case apperror.KindAlreadyExists, apperror.KindConflict:
			status, label = http.StatusConflict, "Conflict"
		case apperror.KindValidation:
			status, label = http.StatusBadRequest, "Validation Failed"
			fields = appErr.Fields
		case apperror.KindBadRequest:
			status, label = http.StatusBadRequest, "Bad Request"
		case apperror.KindUnauthorized:
			status, label = http.StatusUnauthorized, "Unauthorized"
		case apperror.KindForbidden:
			status, label = http.StatusForbidden, "Forbidden"
		}
	} else {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(shared.ContextRequestID)).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")
	}

	write(c, status, label, message, fields)
}

func BadRequest(c *gin.Context, message string) {
	write(c, http.StatusBadRequest, "Bad Request", message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	write(c, http.StatusUnauthorized, "Unauthorized", message, nil)
}

func Forbidden(c *gin.Context, message string) {
	write(c, http.StatusForbidden, "Forbidden", message, nil)
}

func NotFound(c *gin.Context, message string) {
	write(c, http.StatusNotFound, "Not Found", message, nil)
}

func InternalServerError(c *gin.Context, message string) {
	write(c, http.StatusInternalServerError, "Internal Server Error", message, nil)
}

func write(c *gin.Context, status int, label, message string, fields map[string]string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Timestamp:        time.Now().UTC(),
		Status:           status,
		Error:            label,
		Message:          message,
		Path:             c.Request.URL.Path,
		ValidationErrors: fields,
	})
}
