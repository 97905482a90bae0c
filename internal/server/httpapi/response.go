package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/astrochat/internal/common"
)

// APIResponse is the envelope of every JSON response.
type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Error     any       `json:"error,omitempty"`
}

func respondOK[T any](c *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString(requestIDKey),
		Success:   true,
		Message:   message,
		Data:      data,
	})
}

func respondError(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString(requestIDKey),
		Success:   false,
		Message:   message,
		Error:     details,
	})
}

// statusOf maps an error kind to the HTTP status reported for it.
func statusOf(err error) int {
	switch common.KindOf(err) {
	case common.KindOK:
		return http.StatusOK
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindInvalid, common.KindValidation:
		return http.StatusBadRequest
	case common.KindConflict:
		return http.StatusConflict
	case common.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondKind reports err with the status of its kind. Storage and internal
// failures get a generic message.
func respondKind(c *gin.Context, err error, message string) {
	kind := common.KindOf(err)
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		message = "internal error"
	} else if message == "" {
		message = err.Error()
	}
	respondError(c, status, message, kind.String())
}
