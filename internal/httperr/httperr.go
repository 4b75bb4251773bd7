package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
}

var statusByKind = map[Kind]int{
	KindNotFound:          http.StatusNotFound,
	KindInvalidArgument:   http.StatusBadRequest,
	KindSlotConflict:      http.StatusConflict,
	KindInvalidTransition: http.StatusConflict,
	KindOutOfWindow:       http.StatusUnprocessableEntity,
	KindUnauthorized:      http.StatusForbidden,
	KindUnavailable:       http.StatusServiceUnavailable,
	KindDeadlineExceeded:  http.StatusGatewayTimeout,
}

var messageByKind = map[Kind]string{
	KindNotFound:          "Resource not found.",
	KindInvalidArgument:   "Invalid request.",
	KindSlotConflict:      "This time slot is already booked.",
	KindInvalidTransition: "Appointment cannot change to that status.",
	KindOutOfWindow:       "Date is outside the booking window.",
	KindUnauthorized:      "Not allowed.",
	KindUnavailable:       "Service temporarily unavailable, try again.",
	KindDeadlineExceeded:  "Request timed out.",
}

// StatusFor returns the HTTP status a kind is reported with.
func StatusFor(kind Kind) int {
	if s, ok := statusByKind[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// Respond maps any error returned by a use case onto the HTTP response.
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)
	if kind == "" {
		_ = c.Error(err)
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	c.JSON(StatusFor(kind), HTTPError{
		Code:    CodeOf(err),
		Kind:    kind,
		Message: messageByKind[kind],
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthenticated(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, HTTPError{
		Code:    code,
		Message: "Authentication required.",
	})
}
