package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the payload half of a success envelope.
type Response map[string]interface{}

// Error kinds returned on the wire. Clients branch on kind, not message.
const (
	KindUnauthenticated = "unauthenticated"
	KindUnauthorized    = "unauthorized"
	KindNotFound        = "not_found"
	KindValidation      = "validation"
	KindStorage         = "storage"
)

var kindHTTPStatus = map[string]int{
	KindUnauthenticated: http.StatusUnauthorized,
	KindUnauthorized:    http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindValidation:      http.StatusBadRequest,
	KindStorage:         http.StatusInternalServerError,
}

// Generic per-kind messages. Backend error detail is logged server-side and
// never echoed to the caller.
var kindMessage = map[string]string{
	KindUnauthenticated: "Login required",
	KindUnauthorized:    "You do not have access to this resource",
	KindNotFound:        "Not found",
	KindValidation:      "Invalid request",
	KindStorage:         "Something went wrong, please try again",
}

// Success writes the uniform success envelope, merging data into it.
func Success(c *gin.Context, data Response) {
	body := gin.H{"status": "success"}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes the uniform error envelope with the generic message for kind.
func Fail(c *gin.Context, kind string) {
	FailMsg(c, kind, kindMessage[kind])
}

// FailMsg writes the error envelope with a specific (still non-sensitive)
// message, e.g. which field failed validation.
func FailMsg(c *gin.Context, kind, msg string) {
	status, ok := kindHTTPStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{
		"status":  "error",
		"kind":    kind,
		"message": msg,
	})
}
