package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit bounds the request body at the transport. The limit should sit
// above the policy size ceiling so that merely-oversized uploads still reach
// the validator, which owns the user-facing size reason.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
