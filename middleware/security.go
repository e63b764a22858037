package middleware

import (
	"net/http"

	"noteful/utils"

	"github.com/gin-gonic/gin"
)

// RequestSizeLimiter rejects bodies larger than maxSize with 413. Bodies
// without a Content-Length are capped by MaxBytesReader, which makes JSON
// binding fail and the handler answer 400.
func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.RequestEntityTooLarge(c, "Request body too large")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
