package middleware

import "github.com/gin-gonic/gin"

// CacheControlMiddleware sets a fixed Cache-Control value, e.g. "no-store"
// for the notes API whose responses change on every write.
func CacheControlMiddleware(value string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
