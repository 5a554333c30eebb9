package middleware

import "github.com/gin-gonic/gin"

// NoCache keeps browsers from serving stale portfolio pages after a trade
// or a logout.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
