package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksim/session"
)

// RequireLogin gates a route on an authenticated session. Requests without
// one are redirected to the login form; otherwise the user id is placed in
// the request context under "user_id".
func RequireLogin(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		userID, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
