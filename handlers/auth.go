package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksim/session"
)

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type registerForm struct {
	Username     string `form:"username" binding:"required"`
	Password     string `form:"password" binding:"required"`
	Confirmation string `form:"confirmation" binding:"required"`
}

func (h *Handler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		apology(c, http.StatusForbidden, "must provide username and password")
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	token, err := h.sessions.Issue(c.Request.Context(), user.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.SetCookie(session.CookieName, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil {
		if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
			h.log.WithError(err).Warn("failed to revoke session")
		}
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		apology(c, http.StatusBadRequest, "must provide username, password, and confirmation")
		return
	}
	if form.Password != form.Confirmation {
		apology(c, http.StatusBadRequest, "passwords don't match")
		return
	}

	if _, err := h.accounts.Register(c.Request.Context(), form.Username, form.Password); err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}
