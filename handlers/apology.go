package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksim/service"
)

// apology renders the uniform error page.
func apology(c *gin.Context, status int, message string) {
	c.HTML(status, "apology.html", gin.H{
		"Status":  status,
		"Message": message,
	})
}

// renderError maps a service error to an apology page. Business-rule
// violations keep their message; anything else is logged and rendered as a
// generic server error.
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownSymbol),
		errors.Is(err, service.ErrInvalidShares),
		errors.Is(err, service.ErrInsufficientCash),
		errors.Is(err, service.ErrNoPosition),
		errors.Is(err, service.ErrInsufficientShares),
		errors.Is(err, service.ErrUsernameTaken):
		apology(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		apology(c, http.StatusForbidden, err.Error())
	default:
		h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		apology(c, http.StatusInternalServerError, "internal server error")
	}
}

// NotFound handles unrouted paths.
func (h *Handler) NotFound(c *gin.Context) {
	apology(c, http.StatusNotFound, "not found")
}

// Recover turns panics into the generic apology page.
func (h *Handler) Recover(c *gin.Context, err any) {
	h.log.WithField("panic", err).Error("recovered from panic")
	apology(c, http.StatusInternalServerError, "internal server error")
}
