package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"stocksim/service"
	"stocksim/session"
)

// Handler carries the dependencies shared by all route handlers. Nothing is
// read from package-level state.
type Handler struct {
	accounts *service.AccountService
	trading  *service.TradingService
	sessions *session.Manager
	log      *logrus.Logger
}

func New(accounts *service.AccountService, trading *service.TradingService, sessions *session.Manager, log *logrus.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		trading:  trading,
		sessions: sessions,
		log:      log,
	}
}

// FuncMap holds the template helpers; register before loading templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"usd": usd,
	}
}

func usd(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// userID returns the authenticated user id set by the session guard.
func userID(c *gin.Context) uint {
	return c.MustGet("user_id").(uint)
}
