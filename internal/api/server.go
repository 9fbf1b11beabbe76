// Package api exposes the expense tracker over HTTP with gin.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spendwise/expense-api/internal/service"
)

// Services bundles the operations the HTTP surface dispatches to.
type Services struct {
	Accounts *service.Accounts
	Expenses *service.Expenses
	Budgets  *service.Budgets
	Stats    *service.Stats
}

// Server routes HTTP requests to the services.
type Server struct {
	engine *gin.Engine
	svc    Services
}

// New builds the router. Every route except /healthz lives under prefix.
func New(prefix string, svc Services) *Server {
	s := &Server{engine: gin.New(), svc: svc}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.routes(normalizePrefix(prefix))
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes(prefix string) {
	s.engine.GET("/healthz", healthHandler)

	api := s.engine.Group(prefix)
	api.POST("/auth/signup", s.signupHandler)
	api.POST("/auth/login", s.loginHandler)

	authed := api.Group("")
	authed.Use(bearerAuth(s.svc.Accounts))
	authed.GET("/auth/me", s.meHandler)

	authed.POST("/expenses", s.createExpenseHandler)
	authed.GET("/expenses", s.listExpensesHandler)
	authed.GET("/expenses/:id", s.getExpenseHandler)
	authed.PUT("/expenses/:id", s.updateExpenseHandler)
	authed.DELETE("/expenses/:id", s.deleteExpenseHandler)

	authed.POST("/budgets", s.createBudgetHandler)
	authed.GET("/budgets", s.listBudgetsHandler)
	authed.GET("/budgets/status", s.budgetStatusHandler)
	authed.PUT("/budgets/:id", s.updateBudgetHandler)
	authed.DELETE("/budgets/:id", s.deleteBudgetHandler)

	authed.GET("/stats", s.overviewHandler)
	authed.GET("/stats/dashboard", s.dashboardHandler)
	authed.GET("/reports/expenses.csv", s.exportCSVHandler)
	authed.GET("/reports/charts/categories.png", s.categoryChartHandler)
	authed.GET("/reports/charts/payment-modes.png", s.paymentChartHandler)
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return "/"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
