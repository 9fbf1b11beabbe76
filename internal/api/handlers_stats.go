package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendwise/expense-api/internal/aggregate"
	"github.com/spendwise/expense-api/internal/models"
	"github.com/spendwise/expense-api/internal/report"
)

func (s *Server) dashboardHandler(c *gin.Context) {
	d, err := s.svc.Stats.Dashboard(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "expense")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) overviewHandler(c *gin.Context) {
	o, err := s.svc.Stats.Overview(c.Request.Context(), currentUser(c), c.Query("month"))
	if err != nil {
		respondError(c, err, "expense")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) exportCSVHandler(c *gin.Context) {
	expenses, err := s.svc.Stats.Expenses(c.Request.Context(), currentUser(c), c.Query("month"))
	if err != nil {
		respondError(c, err, "expense")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename(s.svc.Stats.Now())))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", report.ExportCSV(expenses))
}

func (s *Server) categoryChartHandler(c *gin.Context) {
	s.chart(c, "Spending by Category", aggregate.CategoryBreakdown)
}

func (s *Server) paymentChartHandler(c *gin.Context) {
	s.chart(c, "Spending by Payment Mode", aggregate.PaymentModeBreakdown)
}

func (s *Server) chart(c *gin.Context, subject string, breakdown func([]models.Expense) []aggregate.Entry) {
	month := c.Query("month")
	expenses, err := s.svc.Stats.Expenses(c.Request.Context(), currentUser(c), month)
	if err != nil {
		respondError(c, err, "expense")
		return
	}
	png, err := report.PieChart(breakdown(expenses), report.ChartTitle(subject, month))
	if errors.Is(err, report.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"message": "no expenses to chart"})
		return
	}
	if err != nil {
		respondError(c, err, "expense")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
