package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/spendwise/expense-api/internal/models"
	"github.com/spendwise/expense-api/internal/service"
)

type budgetRequest struct {
	Category *string              `json:"category"`
	Amount   *decimal.Decimal     `json:"amount"`
	Period   *models.BudgetPeriod `json:"period"`
}

func (s *Server) createBudgetHandler(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	in := service.NewBudget{Amount: req.Amount}
	if req.Category != nil {
		in.Category = *req.Category
	}
	if req.Period != nil {
		in.Period = *req.Period
	}
	b, err := s.svc.Budgets.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		respondError(c, err, "budget for this category")
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (s *Server) listBudgetsHandler(c *gin.Context) {
	budgets, err := s.svc.Budgets.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "budget")
		return
	}
	c.JSON(http.StatusOK, budgets)
}

func (s *Server) budgetStatusHandler(c *gin.Context) {
	report, err := s.svc.Budgets.Status(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "budget")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) updateBudgetHandler(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Category != nil {
		badRequest(c, "category cannot be changed")
		return
	}
	b, err := s.svc.Budgets.Update(c.Request.Context(), currentUser(c), c.Param("id"), models.BudgetPatch{
		Amount: req.Amount,
		Period: req.Period,
	})
	if err != nil {
		respondError(c, err, "budget")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) deleteBudgetHandler(c *gin.Context) {
	if err := s.svc.Budgets.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, err, "budget")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}
