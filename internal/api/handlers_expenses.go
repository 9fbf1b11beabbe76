package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/spendwise/expense-api/internal/models"
	"github.com/spendwise/expense-api/internal/service"
)

// expenseRequest is the body of expense create and update calls. Absent and
// null fields decode to nil.
type expenseRequest struct {
	Amount      *decimal.Decimal    `json:"amount"`
	Category    *string             `json:"category"`
	Date        *models.Date        `json:"date"`
	Note        *string             `json:"note"`
	PaymentMode *models.PaymentMode `json:"paymentMode"`
}

func (r expenseRequest) toNew() service.NewExpense {
	in := service.NewExpense{Amount: r.Amount}
	if r.Category != nil {
		in.Category = *r.Category
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	if r.Note != nil {
		in.Note = *r.Note
	}
	if r.PaymentMode != nil {
		in.PaymentMode = *r.PaymentMode
	}
	return in
}

func (r expenseRequest) toPatch() models.ExpensePatch {
	return models.ExpensePatch{
		Amount:      r.Amount,
		Category:    r.Category,
		Date:        r.Date,
		Note:        r.Note,
		PaymentMode: r.PaymentMode,
	}
}

func (s *Server) createExpenseHandler(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	e, err := s.svc.Expenses.Create(c.Request.Context(), currentUser(c), req.toNew())
	if err != nil {
		respondError(c, err, "expense")
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (s *Server) listExpensesHandler(c *gin.Context) {
	expenses, err := s.svc.Expenses.List(c.Request.Context(), currentUser(c), service.ListFilter{
		Month:  c.Query("month"),
		Search: c.Query("q"),
	})
	if err != nil {
		respondError(c, err, "expense")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (s *Server) getExpenseHandler(c *gin.Context) {
	e, err := s.svc.Expenses.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "expense")
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) updateExpenseHandler(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	e, err := s.svc.Expenses.Update(c.Request.Context(), currentUser(c), c.Param("id"), req.toPatch())
	if err != nil {
		respondError(c, err, "expense")
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) deleteExpenseHandler(c *gin.Context) {
	if err := s.svc.Expenses.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, err, "expense")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
