package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lromero86/tacopos-api/internal/application/service"
	"github.com/lromero86/tacopos-api/internal/presentation/http/dto/request"
	"github.com/lromero86/tacopos-api/internal/presentation/http/dto/response"
	"github.com/lromero86/tacopos-api/pkg/money"
)

// ExpenseHandler handles expense ledger requests
type ExpenseHandler struct {
	tillService *service.TillService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(tillService *service.TillService) *ExpenseHandler {
	return &ExpenseHandler{tillService: tillService}
}

// CreateExpense records a money outflow
// @Summary Record expense
// @Description Record an expense against the current business date
// @Tags expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateExpenseRequest true "Expense"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req request.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	expense, err := h.tillService.RecordExpense(
		c.Request.Context(),
		GetOperatorID(c),
		money.FromDecimal(req.Amount),
		req.Category,
		req.Description,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded", response.NewExpenseResponse(*expense))
}

// ListExpenses returns all expenses for the current business date,
// newest first
// @Summary List expenses
// @Description Live view of expenses in the current scope
// @Tags expenses
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.tillService.Expenses(GetOperatorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expenses retrieved", gin.H{
		"expenses": response.NewExpenseListResponse(expenses),
	})
}
