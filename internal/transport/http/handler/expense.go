package handler

import (
	"log/slog"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

type expenseRequest struct {
	Title      string    `json:"title"      binding:"required,max=200"`
	Amount     float64   `json:"amount"     binding:"required,gt=0"`
	Category   string    `json:"category"   binding:"required,max=100"`
	Date       time.Time `json:"date"       binding:"required"`
	Note       string    `json:"note"       binding:"max=1000"`
	Recurrence *string   `json:"recurrence" binding:"omitempty,max=100"`
}

type expenseResponse struct {
	ID             string     `json:"id"`
	Owner          string     `json:"owner"`
	Title          string     `json:"title"`
	Amount         float64    `json:"amount"`
	Category       string     `json:"category"`
	Date           time.Time  `json:"date"`
	Note           string     `json:"note"`
	Recurrence     *string    `json:"recurrence"`
	NextOccurrence *time.Time `json:"nextOccurrence,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func NewExpenseHandler(uc resourceUsecaser[*domain.Expense], logger *slog.Logger) *ResourceHandler[*domain.Expense] {
	return newResourceHandler(uc, bindExpense, renderExpense, logger)
}

func bindExpense(c *gin.Context) (*domain.Expense, error) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &domain.Expense{
		Title:      req.Title,
		Amount:     req.Amount,
		Category:   req.Category,
		Date:       req.Date,
		Note:       req.Note,
		Recurrence: req.Recurrence,
	}, nil
}

func renderExpense(e *domain.Expense) any {
	return expenseResponse{
		ID:             e.ID,
		Owner:          e.Owner,
		Title:          e.Title,
		Amount:         e.Amount,
		Category:       e.Category,
		Date:           e.Date,
		Note:           e.Note,
		Recurrence:     e.Recurrence,
		NextOccurrence: usecase.NextOccurrence(e.Recurrence, time.Now()),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
