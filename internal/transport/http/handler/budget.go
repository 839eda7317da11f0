package handler

import (
	"log/slog"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/gin-gonic/gin"
)

type budgetRequest struct {
	Name        string    `json:"name"        binding:"required,max=100"`
	Category    string    `json:"category"    binding:"required,max=100"`
	Limit       float64   `json:"limit"       binding:"required,gt=0"`
	PeriodStart time.Time `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time `json:"periodEnd"   binding:"required"`
}

type budgetResponse struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Limit       float64   `json:"limit"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewBudgetHandler(uc resourceUsecaser[*domain.Budget], logger *slog.Logger) *ResourceHandler[*domain.Budget] {
	return newResourceHandler(uc, bindBudget, renderBudget, logger)
}

func bindBudget(c *gin.Context) (*domain.Budget, error) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &domain.Budget{
		Name:        req.Name,
		Category:    req.Category,
		Limit:       req.Limit,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
	}, nil
}

func renderBudget(b *domain.Budget) any {
	return budgetResponse{
		ID:          b.ID,
		Owner:       b.Owner,
		Name:        b.Name,
		Category:    b.Category,
		Limit:       b.Limit,
		PeriodStart: b.PeriodStart,
		PeriodEnd:   b.PeriodEnd,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
