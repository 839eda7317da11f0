package handler

import (
	"log/slog"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

type incomeRequest struct {
	Source     string    `json:"source"     binding:"required,max=200"`
	Amount     float64   `json:"amount"     binding:"required,gt=0"`
	Date       time.Time `json:"date"       binding:"required"`
	Note       string    `json:"note"       binding:"max=1000"`
	Recurrence *string   `json:"recurrence" binding:"omitempty,max=100"`
}

type incomeResponse struct {
	ID             string     `json:"id"`
	Owner          string     `json:"owner"`
	Source         string     `json:"source"`
	Amount         float64    `json:"amount"`
	Date           time.Time  `json:"date"`
	Note           string     `json:"note"`
	Recurrence     *string    `json:"recurrence"`
	NextOccurrence *time.Time `json:"nextOccurrence,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func NewIncomeHandler(uc resourceUsecaser[*domain.Income], logger *slog.Logger) *ResourceHandler[*domain.Income] {
	return newResourceHandler(uc, bindIncome, renderIncome, logger)
}

func bindIncome(c *gin.Context) (*domain.Income, error) {
	var req incomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &domain.Income{
		Source:     req.Source,
		Amount:     req.Amount,
		Date:       req.Date,
		Note:       req.Note,
		Recurrence: req.Recurrence,
	}, nil
}

func renderIncome(i *domain.Income) any {
	return incomeResponse{
		ID:             i.ID,
		Owner:          i.Owner,
		Source:         i.Source,
		Amount:         i.Amount,
		Date:           i.Date,
		Note:           i.Note,
		Recurrence:     i.Recurrence,
		NextOccurrence: usecase.NextOccurrence(i.Recurrence, time.Now()),
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
