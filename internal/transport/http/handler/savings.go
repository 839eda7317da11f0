package handler

import (
	"log/slog"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/gin-gonic/gin"
)

type savingsRequest struct {
	Name          string     `json:"name"          binding:"required,max=100"`
	TargetAmount  float64    `json:"targetAmount"  binding:"required,gt=0"`
	CurrentAmount float64    `json:"currentAmount" binding:"gte=0"`
	Deadline      *time.Time `json:"deadline"`
}

type savingsResponse struct {
	ID            string     `json:"id"`
	Owner         string     `json:"owner"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	Progress      float64    `json:"progress"`
	Deadline      *time.Time `json:"deadline"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func NewSavingsHandler(uc resourceUsecaser[*domain.Savings], logger *slog.Logger) *ResourceHandler[*domain.Savings] {
	return newResourceHandler(uc, bindSavings, renderSavings, logger)
}

func bindSavings(c *gin.Context) (*domain.Savings, error) {
	var req savingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &domain.Savings{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
	}, nil
}

func renderSavings(s *domain.Savings) any {
	var progress float64
	if s.TargetAmount > 0 {
		progress = s.CurrentAmount / s.TargetAmount
	}
	return savingsResponse{
		ID:            s.ID,
		Owner:         s.Owner,
		Name:          s.Name,
		TargetAmount:  s.TargetAmount,
		CurrentAmount: s.CurrentAmount,
		Progress:      progress,
		Deadline:      s.Deadline,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
