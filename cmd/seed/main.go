// seed inserts a verified demo user with sample expenses, incomes, budgets
// and savings goals into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/identity"
	"github.com/ErlanBelekov/finance-tracker/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/finance-tracker/internal/repository"
	"github.com/ErlanBelekov/finance-tracker/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
)

func strPtr(s string) *string { return &s }

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	user, err := users.FindByEmail(ctx, seedEmail)
	if errors.Is(err, domain.ErrUserNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			log.Fatalf("hash password: %v", hashErr)
		}
		user, err = users.Create(ctx, repository.CreateUserInput{
			Fullname:     "Seed User",
			Email:        seedEmail,
			PasswordHash: string(hash),
		})
	}
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}
	if err := users.MarkVerified(ctx, user.ID); err != nil {
		log.Fatalf("verify user: %v", err)
	}

	caller := identity.New(user.ID)
	now := time.Now().UTC().Truncate(24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	expenses := usecase.NewExpenseUsecase(postgres.NewExpenseRepository(pool))
	incomes := usecase.NewIncomeUsecase(postgres.NewIncomeRepository(pool))
	budgets := usecase.NewBudgetUsecase(postgres.NewBudgetRepository(pool))
	savings := usecase.NewSavingsUsecase(postgres.NewSavingsRepository(pool))

	// Expenses and incomes have no natural key, so only seed them once.
	existing, err := expenses.List(ctx, caller)
	if err != nil {
		log.Fatalf("list expenses: %v", err)
	}
	var created int
	if len(existing) == 0 {
		for _, e := range []*domain.Expense{
			{Title: "Groceries", Amount: 82.40, Category: "food", Date: now.AddDate(0, 0, -2)},
			{Title: "Coffee", Amount: 4.50, Category: "food", Date: now.AddDate(0, 0, -1)},
			{Title: "Rent", Amount: 1200, Category: "housing", Date: monthStart, Recurrence: strPtr("0 9 1 * *")},
			{Title: "Gym", Amount: 35, Category: "health", Date: monthStart, Recurrence: strPtr("0 7 * * 1")},
		} {
			if _, err := expenses.Create(ctx, caller, e); err != nil {
				log.Fatalf("create expense %q: %v", e.Title, err)
			}
			created++
		}
		for _, i := range []*domain.Income{
			{Source: "Salary", Amount: 4200, Date: monthStart, Recurrence: strPtr("0 9 25 * *")},
			{Source: "Freelance", Amount: 650, Date: now.AddDate(0, 0, -5)},
		} {
			if _, err := incomes.Create(ctx, caller, i); err != nil {
				log.Fatalf("create income %q: %v", i.Source, err)
			}
			created++
		}
	}

	deadline := now.AddDate(1, 0, 0)
	var skipped int
	for _, b := range []*domain.Budget{
		{Name: "Food", Category: "food", Limit: 500, PeriodStart: monthStart, PeriodEnd: monthStart.AddDate(0, 1, -1)},
		{Name: "Fun", Category: "entertainment", Limit: 150, PeriodStart: monthStart, PeriodEnd: monthStart.AddDate(0, 1, -1)},
	} {
		if _, err := budgets.Create(ctx, caller, b); err != nil {
			if errors.Is(err, domain.ErrResourceNameConflict) {
				skipped++
				continue
			}
			log.Fatalf("create budget %q: %v", b.Name, err)
		}
		created++
	}
	for _, s := range []*domain.Savings{
		{Name: "Emergency fund", TargetAmount: 10000, CurrentAmount: 2500},
		{Name: "New laptop", TargetAmount: 2000, CurrentAmount: 300, Deadline: &deadline},
	} {
		if _, err := savings.Create(ctx, caller, s); err != nil {
			if errors.Is(err, domain.ErrResourceNameConflict) {
				skipped++
				continue
			}
			log.Fatalf("create savings %q: %v", s.Name, err)
		}
		created++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:      %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:   %s\n", user.ID)
	fmt.Printf("  Resources: %d created  (skipped %d already existing)\n", created, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in; the code is printed in the server log with EMAIL_PROVIDER=log:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — exchange the code for a token:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/verify-login-otp \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"otp\":\"CODE\"}'\n", seedEmail)
	fmt.Println("    # → {\"status\":\"success\",\"token\":\"eyJ...\",...}")
	fmt.Println()
	fmt.Println("  Step 3 — list resources:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/expenses -H \"Authorization: Bearer $JWT\"")
	fmt.Println("    curl -s http://localhost:8080/savings -H \"Authorization: Bearer $JWT\"")
}
