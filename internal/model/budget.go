package model

import "github.com/shopspring/decimal"

// OverallCategory is the reserved category name for the user-wide monthly
// limit that applies across all categories.
const OverallCategory = "all"

// CategoryLimit is one configured monthly budget for a (user, category) pair.
// Absence of a limit means "no budget configured", which is distinct from a
// limit of zero.
type CategoryLimit struct {
	UserID       string
	Category     string
	MonthlyLimit decimal.Decimal
}

// UtilizationStatus classifies month-to-date spend against a limit.
type UtilizationStatus string

const (
	StatusUnder       UtilizationStatus = "under"
	StatusApproaching UtilizationStatus = "approaching"
	StatusExceeded    UtilizationStatus = "exceeded"
)

// BudgetStatus is the month-to-date position of one category budget.
type BudgetStatus struct {
	Category       string
	Limit          decimal.Decimal
	HasLimit       bool
	Spent          decimal.Decimal
	LastMonthSpent decimal.Decimal
	Remaining      decimal.Decimal
	UtilizationPct float64 // 0 when no positive limit is configured
	Status         UtilizationStatus
}

// BudgetAlert is raised when a prospective transaction would push a category
// past its configured limit.
type BudgetAlert struct {
	Category  string
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Amount    decimal.Decimal
	Excess    decimal.Decimal
}

// Suggestion is a spending-behavior hint independent of per-category limits.
type Suggestion struct {
	Code    string
	Message string
}
