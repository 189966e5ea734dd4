// Package model defines domain types for transactions, budgets, and insights.
package model

import "time"

// Kind classifies a transaction as money in or money out.
type Kind string

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

// Transaction is one immutable ledger record. The engine only reads these;
// writes go through the store.
type Transaction struct {
	ID       string
	UserID   string
	Item     string
	Category string
	Kind     Kind
	Amount   int64 // integer currency units
	Date     time.Time

	// Optional context captured at entry time.
	TimeOfDay *time.Time
	Location  string
	Latitude  *float64
	Longitude *float64
}

// Hour returns the hour-of-day for the transaction, or -1 when no
// time-of-day was recorded.
func (t Transaction) Hour() int {
	if t.TimeOfDay == nil {
		return -1
	}
	return t.TimeOfDay.Hour()
}

// Weekday returns the transaction's day of week (Sunday = 0).
func (t Transaction) Weekday() int {
	return int(t.Date.Weekday())
}
