package expense

import "time"

// Expense is one back-office spend entry.
type Expense struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Amount    int64     `json:"amount"` // paise
	SpentAt   time.Time `json:"spentAt"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QueryExpensesModel represents filter parameters for querying expenses.
type QueryExpensesModel struct {
	Categories []string  `json:"categories,omitempty"`
	From       time.Time `json:"from,omitempty"`
	To         time.Time `json:"to,omitempty"`
	Limit      int       `json:"limit,omitempty"`
	Offset     int       `json:"offset,omitempty"`
}

// CategorySum is an aggregate of expenses grouped by category.
type CategorySum struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Count    int64  `json:"count"`
}

// MonthlySum is an aggregate of expenses grouped by calendar month.
type MonthlySum struct {
	Month  time.Time `json:"month"`
	Amount int64     `json:"amount"`
	Count  int64     `json:"count"`
}
