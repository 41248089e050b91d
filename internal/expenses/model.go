package expenses

import "time"

// Expense is an operating cost, optionally tied to a property.
type Expense struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Amount      *float64  `json:"amount,omitempty"`
	Category    string    `json:"category,omitempty"`
	ExpenseDate string    `json:"expense_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListQuery narrows expense listings to [Start, End] on the expense date,
// optionally restricted to a property set.
type ListQuery struct {
	Start       string
	End         string
	PropertyIDs []string
}
