package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string `json:"category"`
	Amount Money  `json:"total"`
}

// Summary holds range totals. Net may be negative when expenses exceed
// income; TotalIncome and TotalExpense are always non-negative.
type Summary struct {
	TotalIncome  Money `json:"total_income"`
	TotalExpense Money `json:"total_expense"`
	Net          Money `json:"net"`
}
