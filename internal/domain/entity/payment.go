package entity

import "time"

// Transaction is a synthetic incoming payment.
type Transaction struct {
	ID            int       `json:"id"`
	Status        string    `json:"status"`
	Customer      string    `json:"customer"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Reference     string    `json:"reference"`
	BankReference string    `json:"bank_reference"`
	Timestamp     time.Time `json:"timestamp"`
}

// Customer aggregates the activity of one payer.
type Customer struct {
	ID               int       `json:"id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Status           string    `json:"status"`
	RiskLevel        string    `json:"risk_level"`
	TotalSpent       float64   `json:"total_spent"`
	TransactionCount int       `json:"transaction_count"`
	LastTransaction  time.Time `json:"last_transaction"`
	JoinDate         time.Time `json:"join_date"`
}

// Withdrawal is a payout to a merchant bank account.
type Withdrawal struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Bank      string    `json:"bank"`
	Reference string    `json:"reference"`
	Date      time.Time `json:"date"`
}

// BalanceChange is a credit or debit on the merchant balance.
type BalanceChange struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
}

// FundingEntry is the amount received from one funding source in one month.
type FundingEntry struct {
	Month  time.Time `json:"month"`
	Source string    `json:"source"`
	Amount float64   `json:"amount"`
}

// Balance resumes os saldos exibidos no painel.
type Balance struct {
	Total     float64 `json:"total"`
	Available float64 `json:"available"`
	Pending   float64 `json:"pending"`
}

// MonthlyAmount is one bar of a monthly trend.
type MonthlyAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// Overview holds the KPIs of the dashboard home page.
type Overview struct {
	TotalRevenue      float64         `json:"total_revenue"`
	TotalCustomers    int             `json:"total_customers"`
	TotalTransactions int             `json:"total_transactions"`
	AverageTicket     float64         `json:"average_ticket"`
	SuccessRate       float64         `json:"success_rate"`
	Balance           Balance         `json:"balance"`
	RevenueTrend      []MonthlyAmount `json:"revenue_trend"`
}
