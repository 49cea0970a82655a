package repository

import (
	"context"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
)

// SampleDataProvider supplies the synthetic business data shown by the dashboard.
// Production code paths never generate data themselves; everything flows through here.
type SampleDataProvider interface {
	Transactions(ctx context.Context, userType entity.UserType) ([]entity.Transaction, error)
	Customers(ctx context.Context, userType entity.UserType) ([]entity.Customer, error)
	Withdrawals(ctx context.Context, userType entity.UserType) ([]entity.Withdrawal, error)
	BalanceChanges(ctx context.Context, userType entity.UserType) ([]entity.BalanceChange, error)
	Funding(ctx context.Context, userType entity.UserType) ([]entity.FundingEntry, error)
	Balance(ctx context.Context, userType entity.UserType) (entity.Balance, error)
}
