package services

import (
	"context"

	"github.com/malwarebo/balancegate/models"
	"github.com/malwarebo/balancegate/providers"
	"github.com/stripe/stripe-go/v82"
)

type BalanceService struct {
	provider providers.BalanceProvider
}

func CreateBalanceService(provider providers.BalanceProvider) *BalanceService {
	return &BalanceService{
		provider: provider,
	}
}

func (s *BalanceService) GetBalance(ctx context.Context) (*stripe.Balance, error) {
	return s.provider.GetBalance(ctx)
}

// ListBalanceTransactions forwards opts as given; limit is not clamped.
func (s *BalanceService) ListBalanceTransactions(ctx context.Context, opts *models.ListOptions) (*stripe.BalanceTransactionList, error) {
	if opts == nil {
		opts = models.NewListOptions()
	}
	return s.provider.ListBalanceTransactions(ctx, opts)
}
