package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/malwarebo/balancegate/models"
	"github.com/stripe/stripe-go/v82"
)

// BalanceProvider exposes the read-only balance endpoints of a payment gateway.
type BalanceProvider interface {
	GetBalance(ctx context.Context) (*stripe.Balance, error)
	ListBalanceTransactions(ctx context.Context, opts *models.ListOptions) (*stripe.BalanceTransactionList, error)
}

// ProviderError is returned for every failure the gateway itself reports.
// Transport and configuration failures are not ProviderErrors.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}

func AsProviderError(err error) (*ProviderError, bool) {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr, true
	}
	return nil, false
}
