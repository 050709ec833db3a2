package testing

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/malwarebo/balancegate/models"
	"github.com/stripe/stripe-go/v82"
)

const BalanceJSON = `{
  "object": "balance",
  "livemode": false,
  "available": [{"amount": 125000, "currency": "usd", "source_types": {"card": 125000}}],
  "pending": [{"amount": 4200, "currency": "usd", "source_types": {"card": 4200}}]
}`

const BalanceTransactionListJSON = `{
  "object": "list",
  "url": "/v1/balance_transactions",
  "has_more": true,
  "data": [
    {
      "id": "txn_test123",
      "object": "balance_transaction",
      "amount": 1000,
      "fee": 59,
      "net": 941,
      "currency": "usd",
      "type": "charge",
      "status": "available",
      "created": 1700000000
    },
    {
      "id": "txn_test124",
      "object": "balance_transaction",
      "amount": -500,
      "fee": 0,
      "net": -500,
      "currency": "usd",
      "type": "refund",
      "status": "pending",
      "created": 1700000100
    }
  ]
}`

const ErrorJSON = `{"error": {"type": "invalid_request_error", "message": "Error occurred"}}`

func MockBalance() *stripe.Balance {
	var balance stripe.Balance
	mustDecode(BalanceJSON, &balance)
	return &balance
}

func MockBalanceTransactionList() *stripe.BalanceTransactionList {
	var list stripe.BalanceTransactionList
	mustDecode(BalanceTransactionListJSON, &list)
	return &list
}

func mustDecode(data string, v interface{}) {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		panic(err)
	}
}

// FakeBalanceProvider records calls and answers with its configured values.
// Err, when set, is returned by both operations.
type FakeBalanceProvider struct {
	Balance      *stripe.Balance
	Transactions *stripe.BalanceTransactionList
	Err          error

	mu           sync.Mutex
	balanceCalls int
	listCalls    []models.ListOptions
}

func NewFakeBalanceProvider() *FakeBalanceProvider {
	return &FakeBalanceProvider{
		Balance:      MockBalance(),
		Transactions: MockBalanceTransactionList(),
	}
}

func (f *FakeBalanceProvider) GetBalance(ctx context.Context) (*stripe.Balance, error) {
	f.mu.Lock()
	f.balanceCalls++
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	return f.Balance, nil
}

func (f *FakeBalanceProvider) ListBalanceTransactions(ctx context.Context, opts *models.ListOptions) (*stripe.BalanceTransactionList, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, *opts)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	return f.Transactions, nil
}

func (f *FakeBalanceProvider) BalanceCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balanceCalls
}

func (f *FakeBalanceProvider) ListCalls() []models.ListOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ListOptions(nil), f.listCalls...)
}
