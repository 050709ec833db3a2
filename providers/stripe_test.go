package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/malwarebo/balancegate/models"
	testhelpers "github.com/malwarebo/balancegate/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

func newTestStripeProvider(t *testing.T, handler http.HandlerFunc) *StripeProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sc := NewStripeClient(StripeClientConfig{
		APIKey:  "sk_test_123",
		APIBase: server.URL,
		Logger:  zap.NewNop().Sugar(),
	})
	return NewStripeProvider(sc)
}

func writeStripeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestStripeProvider_GetBalance(t *testing.T) {
	var gotPath, gotAuth string
	provider := newTestStripeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		writeStripeJSON(w, http.StatusOK, testhelpers.BalanceJSON)
	})

	balance, err := provider.GetBalance(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/v1/balance", gotPath)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, "balance", balance.Object)
	require.Len(t, balance.Available, 1)
	assert.Equal(t, int64(125000), balance.Available[0].Amount)
	assert.Equal(t, stripe.CurrencyUSD, balance.Available[0].Currency)
}

func TestStripeProvider_GetBalance_StripeError(t *testing.T) {
	calls := 0
	provider := newTestStripeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeStripeJSON(w, http.StatusBadRequest, testhelpers.ErrorJSON)
	})

	balance, err := provider.GetBalance(context.Background())
	assert.Nil(t, balance)

	providerErr, ok := AsProviderError(err)
	require.True(t, ok, "expected ProviderError, got %T", err)
	assert.Equal(t, "stripe", providerErr.Provider)
	assert.Equal(t, "Error occurred", providerErr.Message)

	var stripeErr *stripe.Error
	assert.True(t, errors.As(err, &stripeErr))
	assert.Equal(t, 1, calls)
}

func TestStripeProvider_ListBalanceTransactions(t *testing.T) {
	var gotPath, gotLimit, gotCursor string
	calls := 0
	provider := newTestStripeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		gotCursor = r.URL.Query().Get("starting_after")
		writeStripeJSON(w, http.StatusOK, testhelpers.BalanceTransactionListJSON)
	})

	cursor := "txn_prev"
	list, err := provider.ListBalanceTransactions(context.Background(), &models.ListOptions{
		Limit:         3,
		StartingAfter: &cursor,
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/balance_transactions", gotPath)
	assert.Equal(t, "3", gotLimit)
	assert.Equal(t, "txn_prev", gotCursor)
	assert.True(t, list.HasMore)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "txn_test123", list.Data[0].ID)
	assert.Equal(t, 1, calls, "only a single page may be fetched even when has_more is true")
}

func TestStripeProvider_ListBalanceTransactions_Defaults(t *testing.T) {
	var gotLimit string
	var hasCursor bool
	provider := newTestStripeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, hasCursor = r.URL.Query()["starting_after"]
		writeStripeJSON(w, http.StatusOK, testhelpers.BalanceTransactionListJSON)
	})

	_, err := provider.ListBalanceTransactions(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "10", gotLimit)
	assert.False(t, hasCursor)
}

func TestStripeProvider_ListBalanceTransactions_StripeError(t *testing.T) {
	provider := newTestStripeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		writeStripeJSON(w, http.StatusBadRequest, testhelpers.ErrorJSON)
	})

	list, err := provider.ListBalanceTransactions(context.Background(), &models.ListOptions{Limit: -1})
	assert.Nil(t, list)

	providerErr, ok := AsProviderError(err)
	require.True(t, ok, "expected ProviderError, got %T", err)
	assert.Equal(t, "Error occurred", providerErr.Message)
}

func TestStripeProvider_TransportErrorIsNotProviderError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	provider := NewStripeProvider(NewStripeClient(StripeClientConfig{
		APIKey:  "sk_test_123",
		APIBase: server.URL,
		Logger:  zap.NewNop().Sugar(),
	}))

	_, err := provider.GetBalance(context.Background())
	require.Error(t, err)

	_, ok := AsProviderError(err)
	assert.False(t, ok, "transport failures must not be reported as provider errors")
}

func blockingStripeHandler(w http.ResponseWriter, r *http.Request) {
	select {
	case <-r.Context().Done():
	case <-time.After(5 * time.Second):
	}
}

func TestStripeProvider_ContextCancellation(t *testing.T) {
	provider := newTestStripeProvider(t, blockingStripeHandler)

	calls := map[string]func(ctx context.Context) error{
		"GetBalance": func(ctx context.Context) error {
			_, err := provider.GetBalance(ctx)
			return err
		},
		"ListBalanceTransactions": func(ctx context.Context) error {
			_, err := provider.ListBalanceTransactions(ctx, models.NewListOptions())
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			start := time.Now()
			err := call(ctx)
			elapsed := time.Since(start)

			require.Error(t, err)
			assert.Less(t, elapsed, 2*time.Second)
			assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)

			_, ok := AsProviderError(err)
			assert.False(t, ok)
		})
	}
}

func TestStripeProvider_UndecodableErrorBodyIsProviderError(t *testing.T) {
	provider := newTestStripeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("oops not json"))
	})

	_, err := provider.GetBalance(context.Background())
	providerErr, ok := AsProviderError(err)
	require.True(t, ok, "expected ProviderError, got %T: %v", err, err)
	assert.Equal(t, "stripe", providerErr.Provider)
	assert.NotEmpty(t, providerErr.Message)

	_, err = provider.ListBalanceTransactions(context.Background(), nil)
	_, ok = AsProviderError(err)
	assert.True(t, ok, "expected ProviderError, got %T: %v", err, err)
}
