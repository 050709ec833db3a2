package providers

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"

	"github.com/malwarebo/balancegate/models"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

const stripeProviderName = "stripe"

// StripeClientConfig configures NewStripeClient. APIBase replaces
// https://api.stripe.com when set, e.g. to point at stripe-mock.
type StripeClientConfig struct {
	APIKey  string
	APIBase string
	Logger  stripe.LeveledLoggerInterface
}

// NewStripeClient builds a client handle that owns its own backends, so
// nothing is read from or written to the package-level stripe.Key.
// Network retries are disabled.
func NewStripeClient(cfg StripeClientConfig) *client.API {
	backendConfig := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
	}
	if cfg.APIBase != "" {
		backendConfig.URL = stripe.String(cfg.APIBase)
	}
	if cfg.Logger != nil {
		backendConfig.LeveledLogger = cfg.Logger
	}

	// GetBackendWithConfig fills in the URL on the config it is given, so
	// every backend gets its own copy.
	backend := func(backendType stripe.SupportedBackend) stripe.Backend {
		c := *backendConfig
		return stripe.GetBackendWithConfig(backendType, &c)
	}

	backends := &stripe.Backends{
		API:     backend(stripe.APIBackend),
		Connect: backend(stripe.ConnectBackend),
		Uploads: backend(stripe.UploadsBackend),
	}

	return client.New(cfg.APIKey, backends)
}

type StripeProvider struct {
	client *client.API
}

func NewStripeProvider(sc *client.API) *StripeProvider {
	return &StripeProvider{
		client: sc,
	}
}

func (p *StripeProvider) GetBalance(ctx context.Context) (*stripe.Balance, error) {
	params := &stripe.BalanceParams{}
	params.Context = ctx

	balance, err := p.client.Balance.Get(params)
	if err != nil {
		return nil, p.translateError(err)
	}
	return balance, nil
}

func (p *StripeProvider) ListBalanceTransactions(ctx context.Context, opts *models.ListOptions) (*stripe.BalanceTransactionList, error) {
	if opts == nil {
		opts = models.NewListOptions()
	}

	params := &stripe.BalanceTransactionListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(opts.Limit)
	params.StartingAfter = opts.StartingAfter
	params.Single = true

	// The iterator fetches the first page on construction; Next is never
	// called so no further pages are requested.
	iter := p.client.BalanceTransactions.List(params)
	if err := iter.Err(); err != nil {
		return nil, p.translateError(err)
	}
	return iter.BalanceTransactionList(), nil
}

// translateError reports everything Stripe answered as a ProviderError,
// including error bodies the SDK could not decode. Failures to reach Stripe
// at all (transport, cancellation, deadlines) are returned unchanged.
func (p *StripeProvider) translateError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		message := stripeErr.Msg
		if message == "" {
			message = err.Error()
		}
		return NewProviderError(stripeProviderName, message, err)
	}

	if isTransportError(err) {
		return err
	}
	return NewProviderError(stripeProviderName, err.Error(), err)
}

func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
