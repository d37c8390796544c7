package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/saif727/stellar-testnet-gateway/metrics"
	"github.com/stellar/go/clients/horizonclient"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/support/errors"
	"go.uber.org/zap"
)

// Faucet credits test lumens to an address
type Faucet interface {
	Fund(ctx context.Context, address string) error
}

// FaucetClient talks to a Friendbot instance
type FaucetClient struct {
	URL    string
	HTTP   horizonclient.HTTP
	logger *zap.Logger
}

// NewFaucetClient creates a new FaucetClient instance
func NewFaucetClient(friendbotURL string, httpClient horizonclient.HTTP, logger *zap.Logger) *FaucetClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FaucetClient{URL: friendbotURL, HTTP: httpClient, logger: logger.Named("friendbot")}
}

// Fund asks Friendbot to create and fund address
func (f *FaucetClient) Fund(ctx context.Context, address string) (err error) {
	start := time.Now()
	defer func() { metrics.Observe(metrics.Friendbot, "fund", start, err) }()

	u, err := url.Parse(f.URL)
	if err != nil {
		return errors.Wrap(err, "invalid friendbot url")
	}
	q := u.Query()
	q.Set("addr", address)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to build friendbot request")
	}
	resp, err := f.HTTP.Do(req)
	if err != nil {
		return errors.Wrap(err, "friendbot request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read friendbot response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Error("Funding error",
			zap.String("address", address),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return &FundingError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tx hProtocol.Transaction
	if json.Unmarshal(body, &tx) == nil && tx.Hash != "" {
		f.logger.Info("Wallet funded", zap.String("address", address), zap.String("hash", tx.Hash))
	} else {
		f.logger.Info("Wallet funded", zap.String("address", address))
	}
	return nil
}
