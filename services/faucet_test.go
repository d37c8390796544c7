package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFaucetClientFund(t *testing.T) {
	address := keypair.MustRandom().Address()

	var gotAddr string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAddr = r.URL.Query().Get("addr")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hash":"cafe","successful":true}`))
	}))
	defer server.Close()

	client := NewFaucetClient(server.URL, server.Client(), zap.NewNop())
	require.NoError(t, client.Fund(context.Background(), address))
	assert.Equal(t, address, gotAddr)
}

func TestFaucetClientFundError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"createAccountAlreadyExist"}`))
	}))
	defer server.Close()

	client := NewFaucetClient(server.URL, nil, zap.NewNop())
	err := client.Fund(context.Background(), "GDUPLICATE")
	assert.ErrorIs(t, err, ErrFundingFailed)

	var ferr *FundingError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusBadRequest, ferr.StatusCode)
	assert.Equal(t, `{"detail":"createAccountAlreadyExist"}`, ferr.Body)
}

func TestFaucetClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := NewFaucetClient(server.URL, nil, zap.NewNop())
	err := client.Fund(context.Background(), "GANY")
	assert.Error(t, err)
	var ferr *FundingError
	assert.False(t, errors.As(err, &ferr))
}
