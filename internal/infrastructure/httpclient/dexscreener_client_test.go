package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func TestGetTokenPairsByAddresses(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"chainId":"ethereum","baseToken":{"address":"0xaaa","symbol":"AAA"},"priceUsd":"1.23","liquidity":{"usd":50000}},
			{"chainId":"ethereum","baseToken":{"address":"0xbbb","symbol":"BBB"},"priceUsd":"0.5"}
		]`))
	}))
	t.Cleanup(srv.Close)

	client := NewDEXScreenerClient(srv.URL, 5*time.Second, nopLogger{})
	pairs, err := client.GetTokenPairsByAddresses(context.Background(), "ethereum", []string{"0xaaa", "0xbbb"})
	require.NoError(t, err)

	assert.Equal(t, "/tokens/v1/ethereum/0xaaa,0xbbb", gotPath)
	require.Len(t, pairs, 2)
	assert.Equal(t, "1.23", pairs[0].PriceUsd)
	require.NotNil(t, pairs[0].Liquidity)
	assert.Equal(t, 50000.0, pairs[0].Liquidity.Usd)
	assert.Nil(t, pairs[1].Liquidity)
}

func TestGetTokenPairsByAddresses_EmptyInput(t *testing.T) {
	client := NewDEXScreenerClient("http://unused.local", time.Second, nopLogger{})
	_, err := client.GetTokenPairsByAddresses(context.Background(), "ethereum", nil)
	require.Error(t, err)
}

func TestGetTokenPairsByAddresses_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	client := NewDEXScreenerClient(srv.URL, 5*time.Second, nopLogger{})
	_, err := client.GetTokenPairsByAddresses(context.Background(), "ethereum", []string{"0xaaa"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
