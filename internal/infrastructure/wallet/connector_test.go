package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swap_desk/internal/app/port"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func TestConnect_NoKeyConfigured(t *testing.T) {
	t.Setenv("TEST_WALLET_KEY", "")
	c := NewKeyConnector(Config{PrivateKeyEnv: "TEST_WALLET_KEY"}, nopLogger{})

	session, err := c.Connect(context.Background())
	assert.ErrorIs(t, err, ErrNoWalletFound)
	assert.Nil(t, session)
}

func TestConnect_InvalidKeyRejectedBeforeDialing(t *testing.T) {
	t.Setenv("TEST_WALLET_KEY", "0xnot-a-key")
	// No RPC endpoints configured: a parse failure must surface first.
	c := NewKeyConnector(Config{PrivateKeyEnv: "TEST_WALLET_KEY"}, nopLogger{})

	_, err := c.Connect(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoWalletFound)
	assert.Contains(t, err.Error(), "invalid private key")
}

func TestConnect_WhitespaceKeyIsMissing(t *testing.T) {
	t.Setenv("TEST_WALLET_KEY", "   ")
	c := NewKeyConnector(Config{PrivateKeyEnv: "TEST_WALLET_KEY"}, nopLogger{})

	_, err := c.Connect(context.Background())
	assert.ErrorIs(t, err, ErrNoWalletFound)
}

func TestNewKeyConnector_DefaultEnvName(t *testing.T) {
	c := NewKeyConnector(Config{}, nopLogger{})
	assert.Equal(t, "SWAP_DESK_PRIVATE_KEY", c.cfg.PrivateKeyEnv)
}

type countingProvider struct{}

func (*countingProvider) GetBalance(context.Context, string, string) (string, string, error) {
	return "0", "ETH", nil
}

func TestConnect_ReusesDialedProvider(t *testing.T) {
	// Well-known throwaway development key, never funded.
	t.Setenv("TEST_WALLET_KEY", "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	c := NewKeyConnector(Config{PrivateKeyEnv: "TEST_WALLET_KEY"}, nopLogger{})

	dials := 0
	c.newProvider = func(Config) (port.BalanceProvider, error) {
		dials++
		return &countingProvider{}, nil
	}

	first, err := c.Connect(context.Background())
	require.NoError(t, err)
	second, err := c.Connect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, dials)
	assert.Same(t, first.Provider, second.Provider)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", first.Address)
	assert.Equal(t, first.Address, second.Address)
}
