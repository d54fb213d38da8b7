package wallet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"swap_desk/internal/app/port"
	"swap_desk/internal/infrastructure/network/client"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/time/rate"
)

// ErrNoWalletFound means no signing key is configured in the environment.
// Checked before any network call so the caller can surface a blocking
// notice immediately.
var ErrNoWalletFound = errors.New("no wallet found: signing key not configured")

// Config carries everything needed to establish a session.
type Config struct {
	// PrivateKeyEnv names the environment variable holding the hex key.
	PrivateKeyEnv string
	// RPCURLs are tried in order until one dials successfully.
	RPCURLs []string
	// NativeSymbol labels the base currency in balance results.
	NativeSymbol string

	ConnectionTimeout time.Duration
	RPCCallTimeout    time.Duration
	RateLimit         float64
	RateBurst         int
}

// KeyConnector implements port.WalletConnector from a locally held key.
// The RPC connection is dialed once and reused across connects, so
// repeated connect clicks never stack up clients.
type KeyConnector struct {
	cfg    Config
	logger port.Logger

	mu          sync.Mutex
	provider    port.BalanceProvider
	newProvider func(Config) (port.BalanceProvider, error)
}

// NewKeyConnector creates a connector around the given configuration.
func NewKeyConnector(cfg Config, logger port.Logger) *KeyConnector {
	if cfg.PrivateKeyEnv == "" {
		cfg.PrivateKeyEnv = "SWAP_DESK_PRIVATE_KEY"
	}
	return &KeyConnector{cfg: cfg, logger: logger, newProvider: dialProvider}
}

func dialProvider(cfg Config) (port.BalanceProvider, error) {
	return client.NewEVMClient(
		cfg.RPCURLs,
		cfg.NativeSymbol,
		cfg.ConnectionTimeout,
		cfg.RPCCallTimeout,
		rate.Limit(cfg.RateLimit),
		cfg.RateBurst,
	)
}

// Connect parses the configured key, establishes (or reuses) the RPC
// connection and returns a session whose signer, provider and address
// share that one connection.
func (c *KeyConnector) Connect(ctx context.Context) (*port.WalletSession, error) {
	keyHex := strings.TrimSpace(os.Getenv(c.cfg.PrivateKeyEnv))
	if keyHex == "" {
		return nil, ErrNoWalletFound
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(keyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key in %s: %w", c.cfg.PrivateKeyEnv, err)
	}

	provider, err := c.dialOnce()
	if err != nil {
		return nil, fmt.Errorf("wallet provider connection failed: %w", err)
	}

	address := crypto.PubkeyToAddress(privateKey.PublicKey).Hex()
	c.logger.Debug("wallet session established", "address", address)

	return &port.WalletSession{
		Signer:   privateKey,
		Provider: provider,
		Address:  address,
	}, nil
}

func (c *KeyConnector) dialOnce() (port.BalanceProvider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.provider != nil {
		return c.provider, nil
	}
	provider, err := c.newProvider(c.cfg)
	if err != nil {
		return nil, err
	}
	c.provider = provider
	return provider, nil
}
