package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Wallet      WalletConfig      `yaml:"wallet"`
	Network     NetworkConfig     `yaml:"network"`
	Aggregator  AggregatorConfig  `yaml:"aggregator"`
	DEXScreener DEXScreenerConfig `yaml:"dexScreener"`
	Logging     LoggingConfig     `yaml:"logging"`
	WebSocket   WebSocketConfig   `yaml:"websocket"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
	// APIKey guards the mutating endpoints via the X-API-Key header.
	APIKey string `yaml:"apiKey"`
}

// WalletConfig holds the wallet connector configuration.
type WalletConfig struct {
	PrivateKeyEnv string `yaml:"privateKeyEnv"`
	NativeSymbol  string `yaml:"nativeSymbol"`
}

// NetworkConfig holds the chain RPC configuration.
type NetworkConfig struct {
	RPCURLs             []string `yaml:"rpcUrls"`
	ConnectionTimeoutMs int64    `yaml:"connectionTimeoutMs"`
	RPCCallTimeoutMs    int64    `yaml:"rpcCallTimeoutMs"`
	RateLimit           float64  `yaml:"rateLimit"`
	BurstLimit          int      `yaml:"burstLimit"`
}

// AggregatorConfig holds the aggregation backend configuration.
type AggregatorConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// DEXScreenerConfig holds the price source configuration.
type DEXScreenerConfig struct {
	BaseURL                string `yaml:"baseURL"`
	ChainID                string `yaml:"chainID"`
	RequestTimeoutMillis   int64  `yaml:"requestTimeoutMillis"`
	CacheTTLMinutes        int    `yaml:"cacheTTLMinutes"`
	RefreshIntervalMinutes int    `yaml:"refreshIntervalMinutes"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// WebSocketConfig holds the push channel configuration.
type WebSocketConfig struct {
	StatusIntervalSeconds int `yaml:"statusIntervalSeconds"`
}

// Load reads configuration from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Wallet.PrivateKeyEnv == "" {
		cfg.Wallet.PrivateKeyEnv = "SWAP_DESK_PRIVATE_KEY"
	}
	if cfg.Wallet.NativeSymbol == "" {
		cfg.Wallet.NativeSymbol = "ETH"
	}
	if cfg.Network.ConnectionTimeoutMs == 0 {
		cfg.Network.ConnectionTimeoutMs = 10000
	}
	if cfg.Network.RPCCallTimeoutMs == 0 {
		cfg.Network.RPCCallTimeoutMs = 15000
	}
	if cfg.Aggregator.RequestTimeoutMillis == 0 {
		cfg.Aggregator.RequestTimeoutMillis = 10000
		logrus.Infof("Aggregator.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Aggregator.RequestTimeoutMillis)
	}
	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
		logrus.Infof("DEXScreener.BaseURL not set, defaulting to %s", cfg.DEXScreener.BaseURL)
	}
	if cfg.DEXScreener.ChainID == "" {
		cfg.DEXScreener.ChainID = "ethereum"
	}
	if cfg.DEXScreener.RequestTimeoutMillis == 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000
	}
	if cfg.DEXScreener.CacheTTLMinutes == 0 {
		cfg.DEXScreener.CacheTTLMinutes = 60
	}
	if cfg.DEXScreener.RefreshIntervalMinutes == 0 {
		cfg.DEXScreener.RefreshIntervalMinutes = 30
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.WebSocket.StatusIntervalSeconds == 0 {
		cfg.WebSocket.StatusIntervalSeconds = 30
	}
}
