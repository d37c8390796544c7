package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
)

// Memo policies for multi-recipient payments
const (
	MemoPolicyLastWins = "last_wins"
	MemoPolicyReject   = "reject"
)

// Config holds application configuration
type Config struct {
	Server  Server  `mapstructure:"server"`
	Stellar Stellar `mapstructure:"stellar"`
	Wallet  Wallet  `mapstructure:"wallet"`
	Log     Log     `mapstructure:"log"`
}

// Server configures the HTTP listener
type Server struct {
	Port int `mapstructure:"port"`
}

// Stellar holds the upstream endpoints and transaction parameters
type Stellar struct {
	HorizonURL        string        `mapstructure:"horizon_url"`
	FriendbotURL      string        `mapstructure:"friendbot_url"`
	NetworkPassphrase string        `mapstructure:"network_passphrase"`
	BaseFee           int64         `mapstructure:"base_fee"`
	TxTimeout         time.Duration `mapstructure:"tx_timeout"`
	// UpstreamTimeout bounds each Horizon/Friendbot HTTP call. Zero means no limit.
	UpstreamTimeout time.Duration `mapstructure:"upstream_timeout"`
}

// Wallet holds request handling policies
type Wallet struct {
	MemoPolicy string `mapstructure:"memo_policy"`
	// StrictReads propagates balance and history lookup failures instead of
	// answering with a zero balance or an empty history.
	StrictReads bool `mapstructure:"strict_reads"`
}

// Log configures the zap logger
type Log struct {
	Level string `mapstructure:"level"`
	// ExposeSecrets allows generated secret keys to be written at debug level.
	ExposeSecrets bool `mapstructure:"expose_secrets"`
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// SetDefaults registers the default testnet configuration on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("stellar.horizon_url", "https://horizon-testnet.stellar.org")
	v.SetDefault("stellar.friendbot_url", "https://friendbot.stellar.org")
	v.SetDefault("stellar.network_passphrase", network.TestNetworkPassphrase)
	v.SetDefault("stellar.base_fee", 100)
	v.SetDefault("stellar.tx_timeout", 30*time.Second)
	v.SetDefault("stellar.upstream_timeout", time.Duration(0))
	v.SetDefault("wallet.memo_policy", MemoPolicyLastWins)
	v.SetDefault("wallet.strict_reads", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.expose_secrets", false)
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Load reads configuration from an optional .env file, an optional YAML file at
// path and GATEWAY_* environment variables, in increasing precedence.
func Load(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("GATEWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("failed to read configuration file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the gateway cannot run with
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	for key, raw := range map[string]string{
		"stellar.horizon_url":   c.Stellar.HorizonURL,
		"stellar.friendbot_url": c.Stellar.FriendbotURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s %q", key, raw)
		}
	}
	if c.Stellar.NetworkPassphrase == "" {
		return fmt.Errorf("stellar.network_passphrase must be set")
	}
	if c.Stellar.BaseFee < txnbuild.MinBaseFee {
		return fmt.Errorf("stellar.base_fee must be at least %d", txnbuild.MinBaseFee)
	}
	if c.Stellar.TxTimeout < time.Second {
		return fmt.Errorf("stellar.tx_timeout must be at least 1s")
	}
	if c.Stellar.UpstreamTimeout < 0 {
		return fmt.Errorf("stellar.upstream_timeout must not be negative")
	}
	switch c.Wallet.MemoPolicy {
	case MemoPolicyLastWins, MemoPolicyReject:
	default:
		return fmt.Errorf("invalid wallet.memo_policy %q", c.Wallet.MemoPolicy)
	}
	return nil
}
