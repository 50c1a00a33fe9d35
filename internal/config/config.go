package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mr-tron/base58"
)

// Well-known SPL token program IDs
const (
	TokenProgramID     = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	Token2022ProgramID = "TokenzQdBNbLqP5VEhdkAS6EPFLc1PQnBzM3Zh7K2F2"
)

// Config holds all configuration for the application
type Config struct {
	// Token and wallet being tracked
	Dashboard DashboardConfig

	// Solana RPC configuration
	Solana SolanaConfig

	// DexScreener market API
	DexScreener DexScreenerConfig

	// SolanaTracker wallet analytics API
	SolanaTracker SolanaTrackerConfig

	// Redis configuration
	Redis RedisConfig

	// API server configuration
	API APIConfig

	// Logging configuration
	Log LogConfig
}

// DashboardConfig holds the tracked mint, wallet and analytics key.
// None of the fields is marked required: missing values are reported
// on the page instead of aborting startup.
type DashboardConfig struct {
	Mint   string `envconfig:"IVG_MINT"`
	Wallet string `envconfig:"IVG_WALLET"`
	APIKey string `envconfig:"SOLANA_TRACKER_API_KEY"`
}

// SolanaConfig holds Solana RPC connection settings
type SolanaConfig struct {
	RPCURL         string        `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	RequestTimeout time.Duration `envconfig:"SOLANA_RPC_TIMEOUT" default:"15s"`

	// Token programs queried for token accounts (comma-separated program IDs)
	TokenPrograms []string `envconfig:"SOLANA_TOKEN_PROGRAMS" default:"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA,TokenzQdBNbLqP5VEhdkAS6EPFLc1PQnBzM3Zh7K2F2"`
}

// DexScreenerConfig holds DexScreener API settings
type DexScreenerConfig struct {
	BaseURL        string        `envconfig:"DEXSCREENER_BASE_URL" default:"https://api.dexscreener.com"`
	RequestTimeout time.Duration `envconfig:"DEXSCREENER_TIMEOUT" default:"10s"`
	ChainID        string        `envconfig:"DEXSCREENER_CHAIN_ID" default:"solana"`
	CacheTTL       time.Duration `envconfig:"DEXSCREENER_CACHE_TTL" default:"20s"`
}

// SolanaTrackerConfig holds SolanaTracker API settings
type SolanaTrackerConfig struct {
	BaseURL        string        `envconfig:"SOLANA_TRACKER_BASE_URL" default:"https://data.solanatracker.io"`
	RequestTimeout time.Duration `envconfig:"SOLANA_TRACKER_TIMEOUT" default:"10s"`
	RateLimitRPS   float64       `envconfig:"SOLANA_TRACKER_RPS" default:"5"`
	RateLimitBurst int           `envconfig:"SOLANA_TRACKER_BURST" default:"5"`
	CacheTTL       time.Duration `envconfig:"SOLANA_TRACKER_CACHE_TTL" default:"30s"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// APIConfig holds API server settings
type APIConfig struct {
	Host            string        `envconfig:"API_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    int           `envconfig:"API_RATE_LIMIT_RPS" default:"50"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Solana.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Environment variable names of the required dashboard values
const (
	EnvMint   = "IVG_MINT"
	EnvWallet = "IVG_WALLET"
	EnvAPIKey = "SOLANA_TRACKER_API_KEY"
)

// Missing returns the names of required values that are not set, in a
// stable order: mint, wallet, API key.
func (c DashboardConfig) Missing() []string {
	var missing []string
	if c.Mint == "" {
		missing = append(missing, EnvMint)
	}
	if c.Wallet == "" {
		missing = append(missing, EnvWallet)
	}
	if c.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	return missing
}

// Invalid describes configured addresses that are not Solana public keys.
// Unset values are reported by Missing and skipped here.
func (c DashboardConfig) Invalid() []string {
	var invalid []string
	if c.Mint != "" && !IsPublicKey(c.Mint) {
		invalid = append(invalid, EnvMint+" is not a valid base58 public key")
	}
	if c.Wallet != "" && !IsPublicKey(c.Wallet) {
		invalid = append(invalid, EnvWallet+" is not a valid base58 public key")
	}
	return invalid
}

// Problems combines missing and invalid values into one diagnostic list
func (c DashboardConfig) Problems() []string {
	problems := make([]string, 0, 3)
	for _, name := range c.Missing() {
		problems = append(problems, "Missing "+name)
	}
	return append(problems, c.Invalid()...)
}

// IsPublicKey reports whether s decodes to a 32-byte base58 key
func IsPublicKey(s string) bool {
	decoded, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(decoded) == 32
}

func (c SolanaConfig) validate() error {
	u, err := url.Parse(c.RPCURL)
	if err != nil {
		return fmt.Errorf("invalid SOLANA_RPC_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid SOLANA_RPC_URL: unsupported scheme %q", u.Scheme)
	}
	if len(c.TokenPrograms) == 0 {
		return fmt.Errorf("SOLANA_TOKEN_PROGRAMS must list at least one program")
	}
	return nil
}

// Addr returns the listen address of the API server
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
