package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters read from the environment.
// The master password is never configured here - it comes from the session
// (see session.go) or an interactive prompt.
type Config struct {
	Port      string `envconfig:"HOOSAT_WALLETD_PORT" default:"8090"`
	WalletDir string `envconfig:"HOOSAT_WALLET_DIR"`
	APIURL    string `envconfig:"HOOSAT_API_URL"`
	Network   string `envconfig:"HOOSAT_NETWORK"`
	LogLevel  string `envconfig:"HOOSAT_LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"HOOSAT_LOG_PRETTY" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns the daemon listen port from configuration
func GetPort() string {
	return Get().Port
}

// GetWalletDir returns the wallet directory, defaulting to ~/.hoosat-wallets
func GetWalletDir() string {
	if dir := Get().WalletDir; dir != "" {
		return dir
	}
	return DefaultWalletDir()
}

// DefaultWalletDir returns ~/.hoosat-wallets
func DefaultWalletDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to a relative directory when HOME is unset
		return ".hoosat-wallets"
	}
	return filepath.Join(home, ".hoosat-wallets")
}

// GetAPIURL returns the REST proxy URL override, or empty to use the
// endpoint from the config document
func GetAPIURL() string {
	return Get().APIURL
}

// GetNetwork returns the network override, or empty to use the config document
func GetNetwork() string {
	return Get().Network
}
