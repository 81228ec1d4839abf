package model

// ConfigVersion is written into new config documents and vaults
const ConfigVersion = "1.0.0"

// AgentConfig is the config.json document. It is read and rewritten
// wholesale on every configuration change.
type AgentConfig struct {
	Version     string            `json:"version"`
	Security    SecurityConfig    `json:"security"`
	AutoApprove AutoApproveConfig `json:"autoApprove"`
	Network     NetworkConfig     `json:"network"`
	Features    FeatureFlags      `json:"features"`
}

// SecurityConfig holds session policy
type SecurityConfig struct {
	SessionTimeout int `json:"sessionTimeout"` // seconds
}

// AutoApproveConfig holds the auto-approve policy
type AutoApproveConfig struct {
	Enabled          bool                       `json:"enabled"`
	DefaultMaxAmount string                     `json:"defaultMaxAmount"` // sompi
	Wallets          map[string]AutoApproveRule `json:"wallets"`
}

// AutoApproveRule is the per-wallet auto-approve setting
type AutoApproveRule struct {
	Enabled   bool   `json:"enabled"`
	MaxAmount string `json:"maxAmount"` // sompi
}

// NetworkConfig holds network selection and API endpoints
type NetworkConfig struct {
	Default      string            `json:"default"`
	APIEndpoints map[string]string `json:"apiEndpoints"`
}

// FeatureFlags holds behavior toggles
type FeatureFlags struct {
	DryRun              bool `json:"dryRun"`
	ConfirmTransactions bool `json:"confirmTransactions"`
	LogTransactions     bool `json:"logTransactions"`
}

// DefaultAgentConfig returns the configuration written on first run.
// Testnet and dry-run by default so a fresh agent cannot spend real funds.
func DefaultAgentConfig() *AgentConfig {
	return &AgentConfig{
		Version: ConfigVersion,
		Security: SecurityConfig{
			SessionTimeout: 3600,
		},
		AutoApprove: AutoApproveConfig{
			Enabled:          false,
			DefaultMaxAmount: "100000000", // 1 HTN
			Wallets:          map[string]AutoApproveRule{},
		},
		Network: NetworkConfig{
			Default: "testnet",
			APIEndpoints: map[string]string{
				"mainnet": "https://proxy.hoosat.net/api/v1",
				"testnet": "https://proxy.hoosat.net/api/v1",
			},
		},
		Features: FeatureFlags{
			DryRun:              true,
			ConfirmTransactions: true,
			LogTransactions:     true,
		},
	}
}
