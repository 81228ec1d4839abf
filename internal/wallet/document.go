package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"haw/internal/client"
	"haw/internal/model"
)

func (s *Store) configPath() string {
	return filepath.Join(s.dir, configFileName)
}

// loadOrCreateConfig reads config.json, writing defaults on first run.
func (s *Store) loadOrCreateConfig() (*model.AgentConfig, error) {
	fileData, err := os.ReadFile(s.configPath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg := model.DefaultAgentConfig()
			if err := s.writeConfig(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg model.AgentConfig
	if err := json.Unmarshal(fileData, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.AutoApprove.Wallets == nil {
		cfg.AutoApprove.Wallets = map[string]model.AutoApproveRule{}
	}
	if cfg.Network.APIEndpoints == nil {
		cfg.Network.APIEndpoints = model.DefaultAgentConfig().Network.APIEndpoints
	}
	return &cfg, nil
}

// writeConfig rewrites config.json wholesale.
func (s *Store) writeConfig(cfg *model.AgentConfig) error {
	fileData, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(s.configPath(), fileData, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Config returns a copy of the current config document.
func (s *Store) Config() model.AgentConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cfg
}

// DefaultNetwork returns the configured default network.
func (s *Store) DefaultNetwork() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Network.Default
}

// SetDefaultNetwork changes the default network.
func (s *Store) SetDefaultNetwork(network string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.Network.Default = network
	return s.writeConfig(s.cfg)
}

// APIEndpoint returns the proxy URL for a network.
func (s *Store) APIEndpoint(network string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if url, ok := s.cfg.Network.APIEndpoints[network]; ok && url != "" {
		return url
	}
	return client.DefaultAPIURL
}

// DryRun reports whether dry-run mode is enabled.
func (s *Store) DryRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Features.DryRun
}

// SetDryRun toggles dry-run mode.
func (s *Store) SetDryRun(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.Features.DryRun = enabled
	return s.writeConfig(s.cfg)
}

// ShouldConfirm reports whether transfers require confirmation.
func (s *Store) ShouldConfirm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Features.ConfirmTransactions
}

// SetConfirmTransactions toggles transfer confirmation.
func (s *Store) SetConfirmTransactions(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.Features.ConfirmTransactions = enabled
	return s.writeConfig(s.cfg)
}

// SetAutoApprove configures the auto-approve rule for a wallet.
// maxAmount is in sompi; empty keeps the global default cap.
func (s *Store) SetAutoApprove(walletName, maxAmount string, enabled bool) error {
	if maxAmount != "" {
		if _, err := strconv.ParseUint(maxAmount, 10, 64); err != nil {
			return fmt.Errorf("invalid max amount %q: %w", maxAmount, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.AutoApprove.Wallets[walletName] = model.AutoApproveRule{
		Enabled:   enabled,
		MaxAmount: maxAmount,
	}
	return s.writeConfig(s.cfg)
}

// SetAutoApproveEnabled toggles the global auto-approve switch.
func (s *Store) SetAutoApproveEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.AutoApprove.Enabled = enabled
	return s.writeConfig(s.cfg)
}

// AutoApproveFor returns the auto-approve rule for a wallet, if any.
func (s *Store) AutoApproveFor(walletName string) (model.AutoApproveRule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule, ok := s.cfg.AutoApprove.Wallets[walletName]
	return rule, ok
}

// ShouldAutoApprove reports whether a transfer of the given amount from the
// given wallet may proceed without confirmation. Requires the global switch,
// the per-wallet rule, and the amount under the cap.
func (s *Store) ShouldAutoApprove(walletName string, amountSompi uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.AutoApprove.Enabled {
		return false
	}

	rule, ok := s.cfg.AutoApprove.Wallets[walletName]
	if !ok || !rule.Enabled {
		return false
	}

	capStr := rule.MaxAmount
	if capStr == "" {
		capStr = s.cfg.AutoApprove.DefaultMaxAmount
	}
	maxAmount, err := strconv.ParseUint(capStr, 10, 64)
	if err != nil {
		return false
	}
	return amountSompi <= maxAmount
}

// SetLogTransactions toggles the transaction log.
func (s *Store) SetLogTransactions(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.Features.LogTransactions = enabled
	return s.writeConfig(s.cfg)
}

// LogTransactionsEnabled reports whether submitted transfers are logged.
func (s *Store) LogTransactionsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Features.LogTransactions
}
