package wallet

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"haw/internal/model"
)

func (s *Store) txLogPath() string {
	return filepath.Join(s.dir, txLogFileName)
}

// LogTransaction appends a transfer record to transactions.log as one JSON
// line. Disabled via features.logTransactions. The log is append-only;
// nothing in this package rewrites it.
func (s *Store) LogTransaction(walletName, txID, recipient string, amountSompi uint64) error {
	if !s.LogTransactionsEnabled() {
		return nil
	}

	entry := model.TransactionLogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Wallet:    walletName,
		TxID:      txID,
		Recipient: recipient,
		Amount:    strconv.FormatUint(amountSompi, 10),
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.txLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open transaction log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction log: %w", err)
	}

	s.log.Info().
		Str("wallet", walletName).
		Str("txId", txID).
		Str("recipient", recipient).
		Uint64("amount", amountSompi).
		Msg("transaction logged")
	return nil
}

// TransactionHistory returns past transfers, newest last. limit <= 0
// returns everything; otherwise only the most recent limit entries.
func (s *Store) TransactionHistory(limit int) ([]model.TransactionLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.txLogPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open transaction log: %w", err)
	}
	defer f.Close()

	var entries []model.TransactionLogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry model.TransactionLogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			// Skip unreadable lines rather than failing the whole history
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(s.txLogPath()), err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}
