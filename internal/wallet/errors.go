package wallet

import "errors"

var (
	// ErrNotInitialized means wallets.enc does not exist yet
	ErrNotInitialized = errors.New("wallet system not initialized, run init first")

	// ErrAlreadyInitialized means init was called on an existing vault
	ErrAlreadyInitialized = errors.New("wallet system already initialized")

	// ErrLocked means no valid session password is available
	ErrLocked = errors.New("wallet system locked, unlock first")

	// ErrWalletExists means a wallet with that name already exists
	ErrWalletExists = errors.New("wallet already exists")

	// ErrWalletNotFound means no wallet with that name exists
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrLabelNotFound means no address book entry with that label exists
	ErrLabelNotFound = errors.New("address label not found")

	// ErrUnresolvable means an identifier is neither a label, a wallet
	// name, nor a plausible address
	ErrUnresolvable = errors.New("could not resolve address")
)
