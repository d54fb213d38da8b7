package port

import (
	"context"
	"crypto/ecdsa"
)

// BalanceProvider reads and formats a wallet's balance for one token.
// For the native sentinel address the account balance is read directly;
// for contract tokens balanceOf, decimals and symbol are read through the
// chain's call interface. A zero balance is a success, not an error.
type BalanceProvider interface {
	GetBalance(ctx context.Context, tokenAddress, walletAddress string) (formatted string, symbol string, err error)
}

// WalletSession is the triple obtained from a successful wallet
// connection. The three handles share one underlying connection.
type WalletSession struct {
	// Signer authorizes transactions. Unused beyond acquisition in the
	// current scope.
	Signer *ecdsa.PrivateKey
	// Provider reads chain state on behalf of the session.
	Provider BalanceProvider
	// Address is the connected account in checksummed form.
	Address string
}

// WalletConnector establishes a wallet session. It fails with
// ErrNoWalletFound before any network call when no key is configured.
type WalletConnector interface {
	Connect(ctx context.Context) (*WalletSession, error)
}
