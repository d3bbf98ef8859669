// Package assets defines the fund-transfer capability the ledger core calls
// to move value, plus the asset identifier type.
//
// The core never implements transfers itself: it only debits and credits its
// own books and delegates actual movement to a Transfer implementation. A
// Transfer implementation MUST NOT call back into the ledger that invoked it;
// such calls fail with the ledger's reentrancy guard.
package assets

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
)

// Asset identifies a transferable asset. The zero value is the native asset;
// any other value is a token identified by its issuing account.
type Asset account.Account

// Native is the native (non-token) asset.
var Native Asset

// String returns the canonical hex form, or "native" for the native asset.
func (a Asset) String() string {
	if a == Native {
		return "native"
	}
	return account.Account(a).String()
}

// ParseAsset decodes "native" or a hex account string.
func ParseAsset(s string) (Asset, error) {
	if s == "" || s == "native" {
		return Native, nil
	}
	acct, err := account.Parse(s)
	if err != nil {
		return Native, err
	}
	return Asset(acct), nil
}

// Transfer errors. Implementations must return these (or wrap them) so the
// core can distinguish payer faults from custody faults.
var (
	// ErrInsufficientFunds means the debited party does not hold amount.
	ErrInsufficientFunds = errors.New("assets: insufficient funds")
	// ErrShortDelivery means a receive delivered less than the requested
	// amount (fee-on-transfer assets are rejected, not tolerated).
	ErrShortDelivery = errors.New("assets: short delivery")
)

// Transfer moves funds between external parties and the custody pool.
//
// Contract:
//   - Receive MUST deliver exactly amount into custody and return the amount
//     actually received; anything less is an error.
//   - Send MUST deliver exactly amount from custody to the recipient.
//   - Both MUST be atomic: on error no balance has moved.
//   - Implementations MUST NOT invoke ledger entry points.
type Transfer interface {
	Receive(asset Asset, from account.Account, amount *uint256.Int) (*uint256.Int, error)
	Send(asset Asset, to account.Account, amount *uint256.Int) error
}
