package assets

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
)

// MemoryBank is an in-process Transfer implementation backed by per-account
// balances plus a single custody pool per asset. It exists for the daemon's
// standalone mode and for tests; real deployments plug in their own Transfer.
type MemoryBank struct {
	mu       sync.Mutex
	balances map[Asset]map[account.Account]*uint256.Int
	custody  map[Asset]*uint256.Int
}

// NewMemoryBank returns an empty bank.
func NewMemoryBank() *MemoryBank {
	return &MemoryBank{
		balances: make(map[Asset]map[account.Account]*uint256.Int),
		custody:  make(map[Asset]*uint256.Int),
	}
}

// Mint credits amount of asset to holder out of thin air.
func (b *MemoryBank) Mint(asset Asset, holder account.Account, amount *uint256.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credit(asset, holder, amount)
}

// BalanceOf returns holder's balance for asset.
func (b *MemoryBank) BalanceOf(asset Asset, holder account.Account) *uint256.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if held, ok := b.balances[asset][holder]; ok {
		return held.Clone()
	}
	return uint256.NewInt(0)
}

// CustodyBalance returns the custody pool balance for asset.
func (b *MemoryBank) CustodyBalance(asset Asset) *uint256.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if held, ok := b.custody[asset]; ok {
		return held.Clone()
	}
	return uint256.NewInt(0)
}

// Receive moves amount of asset from the payer into custody.
func (b *MemoryBank) Receive(asset Asset, from account.Account, amount *uint256.Int) (*uint256.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	held, ok := b.balances[asset][from]
	if !ok || held.Lt(amount) {
		return nil, fmt.Errorf("receive %s of %s from %s: %w", amount.Dec(), asset, from, ErrInsufficientFunds)
	}
	held.Sub(held, amount)
	pool, ok := b.custody[asset]
	if !ok {
		pool = uint256.NewInt(0)
		b.custody[asset] = pool
	}
	pool.Add(pool, amount)
	return amount.Clone(), nil
}

// Send moves amount of asset from custody to the recipient.
func (b *MemoryBank) Send(asset Asset, to account.Account, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	pool, ok := b.custody[asset]
	if !ok || pool.Lt(amount) {
		return fmt.Errorf("send %s of %s to %s: %w", amount.Dec(), asset, to, ErrInsufficientFunds)
	}
	pool.Sub(pool, amount)
	b.credit(asset, to, amount)
	return nil
}

func (b *MemoryBank) credit(asset Asset, holder account.Account, amount *uint256.Int) {
	byHolder, ok := b.balances[asset]
	if !ok {
		byHolder = make(map[account.Account]*uint256.Int)
		b.balances[asset] = byHolder
	}
	held, ok := byHolder[holder]
	if !ok {
		held = uint256.NewInt(0)
		byHolder[holder] = held
	}
	held.Add(held, amount)
}
