package ledger

import (
	"github.com/holiman/uint256"

	"github.com/paythefly/PayTheFlyContract-sub001/assets"
)

// BalancePair is the per-asset pair of segregated pools.
//
// Payment holds funds collected from verified payments (owner-withdrawable
// only via governance). Withdrawal holds funds pre-funded by an admin and
// releasable to end users against signed requests. The two are never
// conflated: value moves between them only through an explicit governance
// operation.
type BalancePair struct {
	Payment    *uint256.Int
	Withdrawal *uint256.Int
}

func (bp BalancePair) clone() BalancePair {
	return BalancePair{Payment: bp.Payment.Clone(), Withdrawal: bp.Withdrawal.Clone()}
}

// balanceBook tracks a BalancePair per asset. All mutators are checked: a
// credit that would overflow or a debit that would underflow leaves the book
// untouched and reports failure.
type balanceBook struct {
	pairs map[assets.Asset]*BalancePair
}

func newBalanceBook() *balanceBook {
	return &balanceBook{pairs: make(map[assets.Asset]*BalancePair)}
}

func (b *balanceBook) pair(asset assets.Asset) *BalancePair {
	p, ok := b.pairs[asset]
	if !ok {
		p = &BalancePair{Payment: uint256.NewInt(0), Withdrawal: uint256.NewInt(0)}
		b.pairs[asset] = p
	}
	return p
}

// get returns a defensive copy of the pair for asset.
func (b *balanceBook) get(asset assets.Asset) BalancePair {
	if p, ok := b.pairs[asset]; ok {
		return p.clone()
	}
	return BalancePair{Payment: uint256.NewInt(0), Withdrawal: uint256.NewInt(0)}
}

func (b *balanceBook) creditPayment(asset assets.Asset, amount *uint256.Int) bool {
	return credit(b.pair(asset).Payment, amount)
}

func (b *balanceBook) debitPayment(asset assets.Asset, amount *uint256.Int) bool {
	return debit(b.pair(asset).Payment, amount)
}

func (b *balanceBook) creditWithdrawal(asset assets.Asset, amount *uint256.Int) bool {
	return credit(b.pair(asset).Withdrawal, amount)
}

func (b *balanceBook) debitWithdrawal(asset assets.Asset, amount *uint256.Int) bool {
	return debit(b.pair(asset).Withdrawal, amount)
}

// drain zeroes both pools for asset and returns their former sum.
// The sum of two pools cannot overflow only if both fit in 256 bits and the
// caller accepts the overflow check result.
func (b *balanceBook) drain(asset assets.Asset) (*uint256.Int, bool) {
	p := b.pair(asset)
	total, overflow := new(uint256.Int).AddOverflow(p.Payment, p.Withdrawal)
	if overflow {
		return nil, false
	}
	p.Payment.Clear()
	p.Withdrawal.Clear()
	return total, true
}

func credit(pool, amount *uint256.Int) bool {
	sum, overflow := new(uint256.Int).AddOverflow(pool, amount)
	if overflow {
		return false
	}
	pool.Set(sum)
	return true
}

func debit(pool, amount *uint256.Int) bool {
	if pool.Lt(amount) {
		return false
	}
	pool.Sub(pool, amount)
	return true
}
