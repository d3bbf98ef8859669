package ledger

import (
	"github.com/holiman/uint256"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
)

// Pay settles a signed payment request. Anyone may call it: authorization is
// carried entirely by the signature, not by caller identity. The declared
// amount is received from the caller, the registry fee is carved out and
// routed to the fee vault, and the remainder is credited to the payment pool.
func (p *Project) Pay(caller account.Account, req PaymentRequest, sig []byte) error {
	if err := p.guard.acquire(); err != nil {
		return err
	}
	defer p.guard.release()

	if caller.IsZero() {
		return newError(KindPrecond, CodeInvalidAddress, "caller is zero")
	}
	if err := p.requireActive(); err != nil {
		return err
	}
	if err := checkSerial(req.SerialNo, p.paySerials, p.wdSerials); err != nil {
		return err
	}
	if req.Deadline < p.unixNow() {
		return newError(KindPrecond, CodeExpiredDeadline, "payment deadline has passed")
	}
	if req.Amount == nil || req.Amount.IsZero() {
		return newError(KindPrecond, CodeInvalidAmount, "amount must be positive")
	}
	if err := verifySigner(PaymentDigest(p.id, req), sig, p.signer); err != nil {
		return err
	}

	fee, net, err := p.splitFee(req.Amount)
	if err != nil {
		return err
	}

	received, err := p.bank.Receive(req.Asset, caller, req.Amount)
	if err != nil {
		return wrapError(KindFunds, CodeTransferFailed, "receiving payment", err)
	}
	if !received.Eq(req.Amount) {
		// Under-delivery (fee-on-transfer assets) is rejected outright.
		// The short amount is returned before failing.
		if rerr := p.bank.Send(req.Asset, caller, received); rerr != nil {
			return wrapError(KindFunds, CodeTransferFailed, "returning short delivery", rerr)
		}
		return wrapError(KindFunds, CodeTransferFailed, "short delivery", assets.ErrShortDelivery)
	}

	// Bookkeeping is applied before the fee leaves custody so a reentrant
	// replay attempt sees the serial as consumed.
	if !p.balances.creditPayment(req.Asset, net) {
		if rerr := p.bank.Send(req.Asset, caller, req.Amount); rerr != nil {
			return wrapError(KindFunds, CodeTransferFailed, "refunding after overflow", rerr)
		}
		return newError(KindFunds, CodeInvalidAmount, "payment pool overflow")
	}
	p.paySerials.mark(req.SerialNo)

	if !fee.IsZero() {
		if err := p.bank.Send(req.Asset, p.fees.FeeVault(), fee); err != nil {
			// Roll back this call's bookkeeping and return the funds.
			p.paySerials.unmark(req.SerialNo)
			p.balances.debitPayment(req.Asset, net)
			if rerr := p.bank.Send(req.Asset, caller, req.Amount); rerr != nil {
				return wrapError(KindFunds, CodeTransferFailed, "refunding after fee failure", rerr)
			}
			return wrapError(KindFunds, CodeTransferFailed, "routing fee", err)
		}
	}

	p.recorder.Record(Record{
		Kind:     RecordPayment,
		Project:  p.id,
		Asset:    req.Asset,
		Caller:   caller,
		Amount:   net.Clone(),
		Fee:      fee.Clone(),
		SerialNo: req.SerialNo,
		Time:     p.unixNow(),
	})
	return nil
}

// Withdraw settles a signed withdrawal request. The request must be
// submitted by the user it names: binding authorization to the actual sender
// stops a third party from redirecting an intercepted request.
func (p *Project) Withdraw(caller account.Account, req WithdrawalRequest, sig []byte) error {
	if err := p.guard.acquire(); err != nil {
		return err
	}
	defer p.guard.release()

	if caller.IsZero() || req.User != caller {
		return newError(KindPrecond, CodeInvalidAddress, "request user does not match caller")
	}
	if err := p.requireActive(); err != nil {
		return err
	}
	if err := checkSerial(req.SerialNo, p.paySerials, p.wdSerials); err != nil {
		return err
	}
	if req.Deadline < p.unixNow() {
		return newError(KindPrecond, CodeExpiredDeadline, "withdrawal deadline has passed")
	}
	if req.Amount == nil || req.Amount.IsZero() {
		return newError(KindPrecond, CodeInvalidAmount, "amount must be positive")
	}
	if err := verifySigner(WithdrawalDigest(p.id, req), sig, p.signer); err != nil {
		return err
	}
	if !p.balances.debitWithdrawal(req.Asset, req.Amount) {
		return newError(KindFunds, CodeInsufficientBalance, "withdrawal pool balance too low")
	}
	p.wdSerials.mark(req.SerialNo)

	if err := p.bank.Send(req.Asset, caller, req.Amount); err != nil {
		p.wdSerials.unmark(req.SerialNo)
		p.balances.creditWithdrawal(req.Asset, req.Amount)
		return wrapError(KindFunds, CodeTransferFailed, "sending withdrawal", err)
	}

	p.recorder.Record(Record{
		Kind:     RecordWithdrawal,
		Project:  p.id,
		Asset:    req.Asset,
		Caller:   caller,
		Payee:    caller,
		Amount:   req.Amount.Clone(),
		SerialNo: req.SerialNo,
		Time:     p.unixNow(),
	})
	return nil
}

// DepositToWithdrawalPool receives funds from an admin and credits the
// withdrawal pool. Additive-only with no egress risk, so no quorum.
func (p *Project) DepositToWithdrawalPool(caller account.Account, asset assets.Asset, amount *uint256.Int) error {
	if err := p.guard.acquire(); err != nil {
		return err
	}
	defer p.guard.release()

	if err := p.requireAdmin(caller); err != nil {
		return err
	}
	if err := p.requireActive(); err != nil {
		return err
	}
	if amount == nil || amount.IsZero() {
		return newError(KindPrecond, CodeInvalidAmount, "amount must be positive")
	}

	received, err := p.bank.Receive(asset, caller, amount)
	if err != nil {
		return wrapError(KindFunds, CodeTransferFailed, "receiving deposit", err)
	}
	if !received.Eq(amount) {
		if rerr := p.bank.Send(asset, caller, received); rerr != nil {
			return wrapError(KindFunds, CodeTransferFailed, "returning short delivery", rerr)
		}
		return wrapError(KindFunds, CodeTransferFailed, "short delivery", assets.ErrShortDelivery)
	}
	if !p.balances.creditWithdrawal(asset, amount) {
		if rerr := p.bank.Send(asset, caller, amount); rerr != nil {
			return wrapError(KindFunds, CodeTransferFailed, "refunding after overflow", rerr)
		}
		return newError(KindFunds, CodeInvalidAmount, "withdrawal pool overflow")
	}

	p.recorder.Record(Record{
		Kind:    RecordDeposit,
		Project: p.id,
		Asset:   asset,
		Caller:  caller,
		Amount:  amount.Clone(),
		Time:    p.unixNow(),
	})
	return nil
}

// splitFee computes (fee, net) for a payment amount using the registry's
// current rate: fee = floor(amount * rate / 10000).
func (p *Project) splitFee(amount *uint256.Int) (fee, net *uint256.Int, err error) {
	rate := p.fees.FeeRate()
	if rate > MaxFeeRate {
		return nil, nil, newError(KindInternal, CodeInvalidConfig, "fee rate above 1000 basis points")
	}
	scaled, overflow := new(uint256.Int).MulOverflow(amount, uint256.NewInt(uint64(rate)))
	if overflow {
		return nil, nil, newError(KindPrecond, CodeInvalidAmount, "amount too large for fee computation")
	}
	fee = scaled.Div(scaled, uint256.NewInt(FeeDenominator))
	net = new(uint256.Int).Sub(amount, fee)
	return fee, net, nil
}
