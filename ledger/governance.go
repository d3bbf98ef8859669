package ledger

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
)

// CreateProposal opens a proposal for op with the given deadline (unix
// seconds). The creator auto-confirms. The deadline must lie between one
// hour and thirty days from now.
func (p *Project) CreateProposal(caller account.Account, op Operation, deadline int64) (uint64, error) {
	if err := p.guard.acquire(); err != nil {
		return 0, err
	}
	defer p.guard.release()

	if err := p.requireAdmin(caller); err != nil {
		return 0, err
	}
	if err := validateOpShape(op); err != nil {
		return 0, err
	}
	now := p.unixNow()
	// Compare in whole seconds. Converting the delta to a time.Duration
	// first can overflow int64 nanoseconds for a far-future deadline and
	// wrap back inside the window.
	delta := deadline - now
	if delta < int64(MinProposalDuration/time.Second) || delta > int64(MaxProposalDuration/time.Second) {
		return 0, newError(KindGovernance, CodeInvalidProposalDuration,
			"proposal deadline must be between 1 hour and 30 days from now")
	}

	id := p.nextID
	p.nextID++
	p.proposals[id] = &proposal{
		id:        id,
		op:        op,
		proposer:  caller,
		createdAt: now,
		deadline:  deadline,
		confirmed: map[account.Account]bool{caller: true},
	}
	p.pendingOpen++
	return id, nil
}

// ConfirmProposal records caller's confirmation on an open, unexpired
// proposal.
func (p *Project) ConfirmProposal(caller account.Account, id uint64) error {
	if err := p.guard.acquire(); err != nil {
		return err
	}
	defer p.guard.release()

	if err := p.requireAdmin(caller); err != nil {
		return err
	}
	prop, err := p.openProposal(id)
	if err != nil {
		return err
	}
	if prop.deadline < p.unixNow() {
		return newError(KindGovernance, CodeProposalExpired, fmt.Sprintf("proposal %d has expired", id))
	}
	if prop.confirmed[caller] {
		return newError(KindGovernance, CodeAlreadyConfirmed, "caller already confirmed")
	}
	prop.confirmed[caller] = true
	return nil
}

// RevokeConfirmation withdraws caller's confirmation. Revocation stays
// available on expired proposals: only execution and cancellation close a
// proposal.
func (p *Project) RevokeConfirmation(caller account.Account, id uint64) error {
	if err := p.guard.acquire(); err != nil {
		return err
	}
	defer p.guard.release()

	if err := p.requireAdmin(caller); err != nil {
		return err
	}
	prop, err := p.openProposal(id)
	if err != nil {
		return err
	}
	if !prop.confirmed[caller] {
		return newError(KindGovernance, CodeNotConfirmed, "caller has not confirmed")
	}
	delete(prop.confirmed, caller)
	return nil
}

// CancelProposal closes an open proposal. Only the original proposer may
// cancel.
func (p *Project) CancelProposal(caller account.Account, id uint64) error {
	if err := p.guard.acquire(); err != nil {
		return err
	}
	defer p.guard.release()

	prop, err := p.openProposal(id)
	if err != nil {
		return err
	}
	if prop.proposer != caller {
		return newError(KindGovernance, CodeNotProposer, "only the proposer may cancel")
	}
	prop.cancelled = true
	p.pendingOpen--

	p.recorder.Record(Record{
		Kind:     RecordProposalCancelled,
		Project:  p.id,
		Caller:   caller,
		Proposal: id,
		Op:       prop.op.Kind(),
		Time:     p.unixNow(),
	})
	return nil
}

// ExecuteProposal applies an open, unexpired proposal once the quorum is
// met. The effective confirmation count reflects only currently-active
// admins: a member removed after confirming no longer counts. If the
// operation itself fails the proposal stays pending and no state changes.
func (p *Project) ExecuteProposal(caller account.Account, id uint64) error {
	if err := p.guard.acquire(); err != nil {
		return err
	}
	defer p.guard.release()

	if err := p.requireAdmin(caller); err != nil {
		return err
	}
	prop, err := p.openProposal(id)
	if err != nil {
		return err
	}
	if prop.deadline < p.unixNow() {
		return newError(KindGovernance, CodeProposalExpired, fmt.Sprintf("proposal %d has expired", id))
	}
	if len(prop.effectiveConfirmers(p.admins)) < p.threshold {
		return newError(KindGovernance, CodeThresholdNotReached,
			fmt.Sprintf("proposal %d below threshold %d", id, p.threshold))
	}

	moved, err := p.applyOperation(prop.op)
	if err != nil {
		return err
	}
	prop.executed = true
	p.pendingOpen--

	rec := Record{
		Kind:     RecordProposalExecuted,
		Project:  p.id,
		Caller:   caller,
		Proposal: id,
		Op:       prop.op.Kind(),
		Time:     p.unixNow(),
	}
	switch op := prop.op.(type) {
	case AdminWithdraw:
		rec.Asset, rec.Payee, rec.Amount = op.Asset, op.Recipient, op.Amount.Clone()
	case WithdrawFromPool:
		rec.Asset, rec.Payee, rec.Amount = op.Asset, op.Recipient, op.Amount.Clone()
	case EmergencyWithdraw:
		rec.Asset, rec.Payee, rec.Amount = op.Asset, op.Recipient, moved
	}
	p.recorder.Record(rec)
	return nil
}

func (p *Project) openProposal(id uint64) (*proposal, error) {
	prop, ok := p.proposals[id]
	if !ok {
		return nil, newError(KindGovernance, CodeProposalNotFound, fmt.Sprintf("proposal %d not found", id))
	}
	if prop.closed() {
		return nil, newError(KindGovernance, CodeProposalClosed, fmt.Sprintf("proposal %d is %s", id, prop.status()))
	}
	return prop, nil
}

// validateOpShape rejects malformed payloads at creation time. Checks that
// depend on project state (membership, balances, threshold bounds) happen at
// execution.
func validateOpShape(op Operation) error {
	switch o := op.(type) {
	case SetSigner:
		if o.Signer.IsZero() {
			return newError(KindPrecond, CodeInvalidAddress, "signer is zero")
		}
	case AddAdmin:
		if o.Admin.IsZero() {
			return newError(KindPrecond, CodeInvalidAddress, "admin is zero")
		}
	case RemoveAdmin:
		if o.Admin.IsZero() {
			return newError(KindPrecond, CodeInvalidAddress, "admin is zero")
		}
	case ChangeThreshold:
		if o.Threshold < 1 {
			return newError(KindPrecond, CodeInvalidThreshold, "threshold must be at least 1")
		}
	case AdminWithdraw:
		return validatePayout(o.Recipient, o.Amount)
	case WithdrawFromPool:
		return validatePayout(o.Recipient, o.Amount)
	case Pause, Unpause:
	case EmergencyWithdraw:
		if o.Recipient.IsZero() {
			return newError(KindPrecond, CodeInvalidAddress, "recipient is zero")
		}
	default:
		return newError(KindGovernance, CodeInvalidOperationType, "unrecognized operation")
	}
	return nil
}

// applyOperation dispatches an approved operation. The switch is exhaustive
// over the closed kind set; any other type fails with InvalidOperationType.
// Each arm is atomic: it checks, then mutates, and rolls back its own
// bookkeeping if the external send fails. For EmergencyWithdraw the drained
// total is returned so the execution record can state how much left custody;
// every other arm returns a nil amount.
func (p *Project) applyOperation(op Operation) (*uint256.Int, error) {
	switch o := op.(type) {
	case SetSigner:
		if o.Signer.IsZero() {
			return nil, newError(KindPrecond, CodeInvalidAddress, "signer is zero")
		}
		p.signer = o.Signer

	case AddAdmin:
		if o.Admin.IsZero() {
			return nil, newError(KindPrecond, CodeInvalidAddress, "admin is zero")
		}
		if p.admins.contains(o.Admin) {
			return nil, newError(KindGovernance, CodeAdminExists, o.Admin.String()+" is already an admin")
		}
		if p.admins.len() >= MaxAdmins {
			return nil, newError(KindGovernance, CodeTooManyAdmins, fmt.Sprintf("admin set is at its bound of %d", MaxAdmins))
		}
		p.admins.add(o.Admin)

	case RemoveAdmin:
		if !p.admins.contains(o.Admin) {
			return nil, newError(KindGovernance, CodeAdminNotFound, o.Admin.String()+" is not an admin")
		}
		if p.admins.len()-1 < p.threshold {
			return nil, newError(KindGovernance, CodeThresholdTooHigh, "removal would drop membership below the threshold")
		}
		p.admins.remove(o.Admin)

	case ChangeThreshold:
		if o.Threshold < 1 || o.Threshold > p.admins.len() {
			return nil, newError(KindGovernance, CodeInvalidThreshold,
				fmt.Sprintf("threshold %d outside 1..%d", o.Threshold, p.admins.len()))
		}
		p.threshold = o.Threshold

	case AdminWithdraw:
		if err := validatePayout(o.Recipient, o.Amount); err != nil {
			return nil, err
		}
		if !p.balances.debitPayment(o.Asset, o.Amount) {
			return nil, newError(KindFunds, CodeInsufficientBalance, "payment pool balance too low")
		}
		if err := p.bank.Send(o.Asset, o.Recipient, o.Amount); err != nil {
			p.balances.creditPayment(o.Asset, o.Amount)
			return nil, wrapError(KindFunds, CodeTransferFailed, "sending admin withdrawal", err)
		}

	case WithdrawFromPool:
		if err := validatePayout(o.Recipient, o.Amount); err != nil {
			return nil, err
		}
		if !p.balances.debitWithdrawal(o.Asset, o.Amount) {
			return nil, newError(KindFunds, CodeInsufficientBalance, "withdrawal pool balance too low")
		}
		if err := p.bank.Send(o.Asset, o.Recipient, o.Amount); err != nil {
			p.balances.creditWithdrawal(o.Asset, o.Amount)
			return nil, wrapError(KindFunds, CodeTransferFailed, "sending pool withdrawal", err)
		}

	case Pause:
		p.paused = true

	case Unpause:
		p.paused = false

	case EmergencyWithdraw:
		if o.Recipient.IsZero() {
			return nil, newError(KindPrecond, CodeInvalidAddress, "recipient is zero")
		}
		before := p.balances.get(o.Asset)
		total, ok := p.balances.drain(o.Asset)
		if !ok {
			return nil, newError(KindFunds, CodeInvalidAmount, "pool total overflows")
		}
		if total.IsZero() {
			return nil, newError(KindFunds, CodeInvalidAmount, "both pools are empty")
		}
		if err := p.bank.Send(o.Asset, o.Recipient, total); err != nil {
			p.balances.creditPayment(o.Asset, before.Payment)
			p.balances.creditWithdrawal(o.Asset, before.Withdrawal)
			return nil, wrapError(KindFunds, CodeTransferFailed, "sending emergency withdrawal", err)
		}
		return total, nil

	default:
		return nil, newError(KindGovernance, CodeInvalidOperationType, "unrecognized operation")
	}
	return nil, nil
}

func validatePayout(recipient account.Account, amount *uint256.Int) error {
	if recipient.IsZero() {
		return newError(KindPrecond, CodeInvalidAddress, "recipient is zero")
	}
	if amount == nil || amount.IsZero() {
		return newError(KindPrecond, CodeInvalidAmount, "amount must be positive")
	}
	return nil
}
