package ledger

import (
	"time"

	"github.com/holiman/uint256"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
)

// Proposal duration bounds, measured from creation time to deadline.
const (
	MinProposalDuration = time.Hour
	MaxProposalDuration = 30 * 24 * time.Hour
)

// OpKind names a governance operation. The set is closed: the executor
// dispatches with an exhaustive type switch and anything else fails with
// InvalidOperationType.
type OpKind string

const (
	OpSetSigner         OpKind = "SetSigner"
	OpAddAdmin          OpKind = "AddAdmin"
	OpRemoveAdmin       OpKind = "RemoveAdmin"
	OpChangeThreshold   OpKind = "ChangeThreshold"
	OpAdminWithdraw     OpKind = "AdminWithdraw"
	OpWithdrawFromPool  OpKind = "WithdrawFromPool"
	OpPause             OpKind = "Pause"
	OpUnpause           OpKind = "Unpause"
	OpEmergencyWithdraw OpKind = "EmergencyWithdraw"
)

// Operation is the tagged union of governance operation payloads.
type Operation interface {
	Kind() OpKind
}

// SetSigner replaces the account whose signature authorizes settlements.
type SetSigner struct {
	Signer account.Account
}

// AddAdmin appends a new member to the governance committee.
type AddAdmin struct {
	Admin account.Account
}

// RemoveAdmin removes a member from the governance committee.
type RemoveAdmin struct {
	Admin account.Account
}

// ChangeThreshold sets the quorum threshold.
type ChangeThreshold struct {
	Threshold int
}

// AdminWithdraw releases funds from the payment pool to a recipient.
type AdminWithdraw struct {
	Asset     assets.Asset
	Amount    *uint256.Int
	Recipient account.Account
}

// WithdrawFromPool releases funds from the withdrawal pool to a recipient.
type WithdrawFromPool struct {
	Asset     assets.Asset
	Amount    *uint256.Int
	Recipient account.Account
}

// Pause halts settlements and deposits.
type Pause struct{}

// Unpause resumes settlements and deposits.
type Unpause struct{}

// EmergencyWithdraw zeroes both pools for an asset and pays the recipient
// their former sum.
type EmergencyWithdraw struct {
	Asset     assets.Asset
	Recipient account.Account
}

func (SetSigner) Kind() OpKind         { return OpSetSigner }
func (AddAdmin) Kind() OpKind          { return OpAddAdmin }
func (RemoveAdmin) Kind() OpKind       { return OpRemoveAdmin }
func (ChangeThreshold) Kind() OpKind   { return OpChangeThreshold }
func (AdminWithdraw) Kind() OpKind     { return OpAdminWithdraw }
func (WithdrawFromPool) Kind() OpKind  { return OpWithdrawFromPool }
func (Pause) Kind() OpKind             { return OpPause }
func (Unpause) Kind() OpKind           { return OpUnpause }
func (EmergencyWithdraw) Kind() OpKind { return OpEmergencyWithdraw }

// proposal is the internal lifecycle record. A proposal is in exactly one of
// {pending, executed, cancelled}; the terminal states are immutable.
// Proposals are retained forever for audit.
type proposal struct {
	id        uint64
	op        Operation
	proposer  account.Account
	createdAt int64
	deadline  int64
	confirmed map[account.Account]bool
	executed  bool
	cancelled bool
}

func (p *proposal) closed() bool {
	return p.executed || p.cancelled
}

// ProposalStatus is the externally visible lifecycle state.
type ProposalStatus string

const (
	StatusPending   ProposalStatus = "pending"
	StatusExecuted  ProposalStatus = "executed"
	StatusCancelled ProposalStatus = "cancelled"
)

// ProposalInfo is a read-only snapshot of a proposal.
//
// Confirmations counts only confirmers who are admins at snapshot time, so a
// member removed after confirming no longer contributes (the same rule the
// executor applies). Confirmers lists those active confirmers.
type ProposalInfo struct {
	ID            uint64
	Op            Operation
	Proposer      account.Account
	CreatedAt     int64
	Deadline      int64
	Status        ProposalStatus
	Confirmations int
	Confirmers    []account.Account
}

func (p *proposal) status() ProposalStatus {
	switch {
	case p.executed:
		return StatusExecuted
	case p.cancelled:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// effectiveConfirmers intersects the stored confirmation set with current
// admin membership, in admin iteration order.
func (p *proposal) effectiveConfirmers(admins *adminSet) []account.Account {
	var out []account.Account
	for _, a := range admins.accounts() {
		if p.confirmed[a] {
			out = append(out, a)
		}
	}
	return out
}

func (p *proposal) snapshot(admins *adminSet) ProposalInfo {
	confirmers := p.effectiveConfirmers(admins)
	return ProposalInfo{
		ID:            p.id,
		Op:            p.op,
		Proposer:      p.proposer,
		CreatedAt:     p.createdAt,
		Deadline:      p.deadline,
		Status:        p.status(),
		Confirmations: len(confirmers),
		Confirmers:    confirmers,
	}
}
