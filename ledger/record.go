package ledger

import (
	"github.com/holiman/uint256"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
)

// RecordKind names the event a Record describes.
type RecordKind string

const (
	RecordPayment           RecordKind = "PAYMENT"
	RecordWithdrawal        RecordKind = "WITHDRAWAL"
	RecordDeposit           RecordKind = "DEPOSIT"
	RecordProposalExecuted  RecordKind = "PROPOSAL_EXECUTED"
	RecordProposalCancelled RecordKind = "PROPOSAL_CANCELLED"
)

// Record describes a completed state transition. Records are emitted only
// after the transition has fully applied; a rejected call emits nothing.
// Fields that do not apply to a kind are left zero.
type Record struct {
	Kind     RecordKind
	Project  account.Account
	Asset    assets.Asset
	Caller   account.Account
	Payee    account.Account
	Amount   *uint256.Int
	Fee      *uint256.Int
	SerialNo string
	Proposal uint64
	Op       OpKind
	Time     int64
}

// Recorder receives Records. Implementations must not call back into the
// emitting project and must not block the call for long; a Recorder that
// fails should handle the failure itself (the engine treats emission as
// infallible, mirroring an event log).
type Recorder interface {
	Record(rec Record)
}

// nopRecorder drops all records. Used when no Recorder is configured.
type nopRecorder struct{}

func (nopRecorder) Record(Record) {}
