package ledger

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/Code rather than matching error strings.
// Error() strings are intentionally human-readable and may evolve.
type Kind string

const (
	KindAuth       Kind = "Auth"       // caller or signature not authorized
	KindPrecond    Kind = "Precond"    // request precondition violated
	KindGovernance Kind = "Governance" // proposal lifecycle violation
	KindFunds      Kind = "Funds"      // balance or transfer failure
	KindInternal   Kind = "Internal"
)

// Code is a stable, machine-checkable identifier for a rejected precondition.
// Every named failure the engine can produce has exactly one Code.
type Code string

const (
	CodeNotAdmin                Code = "NotAdmin"
	CodeProjectPaused           Code = "ProjectPaused"
	CodeInvalidSignature        Code = "InvalidSignature"
	CodeExpiredDeadline         Code = "ExpiredDeadline"
	CodeSerialNoUsed            Code = "SerialNoUsed"
	CodeSerialNoEmpty           Code = "SerialNoEmpty"
	CodeSerialNoTooLong         Code = "SerialNoTooLong"
	CodeInvalidAmount           Code = "InvalidAmount"
	CodeInvalidAddress          Code = "InvalidAddress"
	CodeInsufficientBalance     Code = "InsufficientBalance"
	CodeInvalidThreshold        Code = "InvalidThreshold"
	CodeThresholdNotReached     Code = "ThresholdNotReached"
	CodeThresholdTooHigh        Code = "ThresholdTooHigh"
	CodeProposalNotFound        Code = "ProposalNotFound"
	CodeProposalExpired         Code = "ProposalExpired"
	CodeProposalClosed          Code = "ProposalClosed"
	CodeInvalidProposalDuration Code = "InvalidProposalDuration"
	CodeAlreadyConfirmed        Code = "AlreadyConfirmed"
	CodeNotConfirmed            Code = "NotConfirmed"
	CodeNotProposer             Code = "NotProposer"
	CodeInvalidOperationType    Code = "InvalidOperationType"
	CodeInvalidName             Code = "InvalidName"
	CodeTooManyAdmins           Code = "TooManyAdmins"
	CodeAdminExists             Code = "AdminExists"
	CodeAdminNotFound           Code = "AdminNotFound"
	CodeReentrantCall           Code = "ReentrantCall"
	CodeTransferFailed          Code = "TransferFailed"
	CodeInvalidConfig           Code = "InvalidConfig"
	CodeInvalidPagination       Code = "InvalidPagination"
)

// Error is the engine's structured error type.
//
// Message is intended for humans; do not match on it. Use errors.As to
// extract *Error, or the IsCode/CodeOf helpers.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, code Code, msg string) error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func wrapError(kind Kind, code Code, msg string, cause error) error {
	if cause == nil {
		return newError(kind, code, msg)
	}
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

// IsCode reports whether err is (or wraps) a *Error with the given Code.
func IsCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// CodeOf returns the stable Code for a structured error, or "" if unknown.
func CodeOf(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
