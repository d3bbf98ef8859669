package ledgerrpc

import (
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/paythefly/PayTheFlyContract-sub001/ledger"
)

// kindByCode rebuilds the error category on the client side. Every stable
// engine code maps to exactly one kind.
var kindByCode = map[ledger.Code]ledger.Kind{
	ledger.CodeNotAdmin:                ledger.KindAuth,
	ledger.CodeInvalidSignature:        ledger.KindAuth,
	ledger.CodeNotProposer:             ledger.KindAuth,
	ledger.CodeProjectPaused:           ledger.KindPrecond,
	ledger.CodeExpiredDeadline:         ledger.KindPrecond,
	ledger.CodeSerialNoUsed:            ledger.KindPrecond,
	ledger.CodeSerialNoEmpty:           ledger.KindPrecond,
	ledger.CodeSerialNoTooLong:         ledger.KindPrecond,
	ledger.CodeInvalidAmount:           ledger.KindPrecond,
	ledger.CodeInvalidAddress:          ledger.KindPrecond,
	ledger.CodeInvalidName:             ledger.KindPrecond,
	ledger.CodeReentrantCall:           ledger.KindPrecond,
	ledger.CodeInvalidConfig:           ledger.KindPrecond,
	ledger.CodeInvalidPagination:       ledger.KindPrecond,
	ledger.CodeInvalidThreshold:        ledger.KindGovernance,
	ledger.CodeThresholdNotReached:     ledger.KindGovernance,
	ledger.CodeThresholdTooHigh:        ledger.KindGovernance,
	ledger.CodeProposalNotFound:        ledger.KindGovernance,
	ledger.CodeProposalExpired:         ledger.KindGovernance,
	ledger.CodeProposalClosed:          ledger.KindGovernance,
	ledger.CodeInvalidProposalDuration: ledger.KindGovernance,
	ledger.CodeAlreadyConfirmed:        ledger.KindGovernance,
	ledger.CodeNotConfirmed:            ledger.KindGovernance,
	ledger.CodeInvalidOperationType:    ledger.KindGovernance,
	ledger.CodeTooManyAdmins:           ledger.KindGovernance,
	ledger.CodeAdminExists:             ledger.KindGovernance,
	ledger.CodeAdminNotFound:           ledger.KindGovernance,
	ledger.CodeInsufficientBalance:     ledger.KindFunds,
	ledger.CodeTransferFailed:          ledger.KindFunds,
}

func grpcCode(kind ledger.Kind, code ledger.Code) codes.Code {
	if code == ledger.CodeProposalNotFound {
		return codes.NotFound
	}
	switch kind {
	case ledger.KindAuth:
		return codes.PermissionDenied
	case ledger.KindPrecond:
		return codes.InvalidArgument
	case ledger.KindGovernance, ledger.KindFunds:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// toStatus converts an engine error to a gRPC status. The stable code
// travels as a "Code: message" prefix so the client can rebuild a typed
// error without a side channel.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	code := ledger.CodeOf(err)
	if code == "" {
		return status.Error(codes.Internal, err.Error())
	}
	kind := kindByCode[code]
	return status.Error(grpcCode(kind, code), string(code)+": "+err.Error())
}

// fromStatus rebuilds the engine error a server sent through toStatus.
// Unknown statuses pass through unchanged.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	msg := st.Message()
	head, tail, found := strings.Cut(msg, ": ")
	if !found {
		return err
	}
	code := ledger.Code(head)
	kind, known := kindByCode[code]
	if !known {
		return err
	}
	return &ledger.Error{Kind: kind, Code: code, Message: tail}
}
