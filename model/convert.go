package model

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
	"github.com/paythefly/PayTheFlyContract-sub001/ledger"
)

// FormatAmount renders an amount as a decimal string. Nil renders as "".
func FormatAmount(v *uint256.Int) string {
	if v == nil {
		return ""
	}
	return v.Dec()
}

// ParseAmount parses a decimal amount string.
func ParseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("model: empty amount")
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("model: bad amount %q: %w", s, err)
	}
	return v, nil
}

func accountOrEmpty(a account.Account) string {
	if a.IsZero() {
		return ""
	}
	return a.String()
}

// OperationFrom converts an engine operation to its wire form.
func OperationFrom(op ledger.Operation) Operation {
	out := Operation{Kind: string(op.Kind())}
	switch v := op.(type) {
	case ledger.SetSigner:
		out.Signer = v.Signer.String()
	case ledger.AddAdmin:
		out.Admin = v.Admin.String()
	case ledger.RemoveAdmin:
		out.Admin = v.Admin.String()
	case ledger.ChangeThreshold:
		out.Threshold = v.Threshold
	case ledger.AdminWithdraw:
		out.Asset = v.Asset.String()
		out.Amount = FormatAmount(v.Amount)
		out.Recipient = v.Recipient.String()
	case ledger.WithdrawFromPool:
		out.Asset = v.Asset.String()
		out.Amount = FormatAmount(v.Amount)
		out.Recipient = v.Recipient.String()
	case ledger.EmergencyWithdraw:
		out.Asset = v.Asset.String()
		out.Recipient = v.Recipient.String()
	}
	return out
}

// ToEngine converts a wire operation to the engine's tagged union. Unknown
// kinds and malformed fields are rejected here, before the engine sees them.
func (o Operation) ToEngine() (ledger.Operation, error) {
	switch ledger.OpKind(o.Kind) {
	case ledger.OpSetSigner:
		signer, err := account.Parse(o.Signer)
		if err != nil {
			return nil, fmt.Errorf("model: bad signer: %w", err)
		}
		return ledger.SetSigner{Signer: signer}, nil
	case ledger.OpAddAdmin, ledger.OpRemoveAdmin:
		admin, err := account.Parse(o.Admin)
		if err != nil {
			return nil, fmt.Errorf("model: bad admin: %w", err)
		}
		if ledger.OpKind(o.Kind) == ledger.OpAddAdmin {
			return ledger.AddAdmin{Admin: admin}, nil
		}
		return ledger.RemoveAdmin{Admin: admin}, nil
	case ledger.OpChangeThreshold:
		return ledger.ChangeThreshold{Threshold: o.Threshold}, nil
	case ledger.OpAdminWithdraw, ledger.OpWithdrawFromPool:
		asset, err := assets.ParseAsset(o.Asset)
		if err != nil {
			return nil, fmt.Errorf("model: bad asset: %w", err)
		}
		amount, err := ParseAmount(o.Amount)
		if err != nil {
			return nil, err
		}
		recipient, err := account.Parse(o.Recipient)
		if err != nil {
			return nil, fmt.Errorf("model: bad recipient: %w", err)
		}
		if ledger.OpKind(o.Kind) == ledger.OpAdminWithdraw {
			return ledger.AdminWithdraw{Asset: asset, Amount: amount, Recipient: recipient}, nil
		}
		return ledger.WithdrawFromPool{Asset: asset, Amount: amount, Recipient: recipient}, nil
	case ledger.OpPause:
		return ledger.Pause{}, nil
	case ledger.OpUnpause:
		return ledger.Unpause{}, nil
	case ledger.OpEmergencyWithdraw:
		asset, err := assets.ParseAsset(o.Asset)
		if err != nil {
			return nil, fmt.Errorf("model: bad asset: %w", err)
		}
		recipient, err := account.Parse(o.Recipient)
		if err != nil {
			return nil, fmt.Errorf("model: bad recipient: %w", err)
		}
		return ledger.EmergencyWithdraw{Asset: asset, Recipient: recipient}, nil
	default:
		return nil, fmt.Errorf("model: unknown operation kind %q", o.Kind)
	}
}

// ProjectInfoFrom converts an engine snapshot to its wire form.
func ProjectInfoFrom(info ledger.Info) ProjectInfo {
	admins := make([]string, len(info.Admins))
	for i, a := range info.Admins {
		admins[i] = a.String()
	}
	return ProjectInfo{
		ProjectID:        info.ID.String(),
		Name:             info.Name,
		Creator:          info.Creator.String(),
		Signer:           info.Signer.String(),
		Paused:           info.Paused,
		Admins:           admins,
		Threshold:        info.Threshold,
		ProposalCount:    info.ProposalCount,
		PendingProposals: info.PendingProposals,
	}
}

// ProposalInfoFrom converts an engine proposal snapshot to its wire form.
func ProposalInfoFrom(info ledger.ProposalInfo) ProposalInfo {
	confirmers := make([]string, len(info.Confirmers))
	for i, a := range info.Confirmers {
		confirmers[i] = a.String()
	}
	return ProposalInfo{
		ProposalID:    info.ID,
		Op:            OperationFrom(info.Op),
		Proposer:      info.Proposer.String(),
		CreatedAt:     info.CreatedAt,
		Deadline:      info.Deadline,
		Status:        string(info.Status),
		Confirmations: info.Confirmations,
		Confirmers:    confirmers,
	}
}

// RecordFrom converts an engine record to its archived form. The caller
// assigns id.
func RecordFrom(id string, rec ledger.Record) Record {
	return Record{
		ID:       id,
		Kind:     string(rec.Kind),
		Project:  rec.Project.String(),
		Asset:    rec.Asset.String(),
		Caller:   accountOrEmpty(rec.Caller),
		Payee:    accountOrEmpty(rec.Payee),
		Amount:   FormatAmount(rec.Amount),
		Fee:      FormatAmount(rec.Fee),
		SerialNo: rec.SerialNo,
		Proposal: rec.Proposal,
		Op:       string(rec.Op),
		Time:     rec.Time,
	}
}
