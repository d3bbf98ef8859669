package model

// Operation is the wire form of a governance operation. Kind selects the
// payload; fields that do not apply to a kind are omitted.
type Operation struct {
	Kind      string `json:"kind"`
	Signer    string `json:"signer,omitempty"`
	Admin     string `json:"admin,omitempty"`
	Threshold int    `json:"threshold,omitempty"`
	Asset     string `json:"asset,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}

type CreateProjectRequest struct {
	Creator   string   `json:"creator"`
	Name      string   `json:"name"`
	Signer    string   `json:"signer"`
	Admins    []string `json:"admins"`
	Threshold int      `json:"threshold"`
}

type CreateProjectResponse struct {
	ProjectID string `json:"projectID"`
}

type ProjectInfoRequest struct {
	ProjectID string `json:"projectID"`
}

type ProjectInfo struct {
	ProjectID        string   `json:"projectID"`
	Name             string   `json:"name"`
	Creator          string   `json:"creator"`
	Signer           string   `json:"signer"`
	Paused           bool     `json:"paused"`
	Admins           []string `json:"admins"`
	Threshold        int      `json:"threshold"`
	ProposalCount    uint64   `json:"proposalCount"`
	PendingProposals int      `json:"pendingProposals"`
}

type BalancesRequest struct {
	ProjectID string   `json:"projectID"`
	Assets    []string `json:"assets"`
}

type AssetBalance struct {
	Asset      string `json:"asset"`
	Payment    string `json:"payment"`
	Withdrawal string `json:"withdrawal"`
}

type BalancesResponse struct {
	Balances []AssetBalance `json:"balances"`
}

type PayRequest struct {
	ProjectID string `json:"projectID"`
	Payer     string `json:"payer"`
	Asset     string `json:"asset"`
	Amount    string `json:"amount"`
	SerialNo  string `json:"serialNo"`
	Deadline  int64  `json:"deadline"`
	Signature []byte `json:"signature"`
}

type WithdrawRequest struct {
	ProjectID string `json:"projectID"`
	Caller    string `json:"caller"`
	User      string `json:"user"`
	Asset     string `json:"asset"`
	Amount    string `json:"amount"`
	SerialNo  string `json:"serialNo"`
	Deadline  int64  `json:"deadline"`
	Signature []byte `json:"signature"`
}

type DepositRequest struct {
	ProjectID string `json:"projectID"`
	Caller    string `json:"caller"`
	Asset     string `json:"asset"`
	Amount    string `json:"amount"`
}

type SetNameRequest struct {
	ProjectID string `json:"projectID"`
	Caller    string `json:"caller"`
	Name      string `json:"name"`
}

type CreateProposalRequest struct {
	ProjectID string    `json:"projectID"`
	Proposer  string    `json:"proposer"`
	Op        Operation `json:"op"`
	// Deadline is the confirmation deadline in unix seconds. The engine
	// bounds the deadline relative to its own clock.
	Deadline int64 `json:"deadline"`
}

type CreateProposalResponse struct {
	ProposalID uint64 `json:"proposalID"`
}

// ProposalActionRequest addresses Confirm, Revoke, Cancel and Execute.
type ProposalActionRequest struct {
	ProjectID  string `json:"projectID"`
	Caller     string `json:"caller"`
	ProposalID uint64 `json:"proposalID"`
}

type GetProposalRequest struct {
	ProjectID  string `json:"projectID"`
	ProposalID uint64 `json:"proposalID"`
}

type ProposalInfo struct {
	ProposalID    uint64    `json:"proposalID"`
	Op            Operation `json:"op"`
	Proposer      string    `json:"proposer"`
	CreatedAt     int64     `json:"createdAt"`
	Deadline      int64     `json:"deadline"`
	Status        string    `json:"status"`
	Confirmations int       `json:"confirmations"`
	Confirmers    []string  `json:"confirmers"`
}

type ListProposalsRequest struct {
	ProjectID string `json:"projectID"`
	Offset    int    `json:"offset"`
	Limit     int    `json:"limit"`
}

type ListProposalsResponse struct {
	Proposals []ProposalInfo `json:"proposals"`
}

type SerialUsedRequest struct {
	ProjectID string `json:"projectID"`
	SerialNo  string `json:"serialNo"`
}

type SerialUsedResponse struct {
	Used bool `json:"used"`
}

type Empty struct{}

// Record is the archived form of a settlement or governance event. ID is a
// per-record UUID assigned by the audit log; the record's CID addresses the
// canonical bytes in the archive.
type Record struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Project  string `json:"project"`
	Asset    string `json:"asset,omitempty"`
	Caller   string `json:"caller,omitempty"`
	Payee    string `json:"payee,omitempty"`
	Amount   string `json:"amount,omitempty"`
	Fee      string `json:"fee,omitempty"`
	SerialNo string `json:"serialNo,omitempty"`
	Proposal uint64 `json:"proposal,omitempty"`
	Op       string `json:"op,omitempty"`
	Time     int64  `json:"time"`
}
