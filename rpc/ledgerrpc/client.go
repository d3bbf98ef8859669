package ledgerrpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/paythefly/PayTheFlyContract-sub001/model"
)

// Client is the typed client for the Ledger service. It handles the JSON
// framing and rebuilds engine errors, so callers can branch with
// ledger.IsCode exactly as they would against a local Project.
type Client struct {
	rc LedgerClient
}

// NewClient returns a typed client over cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{rc: NewLedgerClient(cc)}
}

type rpcMethod func(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)

func call(ctx context.Context, method rpcMethod, req, resp interface{}) error {
	b, err := json.Marshal(req)
	if err != nil {
		return err
	}
	out, err := method(ctx, wrapperspb.Bytes(b))
	if err != nil {
		return fromStatus(err)
	}
	if resp == nil {
		return nil
	}
	return json.Unmarshal(out.GetValue(), resp)
}

func (c *Client) CreateProject(ctx context.Context, req model.CreateProjectRequest) (string, error) {
	var resp model.CreateProjectResponse
	if err := call(ctx, c.rc.CreateProject, req, &resp); err != nil {
		return "", err
	}
	return resp.ProjectID, nil
}

func (c *Client) ProjectInfo(ctx context.Context, projectID string) (model.ProjectInfo, error) {
	var resp model.ProjectInfo
	err := call(ctx, c.rc.ProjectInfo, model.ProjectInfoRequest{ProjectID: projectID}, &resp)
	return resp, err
}

func (c *Client) Balances(ctx context.Context, projectID string, assetList []string) ([]model.AssetBalance, error) {
	var resp model.BalancesResponse
	err := call(ctx, c.rc.Balances, model.BalancesRequest{ProjectID: projectID, Assets: assetList}, &resp)
	return resp.Balances, err
}

func (c *Client) Pay(ctx context.Context, req model.PayRequest) error {
	return call(ctx, c.rc.Pay, req, nil)
}

func (c *Client) Withdraw(ctx context.Context, req model.WithdrawRequest) error {
	return call(ctx, c.rc.Withdraw, req, nil)
}

func (c *Client) Deposit(ctx context.Context, req model.DepositRequest) error {
	return call(ctx, c.rc.Deposit, req, nil)
}

func (c *Client) SetName(ctx context.Context, projectID, caller, name string) error {
	return call(ctx, c.rc.SetName, model.SetNameRequest{ProjectID: projectID, Caller: caller, Name: name}, nil)
}

func (c *Client) CreateProposal(ctx context.Context, req model.CreateProposalRequest) (uint64, error) {
	var resp model.CreateProposalResponse
	if err := call(ctx, c.rc.CreateProposal, req, &resp); err != nil {
		return 0, err
	}
	return resp.ProposalID, nil
}

func (c *Client) ConfirmProposal(ctx context.Context, projectID, caller string, proposalID uint64) error {
	return call(ctx, c.rc.ConfirmProposal, model.ProposalActionRequest{ProjectID: projectID, Caller: caller, ProposalID: proposalID}, nil)
}

func (c *Client) RevokeConfirmation(ctx context.Context, projectID, caller string, proposalID uint64) error {
	return call(ctx, c.rc.RevokeConfirmation, model.ProposalActionRequest{ProjectID: projectID, Caller: caller, ProposalID: proposalID}, nil)
}

func (c *Client) CancelProposal(ctx context.Context, projectID, caller string, proposalID uint64) error {
	return call(ctx, c.rc.CancelProposal, model.ProposalActionRequest{ProjectID: projectID, Caller: caller, ProposalID: proposalID}, nil)
}

func (c *Client) ExecuteProposal(ctx context.Context, projectID, caller string, proposalID uint64) error {
	return call(ctx, c.rc.ExecuteProposal, model.ProposalActionRequest{ProjectID: projectID, Caller: caller, ProposalID: proposalID}, nil)
}

func (c *Client) GetProposal(ctx context.Context, projectID string, proposalID uint64) (model.ProposalInfo, error) {
	var resp model.ProposalInfo
	err := call(ctx, c.rc.GetProposal, model.GetProposalRequest{ProjectID: projectID, ProposalID: proposalID}, &resp)
	return resp, err
}

func (c *Client) ListProposals(ctx context.Context, projectID string, offset, limit int) ([]model.ProposalInfo, error) {
	var resp model.ListProposalsResponse
	err := call(ctx, c.rc.ListProposals, model.ListProposalsRequest{ProjectID: projectID, Offset: offset, Limit: limit}, &resp)
	return resp.Proposals, err
}

func (c *Client) IsSerialUsed(ctx context.Context, projectID, serialNo string) (bool, error) {
	var resp model.SerialUsedResponse
	err := call(ctx, c.rc.IsSerialUsed, model.SerialUsedRequest{ProjectID: projectID, SerialNo: serialNo}, &resp)
	return resp.Used, err
}
