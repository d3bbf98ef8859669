// Package ledgerrpc exposes the custody registry over gRPC.
//
// The wire format is JSON inside protobuf BytesValue wrappers, so no
// protoc/codegen toolchain is required. The server serializes calls per
// project: the engine's reentrancy guard fails fast rather than queueing,
// and ordering between remote callers is this layer's job.
package ledgerrpc

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/paythefly/PayTheFlyContract-sub001/account"
	"github.com/paythefly/PayTheFlyContract-sub001/assets"
	"github.com/paythefly/PayTheFlyContract-sub001/ledger"
	"github.com/paythefly/PayTheFlyContract-sub001/model"
	"github.com/paythefly/PayTheFlyContract-sub001/registry"
)

// Server exposes a registry.Registry over the Ledger gRPC service.
type Server struct {
	UnimplementedLedgerServer

	registry *registry.Registry
	logger   zerolog.Logger

	mu    sync.Mutex
	locks map[account.Account]*sync.Mutex
}

// NewServer wraps reg.
func NewServer(reg *registry.Registry, logger zerolog.Logger) *Server {
	return &Server{
		registry: reg,
		logger:   logger,
		locks:    make(map[account.Account]*sync.Mutex),
	}
}

func decode(in *wrapperspb.BytesValue, dst interface{}) error {
	if err := json.Unmarshal(in.GetValue(), dst); err != nil {
		return status.Error(codes.InvalidArgument, "malformed request: "+err.Error())
	}
	return nil
}

func encode(v interface{}) (*wrapperspb.BytesValue, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "response encoding failed")
	}
	return wrapperspb.Bytes(b), nil
}

func parseAccount(field, s string) (account.Account, error) {
	a, err := account.Parse(s)
	if err != nil {
		return account.Zero, status.Error(codes.InvalidArgument, "bad "+field+": "+err.Error())
	}
	return a, nil
}

func parseAsset(s string) (assets.Asset, error) {
	a, err := assets.ParseAsset(s)
	if err != nil {
		return assets.Native, status.Error(codes.InvalidArgument, "bad asset: "+err.Error())
	}
	return a, nil
}

// project resolves a project id and takes its serialization lock. The
// returned unlock must be called once the engine call has finished.
func (s *Server) project(idStr string) (*ledger.Project, func(), error) {
	id, err := parseAccount("projectID", idStr)
	if err != nil {
		return nil, nil, err
	}
	p, ok := s.registry.Project(id)
	if !ok {
		return nil, nil, status.Error(codes.NotFound, "project "+idStr+" not found")
	}

	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = new(sync.Mutex)
		s.locks[id] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return p, lock.Unlock, nil
}

func (s *Server) CreateProject(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.CreateProjectRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	creator, err := parseAccount("creator", req.Creator)
	if err != nil {
		return nil, err
	}
	signer, err := parseAccount("signer", req.Signer)
	if err != nil {
		return nil, err
	}
	admins := make([]account.Account, len(req.Admins))
	for i, a := range req.Admins {
		if admins[i], err = parseAccount("admin", a); err != nil {
			return nil, err
		}
	}
	p, err := s.registry.CreateProject(creator, req.Name, signer, admins, req.Threshold)
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info().Str("project", p.ID().String()).Str("name", req.Name).Msg("project created")
	return encode(model.CreateProjectResponse{ProjectID: p.ID().String()})
}

func (s *Server) ProjectInfo(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.ProjectInfoRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, unlock, err := s.project(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	info, err := p.Info()
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(model.ProjectInfoFrom(info))
}

func (s *Server) Balances(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.BalancesRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, unlock, err := s.project(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	assetList := make([]assets.Asset, len(req.Assets))
	for i, a := range req.Assets {
		if assetList[i], err = parseAsset(a); err != nil {
			return nil, err
		}
	}
	pairs, err := p.BalancesBatch(assetList)
	if err != nil {
		return nil, toStatus(err)
	}
	out := model.BalancesResponse{Balances: make([]model.AssetBalance, len(pairs))}
	for i, pair := range pairs {
		out.Balances[i] = model.AssetBalance{
			Asset:      assetList[i].String(),
			Payment:    model.FormatAmount(pair.Payment),
			Withdrawal: model.FormatAmount(pair.Withdrawal),
		}
	}
	return encode(out)
}

func (s *Server) Pay(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.PayRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, unlock, err := s.project(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	payer, err := parseAccount("payer", req.Payer)
	if err != nil {
		return nil, err
	}
	asset, err := parseAsset(req.Asset)
	if err != nil {
		return nil, err
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	pr := ledger.PaymentRequest{Asset: asset, Amount: amount, SerialNo: req.SerialNo, Deadline: req.Deadline}
	if err := p.Pay(payer, pr, req.Signature); err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info().
		Str("project", req.ProjectID).
		Str("payer", req.Payer).
		Str("amount", req.Amount).
		Str("serial", req.SerialNo).
		Msg("payment settled")
	return encode(model.Empty{})
}

func (s *Server) Withdraw(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.WithdrawRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, unlock, err := s.project(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	caller, err := parseAccount("caller", req.Caller)
	if err != nil {
		return nil, err
	}
	user, err := parseAccount("user", req.User)
	if err != nil {
		return nil, err
	}
	asset, err := parseAsset(req.Asset)
	if err != nil {
		return nil, err
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	wr := ledger.WithdrawalRequest{Asset: asset, Amount: amount, SerialNo: req.SerialNo, Deadline: req.Deadline, User: user}
	if err := p.Withdraw(caller, wr, req.Signature); err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info().
		Str("project", req.ProjectID).
		Str("user", req.User).
		Str("amount", req.Amount).
		Str("serial", req.SerialNo).
		Msg("withdrawal settled")
	return encode(model.Empty{})
}

func (s *Server) Deposit(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.DepositRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, unlock, err := s.project(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	caller, err := parseAccount("caller", req.Caller)
	if err != nil {
		return nil, err
	}
	asset, err := parseAsset(req.Asset)
	if err != nil {
		return nil, err
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := p.DepositToWithdrawalPool(caller, asset, amount); err != nil {
		return nil, toStatus(err)
	}
	return encode(model.Empty{})
}

func (s *Server) SetName(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.SetNameRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, unlock, err := s.project(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	caller, err := parseAccount("caller", req.Caller)
	if err != nil {
		return nil, err
	}
	if err := p.SetName(caller, req.Name); err != nil {
		return nil, toStatus(err)
	}
	return encode(model.Empty{})
}

func (s *Server) CreateProposal(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.CreateProposalRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, unlock, err := s.project(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	proposer, err := parseAccount("proposer", req.Proposer)
	if err != nil {
		return nil, err
	}
	op, err := req.Op.ToEngine()
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	id, err := p.CreateProposal(proposer, op, req.Deadline)
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info().
		Str("project", req.ProjectID).
		Uint64("proposal", id).
		Str("op", req.Op.Kind).
		Msg("proposal created")
	return encode(model.CreateProposalResponse{ProposalID: id})
}

func (s *Server) ConfirmProposal(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return s.proposalAction(ctx, in, "proposal confirmed", (*ledger.Project).ConfirmProposal)
}

func (s *Server) RevokeConfirmation(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return s.proposalAction(ctx, in, "confirmation revoked", (*ledger.Project).RevokeConfirmation)
}

func (s *Server) CancelProposal(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return s.proposalAction(ctx, in, "proposal cancelled", (*ledger.Project).CancelProposal)
}

func (s *Server) ExecuteProposal(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return s.proposalAction(ctx, in, "proposal executed", (*ledger.Project).ExecuteProposal)
}

func (s *Server) proposalAction(ctx context.Context, in *wrapperspb.BytesValue, msg string, call func(*ledger.Project, account.Account, uint64) error) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.ProposalActionRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, unlock, err := s.project(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	caller, err := parseAccount("caller", req.Caller)
	if err != nil {
		return nil, err
	}
	if err := call(p, caller, req.ProposalID); err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info().
		Str("project", req.ProjectID).
		Uint64("proposal", req.ProposalID).
		Str("caller", req.Caller).
		Msg(msg)
	return encode(model.Empty{})
}

func (s *Server) GetProposal(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.GetProposalRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, unlock, err := s.project(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	info, err := p.Proposal(req.ProposalID)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(model.ProposalInfoFrom(info))
}

func (s *Server) ListProposals(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.ListProposalsRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, unlock, err := s.project(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	infos, err := p.Proposals(req.Offset, req.Limit)
	if err != nil {
		return nil, toStatus(err)
	}
	out := model.ListProposalsResponse{Proposals: make([]model.ProposalInfo, len(infos))}
	for i, info := range infos {
		out.Proposals[i] = model.ProposalInfoFrom(info)
	}
	return encode(out)
}

func (s *Server) IsSerialUsed(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	var req model.SerialUsedRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	p, unlock, err := s.project(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	used, err := p.SerialUsed(req.SerialNo)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(model.SerialUsedResponse{Used: used})
}
