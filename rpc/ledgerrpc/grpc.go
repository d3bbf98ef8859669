package ledgerrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "paythefly.ledger.v1.Ledger"

// LedgerServer is the server API for the Ledger gRPC service.
//
// Every method carries a JSON document (see the model package for the
// request and response shapes) inside a protobuf BytesValue. We intentionally
// use well-known wrapper types so this package does not require a
// protoc/codegen toolchain.
//
// Proto definition: ledger.proto.
type LedgerServer interface {
	CreateProject(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	ProjectInfo(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Balances(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Pay(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Withdraw(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Deposit(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	SetName(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	CreateProposal(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	ConfirmProposal(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	RevokeConfirmation(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	CancelProposal(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	ExecuteProposal(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	GetProposal(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	ListProposals(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	IsSerialUsed(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

// UnimplementedLedgerServer can be embedded to have forward compatible implementations.
type UnimplementedLedgerServer struct{}

func (UnimplementedLedgerServer) CreateProject(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProject not implemented")
}
func (UnimplementedLedgerServer) ProjectInfo(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ProjectInfo not implemented")
}
func (UnimplementedLedgerServer) Balances(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Balances not implemented")
}
func (UnimplementedLedgerServer) Pay(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Pay not implemented")
}
func (UnimplementedLedgerServer) Withdraw(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Withdraw not implemented")
}
func (UnimplementedLedgerServer) Deposit(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Deposit not implemented")
}
func (UnimplementedLedgerServer) SetName(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method SetName not implemented")
}
func (UnimplementedLedgerServer) CreateProposal(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProposal not implemented")
}
func (UnimplementedLedgerServer) ConfirmProposal(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ConfirmProposal not implemented")
}
func (UnimplementedLedgerServer) RevokeConfirmation(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method RevokeConfirmation not implemented")
}
func (UnimplementedLedgerServer) CancelProposal(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelProposal not implemented")
}
func (UnimplementedLedgerServer) ExecuteProposal(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ExecuteProposal not implemented")
}
func (UnimplementedLedgerServer) GetProposal(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProposal not implemented")
}
func (UnimplementedLedgerServer) ListProposals(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProposals not implemented")
}
func (UnimplementedLedgerServer) IsSerialUsed(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method IsSerialUsed not implemented")
}

// RegisterLedgerServer registers the Ledger service on a gRPC server.
func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&Ledger_ServiceDesc, srv)
}

// LedgerClient is the client API for the Ledger gRPC service. Most callers
// want the typed Client instead.
type LedgerClient interface {
	CreateProject(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	ProjectInfo(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Balances(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Pay(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Withdraw(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Deposit(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	SetName(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	CreateProposal(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	ConfirmProposal(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	RevokeConfirmation(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	CancelProposal(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	ExecuteProposal(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	GetProposal(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	ListProposals(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	IsSerialUsed(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type ledgerClient struct{ cc grpc.ClientConnInterface }

func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient { return &ledgerClient{cc: cc} }

func (c *ledgerClient) invoke(ctx context.Context, method string, in *wrapperspb.BytesValue, opts []grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) CreateProject(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "CreateProject", in, opts)
}

func (c *ledgerClient) ProjectInfo(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "ProjectInfo", in, opts)
}

func (c *ledgerClient) Balances(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "Balances", in, opts)
}

func (c *ledgerClient) Pay(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "Pay", in, opts)
}

func (c *ledgerClient) Withdraw(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "Withdraw", in, opts)
}

func (c *ledgerClient) Deposit(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "Deposit", in, opts)
}

func (c *ledgerClient) SetName(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "SetName", in, opts)
}

func (c *ledgerClient) CreateProposal(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "CreateProposal", in, opts)
}

func (c *ledgerClient) ConfirmProposal(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "ConfirmProposal", in, opts)
}

func (c *ledgerClient) RevokeConfirmation(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "RevokeConfirmation", in, opts)
}

func (c *ledgerClient) CancelProposal(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "CancelProposal", in, opts)
}

func (c *ledgerClient) ExecuteProposal(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "ExecuteProposal", in, opts)
}

func (c *ledgerClient) GetProposal(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "GetProposal", in, opts)
}

func (c *ledgerClient) ListProposals(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "ListProposals", in, opts)
}

func (c *ledgerClient) IsSerialUsed(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return c.invoke(ctx, "IsSerialUsed", in, opts)
}

// unaryHandler builds a grpc.MethodDesc handler for one BytesValue unary
// method. All Ledger methods share this wire shape.
func unaryHandler(method string, call func(LedgerServer, context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	full := "/" + ServiceName + "/" + method
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(wrapperspb.BytesValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(LedgerServer), ctx, req.(*wrapperspb.BytesValue))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Ledger_ServiceDesc is the grpc.ServiceDesc for the Ledger service.
var Ledger_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateProject", Handler: unaryHandler("CreateProject", LedgerServer.CreateProject)},
		{MethodName: "ProjectInfo", Handler: unaryHandler("ProjectInfo", LedgerServer.ProjectInfo)},
		{MethodName: "Balances", Handler: unaryHandler("Balances", LedgerServer.Balances)},
		{MethodName: "Pay", Handler: unaryHandler("Pay", LedgerServer.Pay)},
		{MethodName: "Withdraw", Handler: unaryHandler("Withdraw", LedgerServer.Withdraw)},
		{MethodName: "Deposit", Handler: unaryHandler("Deposit", LedgerServer.Deposit)},
		{MethodName: "SetName", Handler: unaryHandler("SetName", LedgerServer.SetName)},
		{MethodName: "CreateProposal", Handler: unaryHandler("CreateProposal", LedgerServer.CreateProposal)},
		{MethodName: "ConfirmProposal", Handler: unaryHandler("ConfirmProposal", LedgerServer.ConfirmProposal)},
		{MethodName: "RevokeConfirmation", Handler: unaryHandler("RevokeConfirmation", LedgerServer.RevokeConfirmation)},
		{MethodName: "CancelProposal", Handler: unaryHandler("CancelProposal", LedgerServer.CancelProposal)},
		{MethodName: "ExecuteProposal", Handler: unaryHandler("ExecuteProposal", LedgerServer.ExecuteProposal)},
		{MethodName: "GetProposal", Handler: unaryHandler("GetProposal", LedgerServer.GetProposal)},
		{MethodName: "ListProposals", Handler: unaryHandler("ListProposals", LedgerServer.ListProposals)},
		{MethodName: "IsSerialUsed", Handler: unaryHandler("IsSerialUsed", LedgerServer.IsSerialUsed)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger.proto",
}
