package ledgerv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "ledger.v1.LedgerService"

// Full method names.
const (
	LedgerService_CreateAccount_FullMethodName         = "/ledger.v1.LedgerService/CreateAccount"
	LedgerService_GetBalance_FullMethodName            = "/ledger.v1.LedgerService/GetBalance"
	LedgerService_PostTransaction_FullMethodName       = "/ledger.v1.LedgerService/PostTransaction"
	LedgerService_GetTransactionHistory_FullMethodName = "/ledger.v1.LedgerService/GetTransactionHistory"
)

// LedgerServiceServer is the server API for LedgerService.
type LedgerServiceServer interface {
	CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	PostTransaction(context.Context, *PostTransactionRequest) (*PostTransactionResponse, error)
	GetTransactionHistory(context.Context, *GetTransactionHistoryRequest) (*GetTransactionHistoryResponse, error)
}

// UnimplementedLedgerServiceServer answers Unimplemented for every method.
type UnimplementedLedgerServiceServer struct{}

func (UnimplementedLedgerServiceServer) CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAccount not implemented")
}

func (UnimplementedLedgerServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBalance not implemented")
}

func (UnimplementedLedgerServiceServer) PostTransaction(context.Context, *PostTransactionRequest) (*PostTransactionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PostTransaction not implemented")
}

func (UnimplementedLedgerServiceServer) GetTransactionHistory(context.Context, *GetTransactionHistoryRequest) (*GetTransactionHistoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTransactionHistory not implemented")
}

// RegisterLedgerServiceServer registers srv on s.
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(LedgerServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LedgerService_ServiceDesc is the grpc.ServiceDesc for LedgerService.
var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateAccount",
			Handler:    unaryHandler(LedgerService_CreateAccount_FullMethodName, LedgerServiceServer.CreateAccount),
		},
		{
			MethodName: "GetBalance",
			Handler:    unaryHandler(LedgerService_GetBalance_FullMethodName, LedgerServiceServer.GetBalance),
		},
		{
			MethodName: "PostTransaction",
			Handler:    unaryHandler(LedgerService_PostTransaction_FullMethodName, LedgerServiceServer.PostTransaction),
		},
		{
			MethodName: "GetTransactionHistory",
			Handler:    unaryHandler(LedgerService_GetTransactionHistory_FullMethodName, LedgerServiceServer.GetTransactionHistory),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger/v1/ledger.proto",
}

// LedgerServiceClient is the client API for LedgerService.
type LedgerServiceClient interface {
	CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
	PostTransaction(ctx context.Context, in *PostTransactionRequest, opts ...grpc.CallOption) (*PostTransactionResponse, error)
	GetTransactionHistory(ctx context.Context, in *GetTransactionHistoryRequest, opts ...grpc.CallOption) (*GetTransactionHistoryResponse, error)
}

type ledgerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerServiceClient returns a client that always speaks the JSON codec.
func NewLedgerServiceClient(cc grpc.ClientConnInterface) LedgerServiceClient {
	return &ledgerServiceClient{cc: cc}
}

func (c *ledgerServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *ledgerServiceClient) CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error) {
	out := new(CreateAccountResponse)
	if err := c.invoke(ctx, LedgerService_CreateAccount_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	out := new(GetBalanceResponse)
	if err := c.invoke(ctx, LedgerService_GetBalance_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) PostTransaction(ctx context.Context, in *PostTransactionRequest, opts ...grpc.CallOption) (*PostTransactionResponse, error) {
	out := new(PostTransactionResponse)
	if err := c.invoke(ctx, LedgerService_PostTransaction_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) GetTransactionHistory(ctx context.Context, in *GetTransactionHistoryRequest, opts ...grpc.CallOption) (*GetTransactionHistoryResponse, error) {
	out := new(GetTransactionHistoryResponse)
	if err := c.invoke(ctx, LedgerService_GetTransactionHistory_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
