package server

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/iho/ledgercore/internal/adapter/grpc/converter"
	grpcErrors "github.com/iho/ledgercore/internal/adapter/grpc/errors"
	"github.com/iho/ledgercore/internal/adapter/grpc/middleware"
	pb "github.com/iho/ledgercore/internal/adapter/grpc/pb/ledger/v1"
	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/infrastructure/metrics"
	"github.com/iho/ledgercore/internal/usecase"
)

// AccountService is the account surface the server needs.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetBalance(ctx context.Context, accountID string) (*domain.Account, error)
}

// PostingService posts transactions.
type PostingService interface {
	PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*usecase.PostTransactionResult, error)
}

// HistoryService pages through account history.
type HistoryService interface {
	GetTransactionHistory(ctx context.Context, input usecase.HistoryInput) (*usecase.HistoryPage, error)
}

// LedgerServer implements the gRPC LedgerService
type LedgerServer struct {
	pb.UnimplementedLedgerServiceServer
	accounts AccountService
	posting  PostingService
	history  HistoryService
	logger   zerolog.Logger
}

// NewLedgerServer creates a new LedgerServer
func NewLedgerServer(accounts AccountService, posting PostingService, history HistoryService, logger zerolog.Logger) *LedgerServer {
	return &LedgerServer{
		accounts: accounts,
		posting:  posting,
		history:  history,
		logger:   logger,
	}
}

// NewGRPCServer builds a grpc.Server with the ledger service and the standard interceptor chain.
func NewGRPCServer(ledger pb.LedgerServiceServer, m *metrics.Metrics, logger zerolog.Logger, opts ...grpc.ServerOption) *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{middleware.RecoveryInterceptor(logger)}
	if m != nil {
		interceptors = append(interceptors, middleware.MetricsInterceptor(m))
	}
	interceptors = append(interceptors, middleware.LoggingInterceptor(logger))

	opts = append(opts, grpc.ChainUnaryInterceptor(interceptors...))
	s := grpc.NewServer(opts...)
	pb.RegisterLedgerServiceServer(s, ledger)
	return s
}

// CreateAccount opens a new zero-balance account
func (s *LedgerServer) CreateAccount(ctx context.Context, req *pb.CreateAccountRequest) (*pb.CreateAccountResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	account, err := s.accounts.CreateAccount(ctx, usecase.CreateAccountInput{
		UserID:   req.UserID,
		Currency: req.Currency,
	})
	if err != nil {
		return nil, s.mapError("CreateAccount", err)
	}

	return converter.AccountToCreateResponse(account), nil
}

// GetBalance returns the current balance of an account
func (s *LedgerServer) GetBalance(ctx context.Context, req *pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	account, err := s.accounts.GetBalance(ctx, req.AccountID)
	if err != nil {
		return nil, s.mapError("GetBalance", err)
	}

	return converter.AccountToBalanceResponse(account), nil
}

// PostTransaction posts a transfer, deposit or withdrawal
func (s *LedgerServer) PostTransaction(ctx context.Context, req *pb.PostTransactionRequest) (*pb.PostTransactionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := s.posting.PostTransaction(ctx, converter.PostRequestToInput(req))
	if err != nil {
		return nil, s.mapError("PostTransaction", err)
	}

	return converter.PostResultToPb(result), nil
}

// GetTransactionHistory lists an account's entries, newest first
func (s *LedgerServer) GetTransactionHistory(ctx context.Context, req *pb.GetTransactionHistoryRequest) (*pb.GetTransactionHistoryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	page, err := s.history.GetTransactionHistory(ctx, usecase.HistoryInput{
		AccountID: req.AccountID,
		Page:      int(req.Page),
		Size:      int(req.Size),
	})
	if err != nil {
		return nil, s.mapError("GetTransactionHistory", err)
	}

	return converter.HistoryPageToPb(page), nil
}

func (s *LedgerServer) mapError(method string, err error) error {
	mapped := grpcErrors.MapDomainError(err)
	if status.Code(mapped) == codes.Internal {
		s.logger.Error().Err(err).Str("method", method).Msg("internal error")
	}
	return mapped
}
