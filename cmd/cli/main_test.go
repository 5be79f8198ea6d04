package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/iho/ledgercore/internal/adapter/grpc/pb/ledger/v1"
)

type stubLedgerClient struct {
	pb.LedgerServiceClient

	posted  *pb.PostTransactionRequest
	balance func(*pb.GetBalanceRequest) (*pb.GetBalanceResponse, error)
}

func (s *stubLedgerClient) GetBalance(_ context.Context, in *pb.GetBalanceRequest, _ ...grpc.CallOption) (*pb.GetBalanceResponse, error) {
	return s.balance(in)
}

func (s *stubLedgerClient) PostTransaction(_ context.Context, in *pb.PostTransactionRequest, _ ...grpc.CallOption) (*pb.PostTransactionResponse, error) {
	s.posted = in
	return &pb.PostTransactionResponse{TransactionID: "tx-1", ReferenceID: in.ReferenceID, Status: "POSTED"}, nil
}

func (s *stubLedgerClient) GetTransactionHistory(_ context.Context, in *pb.GetTransactionHistoryRequest, _ ...grpc.CallOption) (*pb.GetTransactionHistoryResponse, error) {
	return &pb.GetTransactionHistoryResponse{
		AccountID: in.AccountID,
		Transactions: []*pb.TransactionHistoryItem{
			{ReferenceID: "a-very-long-reference-identifier", Type: "DEPOSIT", Direction: "CREDIT", Amount: "5.0000", BalanceAfter: "5.0000", Status: "POSTED"},
		},
	}, nil
}

func useStubClient(t *testing.T, stub *stubLedgerClient) {
	t.Helper()
	orig := dialLedger
	dialLedger = func(string) (pb.LedgerServiceClient, func(), error) {
		return stub, func() {}, nil
	}
	t.Cleanup(func() { dialLedger = orig })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}
	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	if err := printJSON(&out, struct {
		A int `json:"a"`
	}{A: 1}); err != nil {
		t.Fatalf("printJSON: %v", err)
	}

	expected := "{\n  \"a\": 1\n}\n"
	if out.String() != expected {
		t.Fatalf("unexpected json output:\n%s", out.String())
	}
}

func TestTxPostCmd(t *testing.T) {
	stub := &stubLedgerClient{}
	useStubClient(t, stub)

	out, err := execute(t, "tx", "post", "--ref", "r-1", "--type", "DEPOSIT", "--amount", "12.5", "--to", "acc-2")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if stub.posted.ReferenceID != "r-1" || stub.posted.Type != "DEPOSIT" || stub.posted.ToAccountID != "acc-2" || stub.posted.Currency != "USD" {
		t.Fatalf("unexpected request %+v", stub.posted)
	}
	if !strings.Contains(out, `"transaction_id": "tx-1"`) {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestAccountBalanceCmdRendersStatus(t *testing.T) {
	useStubClient(t, &stubLedgerClient{
		balance: func(*pb.GetBalanceRequest) (*pb.GetBalanceResponse, error) {
			return nil, status.Error(codes.NotFound, "account not found")
		},
	})

	_, err := execute(t, "account", "balance", "acc-1")
	if err == nil || err.Error() != "NotFound: account not found" {
		t.Fatalf("expected rendered status, got %v", err)
	}
}

func TestTxHistoryCmd(t *testing.T) {
	useStubClient(t, &stubLedgerClient{})

	out, err := execute(t, "tx", "history", "acc-1", "--size", "5")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "REFERENCE") || !strings.Contains(out, "a-very-long-refer...") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestLedgerConsistencyCmd(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		want    string
	}{
		{
			name:   "consistent",
			status: http.StatusOK,
			body:   `{"status":"consistent","consistent":true,"drifts":[],"unbalanced_transfers":[]}`,
			want:   "Consistency check PASSED",
		},
		{
			name:    "inconsistent",
			status:  http.StatusConflict,
			body:    `{"status":"inconsistent","consistent":false,"drifts":[{"account_id":"acc-1","balance":"1.0000","entry_sum":"2.0000"}],"unbalanced_transfers":["tx-9"]}`,
			wantErr: true,
			want:    "unbalanced transfer tx-9",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/ledger/consistency" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			out, err := execute(t, "--url", srv.URL, "ledger", "consistency")
			if (err != nil) != tc.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if !strings.Contains(out, tc.want) {
				t.Fatalf("expected %q in output:\n%s", tc.want, out)
			}
		})
	}
}
