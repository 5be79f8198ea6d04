package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	pb "github.com/iho/ledgercore/internal/adapter/grpc/pb/ledger/v1"
)

var (
	grpcAddr string
	baseURL  string
	timeout  time.Duration
)

// dialLedger opens a client to the gRPC server. Replaced in tests.
var dialLedger = func(addr string) (pb.LedgerServiceClient, func(), error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return pb.NewLedgerServiceClient(conn), func() { _ = conn.Close() }, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ledger-cli",
		Short:         "Ledger CLI tool",
		Long:          `A command line interface for the ledger gRPC and HTTP APIs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&grpcAddr, "addr", "localhost:9090", "Address of the ledger gRPC server")
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger HTTP API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd(), txCmd(), ledgerCmd())
	return rootCmd
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var userID, currency string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Open a zero-balance account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c pb.LedgerServiceClient) error {
				resp, err := c.CreateAccount(ctx, &pb.CreateAccountRequest{UserID: userID, Currency: currency})
				if err != nil {
					return rpcError(err)
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	createCmd.Flags().StringVar(&userID, "user", "", "Owner user id (UUID)")
	createCmd.Flags().StringVar(&currency, "currency", "USD", "ISO currency code")
	_ = createCmd.MarkFlagRequired("user")

	balanceCmd := &cobra.Command{
		Use:   "balance ID",
		Short: "Show the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c pb.LedgerServiceClient) error {
				resp, err := c.GetBalance(ctx, &pb.GetBalanceRequest{AccountID: args[0]})
				if err != nil {
					return rpcError(err)
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}

	cmd.AddCommand(createCmd, balanceCmd)
	return cmd
}

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction operations",
	}

	var req pb.PostTransactionRequest
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Post a transfer, deposit or withdrawal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c pb.LedgerServiceClient) error {
				resp, err := c.PostTransaction(ctx, &req)
				if err != nil {
					return rpcError(err)
				}
				return printJSON(cmd.OutOrStdout(), resp)
			})
		},
	}
	postCmd.Flags().StringVar(&req.ReferenceID, "ref", "", "Client reference id")
	postCmd.Flags().StringVar(&req.Type, "type", "TRANSFER", "TRANSFER, DEPOSIT or WITHDRAWAL")
	postCmd.Flags().StringVar(&req.Amount, "amount", "", "Decimal amount")
	postCmd.Flags().StringVar(&req.Currency, "currency", "USD", "ISO currency code")
	postCmd.Flags().StringVar(&req.FromAccountID, "from", "", "Source account id")
	postCmd.Flags().StringVar(&req.ToAccountID, "to", "", "Destination account id")
	postCmd.Flags().StringVar(&req.Metadata, "metadata", "", "Free-form metadata")
	_ = postCmd.MarkFlagRequired("ref")
	_ = postCmd.MarkFlagRequired("amount")

	var page, size int32
	historyCmd := &cobra.Command{
		Use:   "history ID",
		Short: "List the entries of an account, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c pb.LedgerServiceClient) error {
				resp, err := c.GetTransactionHistory(ctx, &pb.GetTransactionHistoryRequest{
					AccountID: args[0],
					Page:      page,
					Size:      size,
				})
				if err != nil {
					return rpcError(err)
				}
				return printHistory(cmd.OutOrStdout(), resp)
			})
		},
	}
	historyCmd.Flags().Int32Var(&page, "page", 0, "Zero-based page number")
	historyCmd.Flags().Int32Var(&size, "size", 20, "Page size (max 100)")

	cmd.AddCommand(postCmd, historyCmd)
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkConsistency(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}

func withClient(cmd *cobra.Command, fn func(ctx context.Context, c pb.LedgerServiceClient) error) error {
	client, closeFn, err := dialLedger(grpcAddr)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(commandContext(cmd), timeout)
	defer cancel()
	return fn(ctx, client)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// rpcError renders a gRPC status as "Code: message".
func rpcError(err error) error {
	if st, ok := status.FromError(err); ok {
		return fmt.Errorf("%s: %s", st.Code(), st.Message())
	}
	return err
}

func checkConsistency(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/v1/ledger/consistency", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result struct {
		Status              string   `json:"status"`
		Consistent          bool     `json:"consistent"`
		UnbalancedTransfers []string `json:"unbalanced_transfers"`
		Drifts              []struct {
			AccountID string `json:"account_id"`
			Balance   string `json:"balance"`
			EntrySum  string `json:"entry_sum"`
		} `json:"drifts"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("consistency check FAILED (status %d): %s", resp.StatusCode, string(body))
	}

	if resp.StatusCode == http.StatusOK && result.Consistent {
		fmt.Fprintf(out, "Consistency check PASSED\n")
		fmt.Fprintf(out, "Status: %s\n", result.Status)
		return nil
	}

	fmt.Fprintf(out, "Consistency check FAILED (status %d)\n", resp.StatusCode)
	for _, d := range result.Drifts {
		fmt.Fprintf(out, "  account %s: balance %s, entries %s\n", d.AccountID, d.Balance, d.EntrySum)
	}
	for _, id := range result.UnbalancedTransfers {
		fmt.Fprintf(out, "  unbalanced transfer %s\n", id)
	}
	return fmt.Errorf("ledger is %s", result.Status)
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func printHistory(out io.Writer, resp *pb.GetTransactionHistoryResponse) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tREFERENCE\tTYPE\tDIRECTION\tAMOUNT\tBALANCE\tSTATUS")
	for _, item := range resp.Transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			item.CreatedAt,
			truncate(item.ReferenceID, 20),
			item.Type,
			item.Direction,
			item.Amount,
			item.BalanceAfter,
			item.Status,
		)
	}
	return w.Flush()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
