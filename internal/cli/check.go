package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/btcprobe/internal/control"
	"github.com/vietddude/btcprobe/internal/core/address"
	"github.com/vietddude/btcprobe/internal/core/domain"
	"github.com/vietddude/btcprobe/internal/probe/checker"
	"github.com/vietddude/btcprobe/internal/probe/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [address]",
	Short: "Look up the confirmed balance of a single mainnet address",
	Args:  cobra.ExactArgs(1),
	Run:   runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	addr, err := address.Classify(args[0])
	if err != nil {
		slog.Error("Invalid address", "error", err)
		os.Exit(1)
	}

	client, adapter := control.NewExplorer(cfg.Explorer)
	defer func() {
		_ = client.Close()
	}()

	bal := checker.New(adapter, 0).Check(context.Background(), addr)
	report.NewReporter(os.Stdout, cfg.Scan.SatoshisPerBTC).Balance(bal)

	if bal.Status == domain.BalanceFailed {
		slog.Error("Balance lookup failed", "address", addr.Value, "error", bal.Err)
		os.Exit(1)
	}
}
