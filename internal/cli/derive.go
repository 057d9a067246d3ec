package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vietddude/btcprobe/internal/control"
	"github.com/vietddude/btcprobe/internal/core/address"
	"github.com/vietddude/btcprobe/internal/core/config"
	"github.com/vietddude/btcprobe/internal/core/keys"
	"github.com/vietddude/btcprobe/internal/probe/report"
)

var qrDir string

var deriveCmd = &cobra.Command{
	Use:   "derive [wif]",
	Short: "Show the compressed key and addresses of a WIF private key",
	Long: `Show the compressed key and addresses of a WIF private key.
Without an argument the key is read from the terminal without echo.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDerive,
}

func init() {
	deriveCmd.Flags().StringVar(&qrDir, "qr", "", "write a PNG QR code per address into this directory")
	rootCmd.AddCommand(deriveCmd)
}

func runDerive(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	var wif string
	if len(args) == 1 {
		wif = args[0]
	} else {
		var err error
		if wif, err = promptWIF(); err != nil {
			slog.Error("Failed to read private key", "error", err)
			os.Exit(1)
		}
	}

	km, err := keys.Normalize(wif)
	if err != nil {
		slog.Error("Invalid private key", "wif", keys.Preview(wif, 10), "error", err)
		os.Exit(1)
	}

	var enc address.Bech32Encoder = address.LocalBech32{}
	if cfg.Scan.Bech32 == config.Bech32Remote {
		client, adapter := control.NewExplorer(cfg.Explorer)
		defer func() {
			_ = client.Close()
		}()
		enc = adapter
	}

	addrs := address.NewDeriver(enc).DeriveAll(context.Background(), km.PublicKey)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "FIELD\tVALUE")
	_, _ = fmt.Fprintf(w, "%s\t%s\n", "Compressed WIF", km.CompressedWIF)
	_, _ = fmt.Fprintf(w, "%s\t%s\n", "Public key", km.PublicKeyHex)
	for _, a := range addrs {
		value := a.Value
		if a.Err != nil {
			value = fmt.Sprintf("%s (%v)", value, a.Err)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", a.Type.Label(), value)
	}
	_ = w.Flush()

	if qrDir != "" {
		written, err := report.WriteQRCodes(qrDir, addrs)
		if err != nil {
			slog.Error("Failed to write QR codes", "error", err)
			os.Exit(1)
		}
		slog.Info("QR codes written", "dir", qrDir, "count", len(written))
	}
}

// promptWIF reads a private key from the terminal without echoing it.
func promptWIF() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal: pass the key as an argument")
	}
	fmt.Fprint(os.Stderr, "Enter WIF private key: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	wif := strings.TrimSpace(string(raw))
	clear(raw)
	if wif == "" {
		return "", fmt.Errorf("private key cannot be empty")
	}
	return wif, nil
}
