package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skip2/go-qrcode"

	"github.com/vietddude/btcprobe/internal/core/domain"
)

const qrSize = 256

// WriteQRCodes saves one PNG QR code per derivable address into dir,
// named after the address type. Sentinel addresses are skipped.
func WriteQRCodes(dir string, addrs []domain.Address) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create qr dir: %w", err)
	}

	var written []string
	for _, a := range addrs {
		if !a.Lookupable() {
			continue
		}
		path := filepath.Join(dir, string(a.Type)+".png")
		if err := qrcode.WriteFile(a.Value, qrcode.Medium, qrSize, path); err != nil {
			return written, fmt.Errorf("failed to create QR code for %s: %w", a.Value, err)
		}
		written = append(written, path)
	}
	return written, nil
}
