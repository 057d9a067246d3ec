// Package keys generates and normalizes Bitcoin mainnet private keys.
package keys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/vietddude/btcprobe/internal/core/domain"
)

// Generator produces random secp256k1 private keys.
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator reading from r.
// A nil reader falls back to crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Generate returns a fresh private key encoded as an uncompressed mainnet WIF (5...).
func (g *Generator) Generate() (string, error) {
	var buf [32]byte
	for {
		if _, err := io.ReadFull(g.rand, buf[:]); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}

		// Draw again when the scalar is zero or not below the curve order
		if !validScalar(&buf) {
			continue
		}

		privKey, _ := btcec.PrivKeyFromBytes(buf[:])
		wif, err := btcutil.NewWIF(privKey, &chaincfg.MainNetParams, false)
		if err != nil {
			return "", fmt.Errorf("encode wif: %w", err)
		}
		return wif.String(), nil
	}
}

// Normalize decodes a WIF of either compression form, re-encodes it as a
// compressed WIF and derives the compressed public key.
func Normalize(wif string) (*domain.KeyMaterial, error) {
	decoded, err := btcutil.DecodeWIF(wif)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKey, err)
	}
	if !decoded.IsForNet(&chaincfg.MainNetParams) {
		return nil, fmt.Errorf("%w: not a mainnet key", domain.ErrInvalidKey)
	}

	// DecodeWIF reduces the scalar mod N, so range-check the encoded bytes
	payload, _, err := base58.CheckDecode(wif)
	if err != nil || len(payload) < btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("%w: malformed payload", domain.ErrInvalidKey)
	}
	var raw [btcec.PrivKeyBytesLen]byte
	copy(raw[:], payload[:btcec.PrivKeyBytesLen])
	if !validScalar(&raw) {
		return nil, fmt.Errorf("%w: scalar is zero or not below the curve order", domain.ErrInvalidKey)
	}

	compressed, err := btcutil.NewWIF(decoded.PrivKey, &chaincfg.MainNetParams, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKey, err)
	}

	pubKey := decoded.PrivKey.PubKey().SerializeCompressed()
	return &domain.KeyMaterial{
		CompressedWIF: compressed.String(),
		PublicKey:     pubKey,
		PublicKeyHex:  hex.EncodeToString(pubKey),
	}, nil
}

// validScalar reports whether b encodes a private key in [1, N-1].
func validScalar(b *[32]byte) bool {
	var scalar btcec.ModNScalar
	overflow := scalar.SetBytes(b)
	return overflow == 0 && !scalar.IsZero()
}

// Preview returns the first n characters of a WIF for error messages.
func Preview(wif string, n int) string {
	if len(wif) <= n {
		return wif
	}
	return wif[:n] + "..."
}
