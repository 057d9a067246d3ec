package domain

import "errors"

var (
	// ErrInvalidKey is returned when a WIF string cannot be decoded.
	ErrInvalidKey = errors.New("invalid private key")

	// ErrInvalidPublicKey is returned when a public key is not a 33-byte compressed point.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrAddressNotFound means the explorer has never seen the address.
	ErrAddressNotFound = errors.New("address not found")

	// ErrBech32Unavailable is returned when no bech32 encoding could be obtained.
	ErrBech32Unavailable = errors.New("bech32 encoding unavailable")
)
