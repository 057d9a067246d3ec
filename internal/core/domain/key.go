package domain

// KeyMaterial is a normalized private key and its compressed public key.
type KeyMaterial struct {
	CompressedWIF string
	PublicKey     []byte // 33-byte compressed point
	PublicKeyHex  string
}
