package keys

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"

	"solana-wallet-server-go/pkg/codec"
)

const (
	PublicKeySize = ed25519.PublicKeySize  // 32
	SecretKeySize = ed25519.PrivateKeySize // 64: seed || public key
	SignatureSize = ed25519.SignatureSize  // 64
)

var (
	// ErrInvalidEncoding is the codec error, re-exported so callers only
	// need this package to classify parse failures.
	ErrInvalidEncoding = codec.ErrInvalidEncoding

	ErrInvalidKeyLength       = errors.New("invalid key length")
	ErrInvalidKeyMaterial     = errors.New("invalid key material")
	ErrInvalidSignatureLength = errors.New("invalid signature length")
)

// Keypair is an Ed25519 keypair in Solana's layout. Secret holds the 32-byte
// seed followed by the 32-byte public key.
type Keypair struct {
	Public solana.PublicKey
	Secret solana.PrivateKey
}

// PublicString returns the base58 address of the keypair
func (k Keypair) PublicString() string {
	return k.Public.String()
}

// SecretString returns the base58 encoding of the 64-byte secret
func (k Keypair) SecretString() string {
	return codec.EncodeBase58(k.Secret)
}

// ParsePublic decodes a base58 address into a 32-byte public key.
// Off-curve addresses (PDAs) are accepted.
func ParsePublic(text string) (solana.PublicKey, error) {
	raw, err := codec.DecodeBase58(text)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if len(raw) != PublicKeySize {
		return solana.PublicKey{}, fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidKeyLength, PublicKeySize, len(raw))
	}
	return solana.PublicKeyFromBytes(raw), nil
}

// ParseSecret decodes a base58 64-byte secret key and checks that its
// embedded public key belongs to its seed.
func ParseSecret(text string) (Keypair, error) {
	raw, err := codec.DecodeBase58(text)
	if err != nil {
		return Keypair{}, err
	}
	return KeypairFromSecret(raw)
}

// KeypairFromSecret validates raw secret key bytes and returns the keypair.
// The input slice is copied.
func KeypairFromSecret(raw []byte) (Keypair, error) {
	if len(raw) != SecretKeySize {
		return Keypair{}, fmt.Errorf("%w: secret key must be %d bytes, got %d", ErrInvalidKeyLength, SecretKeySize, len(raw))
	}

	embedded := raw[ed25519.SeedSize:]
	if !IsOnCurve(embedded) {
		return Keypair{}, fmt.Errorf("%w: embedded public key is not on the ed25519 curve", ErrInvalidKeyMaterial)
	}

	derived := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], embedded) {
		return Keypair{}, fmt.Errorf("%w: embedded public key does not match seed", ErrInvalidKeyMaterial)
	}

	return Keypair{
		Public: solana.PublicKeyFromBytes(embedded),
		Secret: solana.PrivateKey(derived),
	}, nil
}

// ParseSignature decodes a base64 Ed25519 signature.
func ParseSignature(text string) (solana.Signature, error) {
	raw, err := codec.DecodeBase64(text)
	if err != nil {
		return solana.Signature{}, err
	}
	if len(raw) != SignatureSize {
		return solana.Signature{}, fmt.Errorf("%w: signature must be %d bytes, got %d", ErrInvalidSignatureLength, SignatureSize, len(raw))
	}
	var sig solana.Signature
	copy(sig[:], raw)
	return sig, nil
}

// EncodeSignature renders a signature as base64
func EncodeSignature(sig solana.Signature) string {
	return codec.EncodeBase64(sig[:])
}

// IsOnCurve reports whether b is a canonical encoding of an ed25519 point.
func IsOnCurve(b []byte) bool {
	if len(b) != PublicKeySize {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
