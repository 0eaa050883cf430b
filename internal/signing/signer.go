package signing

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"solana-wallet-server-go/internal/keys"
)

// Signed is the result of signing a message with a secret key.
type Signed struct {
	Signature solana.Signature
	Signer    solana.PublicKey
}

// SignatureString returns the base64 signature
func (s Signed) SignatureString() string {
	return keys.EncodeSignature(s.Signature)
}

// Sign produces a deterministic Ed25519 signature of message.
// The secret must be a consistent 64-byte keypair.
func Sign(message []byte, secret solana.PrivateKey) (Signed, error) {
	kp, err := keys.KeypairFromSecret(secret)
	if err != nil {
		return Signed{}, err
	}

	sig, err := kp.Secret.Sign(message)
	if err != nil {
		return Signed{}, fmt.Errorf("failed to sign message: %w", err)
	}

	return Signed{Signature: sig, Signer: kp.Public}, nil
}

// SignEncoded parses a base58 secret and signs message with it.
func SignEncoded(message []byte, secretText string) (Signed, error) {
	kp, err := keys.ParseSecret(secretText)
	if err != nil {
		return Signed{}, err
	}
	return Sign(message, kp.Secret)
}
