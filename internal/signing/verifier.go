package signing

import (
	"github.com/gagliardetto/solana-go"

	"solana-wallet-server-go/internal/keys"
)

// Verify reports whether sig is a valid signature of message by pub.
// Off-curve or otherwise unusable public keys simply fail verification.
func Verify(message []byte, sig solana.Signature, pub solana.PublicKey) bool {
	return sig.Verify(pub, message)
}

// VerifyEncoded decodes a base64 signature and a base58 public key and
// verifies message against them. Decoding problems are returned as errors;
// a well-formed signature that does not match yields (false, nil).
func VerifyEncoded(message []byte, sigText, pubText string) (bool, error) {
	sig, err := keys.ParseSignature(sigText)
	if err != nil {
		return false, err
	}
	pub, err := keys.ParsePublic(pubText)
	if err != nil {
		return false, err
	}
	return Verify(message, sig, pub), nil
}
