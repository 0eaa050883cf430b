package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
)

// Service generates keypairs from an injected entropy source.
type Service struct {
	random io.Reader
}

// NewService creates a key service reading entropy from random.
// A nil reader selects crypto/rand.Reader, which is safe for concurrent use.
func NewService(random io.Reader) *Service {
	if random == nil {
		random = rand.Reader
	}
	return &Service{random: random}
}

// Generate creates a fresh Ed25519 keypair.
func (s *Service) Generate() (Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(s.random)
	if err != nil {
		return Keypair{}, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return Keypair{
		Public: solana.PublicKeyFromBytes(pub),
		Secret: solana.PrivateKey(priv),
	}, nil
}
