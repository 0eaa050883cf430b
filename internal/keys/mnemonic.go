package keys

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blocto/solana-go-sdk/pkg/hdwallet"
	"github.com/blocto/solana-go-sdk/types"
	bip39 "github.com/tyler-smith/go-bip39"
)

// DefaultDerivationPath is the BIP44 path used by most Solana wallets.
const DefaultDerivationPath = "m/44'/501'/0'/0'"

var (
	ErrInvalidMnemonic       = errors.New("invalid mnemonic")
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	ErrInvalidEntropySize    = errors.New("invalid entropy size")
)

// NewMnemonic returns a fresh BIP39 mnemonic built from bits of entropy
// read from the service's random source. bits must be 128..256 in steps of 32.
func (s *Service) NewMnemonic(bits int) (string, error) {
	if bits < 128 || bits > 256 || bits%32 != 0 {
		return "", fmt.Errorf("%w: %d bits", ErrInvalidEntropySize, bits)
	}

	entropy := make([]byte, bits/8)
	if _, err := io.ReadFull(s.random, entropy); err != nil {
		return "", fmt.Errorf("failed to read entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to build mnemonic: %w", err)
	}
	return mnemonic, nil
}

// FromMnemonic derives a keypair from a BIP39 mnemonic.
//
// With an empty path the first 32 bytes of the BIP39 seed are used as the
// ed25519 seed, matching `solana-keygen recover` without a derivation path.
// Otherwise the seed is run through SLIP-10 hardened derivation along path.
func FromMnemonic(mnemonic, passphrase, path string) (Keypair, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return Keypair{}, ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, passphrase)

	var edSeed []byte
	if path == "" {
		edSeed = seed[:32]
	} else {
		if err := ValidateDerivationPath(path); err != nil {
			return Keypair{}, err
		}
		derived, err := hdwallet.Derived(path, seed)
		if err != nil {
			return Keypair{}, fmt.Errorf("%w: %s: %v", ErrInvalidDerivationPath, path, err)
		}
		edSeed = derived.PrivateKey
	}

	account, err := types.AccountFromSeed(edSeed)
	if err != nil {
		return Keypair{}, fmt.Errorf("%w: %v", ErrInvalidKeyMaterial, err)
	}
	return KeypairFromSecret(account.PrivateKey)
}

// hardenedOffset is the first hardened child index; ed25519 SLIP-10 only
// has hardened children, written as i' with i below this offset.
const hardenedOffset = 1 << 31

// ValidateDerivationPath checks that path has the form m/a'/b'/... with
// every index hardened and below 2^31.
func ValidateDerivationPath(path string) error {
	segments := strings.Split(path, "/")
	if segments[0] != "m" || len(segments) < 2 {
		return fmt.Errorf("%w: %s", ErrInvalidDerivationPath, path)
	}
	for _, seg := range segments[1:] {
		index, ok := strings.CutSuffix(seg, "'")
		if !ok {
			return fmt.Errorf("%w: %s: segment %q is not hardened", ErrInvalidDerivationPath, path, seg)
		}
		v, err := strconv.ParseUint(index, 10, 32)
		if err != nil || v >= hardenedOffset {
			return fmt.Errorf("%w: %s: index %q out of range", ErrInvalidDerivationPath, path, index)
		}
	}
	return nil
}

// NormalizeMnemonic collapses whitespace and lowercases the words.
func NormalizeMnemonic(mnemonic string) string {
	return strings.ToLower(strings.Join(strings.Fields(mnemonic), " "))
}
