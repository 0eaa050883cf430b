package instructions

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"solana-wallet-server-go/internal/keys"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
	ErrSameAccount    = errors.New("source and destination are the same account")
)

// AddressError reports which instruction input failed to parse. It matches
// ErrInvalidAddress and unwraps to the underlying keys error.
type AddressError struct {
	Field string
	Err   error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrInvalidAddress, e.Field, e.Err)
}

func (e *AddressError) Is(target error) bool {
	return target == ErrInvalidAddress
}

func (e *AddressError) Unwrap() error {
	return e.Err
}

func parseAddress(field, text string) (solana.PublicKey, error) {
	pk, err := keys.ParsePublic(text)
	if err != nil {
		return solana.PublicKey{}, &AddressError{Field: field, Err: err}
	}
	return pk, nil
}
