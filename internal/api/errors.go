package api

import (
	"errors"
	"fmt"
	"net/http"

	"solana-wallet-server-go/internal/instructions"
	"solana-wallet-server-go/internal/keys"
)

// Stable client-facing messages.
const (
	msgMissingFields   = "missing required fields"
	msgInvalidBody     = "invalid request body"
	msgBodyTooLarge    = "request body too large"
	msgInternal        = "internal error"
	msgNotFound        = "not found"
	msgMethod          = "method not allowed"
	msgKeygenFailed    = "failed to generate keypair"
	msgInvalidInput    = "invalid input"
	msgInvalidAmount   = "amount must be greater than zero"
	msgSameAccount     = "source and destination must differ"
	msgInvalidEntropy  = "invalid entropy size"
	msgInvalidMnemonic = "invalid mnemonic"
	msgInvalidPath     = "invalid derivation path"
)

var (
	errMissingFields = errors.New(msgMissingFields)
	errKeygen        = errors.New(msgKeygenFailed)
)

// bodyError marks a request body that could not be read or decoded.
type bodyError struct{ err error }

func (e *bodyError) Error() string { return "decode body: " + e.err.Error() }
func (e *bodyError) Unwrap() error { return e.err }

// fieldError ties a parse failure to the request field it came from.
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string { return e.field + ": " + e.err.Error() }
func (e *fieldError) Unwrap() error { return e.err }

func invalidField(field string, err error) error {
	if err == nil {
		return nil
	}
	return &fieldError{field: field, err: err}
}

// kindMessage names the failure kind without echoing any input.
func kindMessage(err error) string {
	switch {
	case errors.Is(err, keys.ErrInvalidEncoding):
		return "invalid encoding"
	case errors.Is(err, keys.ErrInvalidKeyLength):
		return "invalid key length"
	case errors.Is(err, keys.ErrInvalidKeyMaterial):
		return "invalid key material"
	case errors.Is(err, keys.ErrInvalidSignatureLength):
		return "invalid signature length"
	default:
		return msgInvalidInput
	}
}

// errorMessage maps an operation error onto its stable response message.
func errorMessage(err error) string {
	var (
		field    *fieldError
		addr     *instructions.AddressError
		tooLarge *http.MaxBytesError
	)

	switch {
	case errors.Is(err, errMissingFields):
		return msgMissingFields
	case errors.As(err, &tooLarge):
		return msgBodyTooLarge
	case errors.As(err, &addr):
		return fmt.Sprintf("invalid %s address: %s", addr.Field, kindMessage(addr.Err))
	case errors.As(err, &field):
		return fmt.Sprintf("invalid %s: %s", field.field, kindMessage(field.err))
	case errors.Is(err, instructions.ErrInvalidAmount):
		return msgInvalidAmount
	case errors.Is(err, instructions.ErrSameAccount):
		return msgSameAccount
	case errors.Is(err, keys.ErrInvalidMnemonic):
		return msgInvalidMnemonic
	case errors.Is(err, keys.ErrInvalidDerivationPath):
		return msgInvalidPath
	case errors.Is(err, keys.ErrInvalidEntropySize):
		return msgInvalidEntropy
	case errors.Is(err, errKeygen):
		return msgKeygenFailed
	case isBodyError(err):
		return msgInvalidBody
	default:
		return msgInternal
	}
}

func isBodyError(err error) bool {
	var b *bodyError
	return errors.As(err, &b)
}
