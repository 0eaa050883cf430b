package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// ErrInvalidEncoding is returned when input is not valid base58 or base64.
var ErrInvalidEncoding = errors.New("invalid encoding")

// strictBase64 rejects non-zero padding bits; CR/LF are rejected separately
// since encoding/base64 skips them even in strict mode.
var strictBase64 = base64.StdEncoding.Strict()

// Base58 encoding/decoding utilities

// EncodeBase58 encodes bytes to base58 string
func EncodeBase58(data []byte) string {
	return base58.Encode(data)
}

// DecodeBase58 decodes a base58 string using the Bitcoin/Solana alphabet.
// Characters outside the alphabet (0, O, I, l, whitespace, ...) are rejected.
func DecodeBase58(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty base58 string", ErrInvalidEncoding)
	}
	decoded, err := base58.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: base58: %v", ErrInvalidEncoding, err)
	}
	return decoded, nil
}

// Base64 encoding/decoding utilities

// EncodeBase64 encodes bytes to standard padded base64 string
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes standard padded base64 in strict mode.
func DecodeBase64(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty base64 string", ErrInvalidEncoding)
	}
	if strings.ContainsAny(encoded, "\r\n") {
		return nil, fmt.Errorf("%w: base64 contains line breaks", ErrInvalidEncoding)
	}
	decoded, err := strictBase64.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrInvalidEncoding, err)
	}
	return decoded, nil
}
