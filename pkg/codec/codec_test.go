package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase58_RoundTrip(t *testing.T) {
	for _, in := range [][]byte{
		{0},
		{0, 0, 1},
		bytes.Repeat([]byte{0xff}, 32),
		bytes.Repeat([]byte{0x01}, 64),
	} {
		out, err := DecodeBase58(EncodeBase58(in))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestBase58_KnownValue(t *testing.T) {
	decoded, err := DecodeBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	require.NoError(t, err)
	assert.Equal(t, []byte{
		6, 221, 246, 225, 215, 101, 161, 147, 217, 203, 225, 70, 206, 235, 121, 172,
		28, 180, 133, 237, 95, 91, 55, 145, 58, 140, 245, 133, 126, 255, 0, 169,
	}, decoded)
}

func TestBase58_RejectsCharactersOutsideAlphabet(t *testing.T) {
	for _, in := range []string{
		"",
		"0",
		"Tokenkeg0feZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
		"OIl",
		"abc def",
		" TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
		"abc+/=",
	} {
		_, err := DecodeBase58(in)
		assert.ErrorIs(t, err, ErrInvalidEncoding, "input %q", in)
	}
}

func TestBase64_RoundTrip(t *testing.T) {
	in := []byte("hello, world")
	out, err := DecodeBase64(EncodeBase64(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestBase64_Strict(t *testing.T) {
	for _, in := range []string{
		"",
		"aGVsbG8",      // missing padding
		"aGVsbG9=",     // non-zero padding bits
		"aGVs\nbG8=",   // line break
		"aGVsbG8=!",    // trailing garbage
		"aGVsbG8_",     // URL alphabet
		"not base64!!", // garbage
	} {
		_, err := DecodeBase64(in)
		assert.ErrorIs(t, err, ErrInvalidEncoding, "input %q", in)
	}

	out, err := DecodeBase64("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out)
}
