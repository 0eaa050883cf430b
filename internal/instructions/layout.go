package instructions

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// LayoutVersion identifies the InitializeMint2 data layout produced by this
// package. Bump it if the encoding ever changes; the fixed vectors in the
// tests pin the current one.
const LayoutVersion = 1

// Command is the one-byte SPL Token instruction tag.
type Command uint8

const (
	CommandTransfer        Command = 3
	CommandMintTo          Command = 7
	CommandInitializeMint2 Command = 20
)

const (
	initializeMint2Size         = 1 + 1 + 32 + 1 + 32
	initializeMint2SizeNoFreeze = 1 + 1 + 32 + 1
)

var ErrMalformedData = errors.New("malformed instruction data")

// InitializeMint2Data is the payload of the SPL Token InitializeMint2
// instruction:
//
//	[0]      tag (20)
//	[1]      decimals
//	[2:34]   mint authority
//	[34]     freeze authority present (0 or 1)
//	[35:67]  freeze authority, only when present
type InitializeMint2Data struct {
	Decimals        uint8
	MintAuthority   solana.PublicKey
	FreezeAuthority *solana.PublicKey
}

func (d InitializeMint2Data) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(uint8(CommandInitializeMint2)); err != nil {
		return err
	}
	if err := encoder.WriteUint8(d.Decimals); err != nil {
		return err
	}
	if err := encoder.WriteBytes(d.MintAuthority[:], false); err != nil {
		return err
	}
	if d.FreezeAuthority == nil {
		return encoder.WriteBool(false)
	}
	if err := encoder.WriteBool(true); err != nil {
		return err
	}
	return encoder.WriteBytes(d.FreezeAuthority[:], false)
}

func (d *InitializeMint2Data) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	tag, err := decoder.ReadUint8()
	if err != nil {
		return fmt.Errorf("%w: tag: %v", ErrMalformedData, err)
	}
	if Command(tag) != CommandInitializeMint2 {
		return fmt.Errorf("%w: unexpected tag %d", ErrMalformedData, tag)
	}

	if d.Decimals, err = decoder.ReadUint8(); err != nil {
		return fmt.Errorf("%w: decimals: %v", ErrMalformedData, err)
	}

	authority, err := decoder.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return fmt.Errorf("%w: mint authority: %v", ErrMalformedData, err)
	}
	d.MintAuthority = solana.PublicKeyFromBytes(authority)

	flag, err := decoder.ReadUint8()
	if err != nil {
		return fmt.Errorf("%w: freeze authority flag: %v", ErrMalformedData, err)
	}
	switch flag {
	case 0:
		d.FreezeAuthority = nil
	case 1:
		freeze, err := decoder.ReadNBytes(solana.PublicKeyLength)
		if err != nil {
			return fmt.Errorf("%w: freeze authority: %v", ErrMalformedData, err)
		}
		pk := solana.PublicKeyFromBytes(freeze)
		d.FreezeAuthority = &pk
	default:
		return fmt.Errorf("%w: freeze authority flag %d", ErrMalformedData, flag)
	}

	if decoder.HasRemaining() {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedData, decoder.Remaining())
	}
	return nil
}

// Encode returns the wire bytes of the payload.
func (d InitializeMint2Data) Encode() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, initializeMint2Size))
	if err := d.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, fmt.Errorf("failed to encode initialize mint data: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeInitializeMint2 parses InitializeMint2 instruction data.
func DecodeInitializeMint2(data []byte) (InitializeMint2Data, error) {
	if len(data) != initializeMint2Size && len(data) != initializeMint2SizeNoFreeze {
		return InitializeMint2Data{}, fmt.Errorf("%w: %d bytes", ErrMalformedData, len(data))
	}
	var d InitializeMint2Data
	if err := d.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return InitializeMint2Data{}, err
	}
	return d, nil
}
