package instructions

import (
	"github.com/gagliardetto/solana-go"
)

type mintOptions struct {
	freeze        string
	freezeSet     bool
	withoutFreeze bool
}

// MintOption customises BuildInitializeMint.
type MintOption func(*mintOptions)

// WithFreezeAuthority sets an explicit freeze authority.
func WithFreezeAuthority(address string) MintOption {
	return func(o *mintOptions) {
		o.freeze = address
		o.freezeSet = true
		o.withoutFreeze = false
	}
}

// WithoutFreezeAuthority creates the mint with no freeze authority.
func WithoutFreezeAuthority() MintOption {
	return func(o *mintOptions) {
		o.freeze = ""
		o.freezeSet = false
		o.withoutFreeze = true
	}
}

// BuildInitializeMint creates an SPL Token InitializeMint2 instruction.
// The freeze authority defaults to the mint authority.
func BuildInitializeMint(mint, mintAuthority string, decimals uint8, opts ...MintOption) (solana.Instruction, error) {
	var o mintOptions
	for _, opt := range opts {
		opt(&o)
	}

	mintKey, err := parseAddress("mint", mint)
	if err != nil {
		return nil, err
	}
	authority, err := parseAddress("mint authority", mintAuthority)
	if err != nil {
		return nil, err
	}

	payload := InitializeMint2Data{
		Decimals:      decimals,
		MintAuthority: authority,
	}
	switch {
	case o.withoutFreeze:
	case o.freezeSet:
		freeze, err := parseAddress("freeze authority", o.freeze)
		if err != nil {
			return nil, err
		}
		payload.FreezeAuthority = &freeze
	default:
		payload.FreezeAuthority = &authority
	}

	data, err := payload.Encode()
	if err != nil {
		return nil, err
	}

	// InitializeMint2 takes a single account and no rent sysvar:
	// 0: mint (writable)
	accounts := solana.AccountMetaSlice{
		{PublicKey: mintKey, IsWritable: true, IsSigner: false},
	}

	return solana.NewInstruction(solana.TokenProgramID, accounts, data), nil
}
