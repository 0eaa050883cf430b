package instructions

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// BuildMintTo creates an SPL Token MintTo instruction minting amount base
// units into the destination token account.
//
// Accounts:
// 0: mint (writable)
// 1: destination token account (writable)
// 2: mint authority (signer)
func BuildMintTo(mint, destination, authority string, amount uint64) (solana.Instruction, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	mintKey, err := parseAddress("mint", mint)
	if err != nil {
		return nil, err
	}
	destKey, err := parseAddress("destination", destination)
	if err != nil {
		return nil, err
	}
	authorityKey, err := parseAddress("authority", authority)
	if err != nil {
		return nil, err
	}

	inst, err := token.NewMintToInstruction(amount, mintKey, destKey, authorityKey, nil).ValidateAndBuild()
	if err != nil {
		return nil, fmt.Errorf("failed to build mint-to instruction: %w", err)
	}
	return inst, nil
}
