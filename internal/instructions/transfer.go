package instructions

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
)

// BuildSolTransfer creates a System program transfer of lamports.
//
// Accounts:
// 0: from (writable, signer)
// 1: to (writable)
func BuildSolTransfer(from, to string, lamports uint64) (solana.Instruction, error) {
	if lamports == 0 {
		return nil, ErrInvalidAmount
	}

	fromKey, err := parseAddress("from", from)
	if err != nil {
		return nil, err
	}
	toKey, err := parseAddress("to", to)
	if err != nil {
		return nil, err
	}
	if fromKey.Equals(toKey) {
		return nil, ErrSameAccount
	}

	inst, err := system.NewTransferInstruction(lamports, fromKey, toKey).ValidateAndBuild()
	if err != nil {
		return nil, fmt.Errorf("failed to build transfer instruction: %w", err)
	}
	return inst, nil
}

// BuildTokenTransfer creates an SPL Token transfer of amount base units of
// mint from the owner's associated token account to the destination
// wallet's associated token account. Both ATAs are derived, not looked up.
//
// Accounts:
// 0: source ATA (writable)
// 1: destination ATA (writable)
// 2: owner (signer)
func BuildTokenTransfer(destination, mint, owner string, amount uint64) (solana.Instruction, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	destKey, err := parseAddress("destination", destination)
	if err != nil {
		return nil, err
	}
	mintKey, err := parseAddress("mint", mint)
	if err != nil {
		return nil, err
	}
	ownerKey, err := parseAddress("owner", owner)
	if err != nil {
		return nil, err
	}

	source, _, err := solana.FindAssociatedTokenAddress(ownerKey, mintKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive source token account: %w", err)
	}
	target, _, err := solana.FindAssociatedTokenAddress(destKey, mintKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive destination token account: %w", err)
	}

	inst, err := token.NewTransferInstruction(amount, source, target, ownerKey, nil).ValidateAndBuild()
	if err != nil {
		return nil, fmt.Errorf("failed to build token transfer instruction: %w", err)
	}
	return inst, nil
}
