package instructions

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"solana-wallet-server-go/pkg/codec"
)

// Account is the text form of an instruction account entry.
type Account struct {
	Pubkey     string
	IsSigner   bool
	IsWritable bool
}

// Encoded is the text form of an instruction: base58 program ID and
// account keys, base64 data.
type Encoded struct {
	ProgramID string
	Accounts  []Account
	Data      string
}

// Encode renders inst in its text form, keeping account order.
func Encode(inst solana.Instruction) (Encoded, error) {
	data, err := inst.Data()
	if err != nil {
		return Encoded{}, fmt.Errorf("failed to encode instruction data: %w", err)
	}

	metas := inst.Accounts()
	accounts := make([]Account, 0, len(metas))
	for _, meta := range metas {
		accounts = append(accounts, Account{
			Pubkey:     meta.PublicKey.String(),
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		})
	}

	return Encoded{
		ProgramID: inst.ProgramID().String(),
		Accounts:  accounts,
		Data:      codec.EncodeBase64(data),
	}, nil
}
