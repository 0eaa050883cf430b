package api

import (
	"net/http"

	"github.com/gagliardetto/solana-go"

	"solana-wallet-server-go/internal/instructions"
)

type accountResponse struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"is_signer"`
	IsWritable bool   `json:"is_writable"`
}

type instructionResponse struct {
	ProgramID       string            `json:"program_id"`
	Accounts        []accountResponse `json:"accounts"`
	InstructionData string            `json:"instruction_data"`
}

// instructionResult renders inst and records it under kind.
func (s *Server) instructionResult(r *http.Request, kind string, inst solana.Instruction) (interface{}, error) {
	enc, err := instructions.Encode(inst)
	if err != nil {
		return nil, err
	}
	s.log.LogInstruction(RequestIDFrom(r.Context()), kind, inst)
	s.metrics.InstructionBuilt(kind)

	accounts := make([]accountResponse, len(enc.Accounts))
	for i, a := range enc.Accounts {
		accounts[i] = accountResponse{Pubkey: a.Pubkey, IsSigner: a.IsSigner, IsWritable: a.IsWritable}
	}
	return instructionResponse{
		ProgramID:       enc.ProgramID,
		Accounts:        accounts,
		InstructionData: enc.Data,
	}, nil
}

type createTokenRequest struct {
	MintAuthority   *string `json:"mint_authority"`
	Mint            *string `json:"mint"`
	Decimals        *uint8  `json:"decimals"`
	FreezeAuthority *string `json:"freeze_authority"`
}

func (s *Server) createToken(r *http.Request) (interface{}, error) {
	var req createTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	if err := requireFields(req.MintAuthority, req.Mint, req.Decimals); err != nil {
		return nil, err
	}

	var opts []instructions.MintOption
	if req.FreezeAuthority != nil {
		opts = append(opts, instructions.WithFreezeAuthority(*req.FreezeAuthority))
	}

	inst, err := instructions.BuildInitializeMint(*req.Mint, *req.MintAuthority, *req.Decimals, opts...)
	if err != nil {
		return nil, err
	}
	return s.instructionResult(r, "create_token", inst)
}

type mintTokenRequest struct {
	Mint        *string `json:"mint"`
	Destination *string `json:"destination"`
	Authority   *string `json:"authority"`
	Amount      *uint64 `json:"amount"`
}

func (s *Server) mintToken(r *http.Request) (interface{}, error) {
	var req mintTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	if err := requireFields(req.Mint, req.Destination, req.Authority, req.Amount); err != nil {
		return nil, err
	}

	inst, err := instructions.BuildMintTo(*req.Mint, *req.Destination, *req.Authority, *req.Amount)
	if err != nil {
		return nil, err
	}
	return s.instructionResult(r, "mint_token", inst)
}

type sendSolRequest struct {
	From     *string `json:"from"`
	To       *string `json:"to"`
	Lamports *uint64 `json:"lamports"`
}

func (s *Server) sendSol(r *http.Request) (interface{}, error) {
	var req sendSolRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	if err := requireFields(req.From, req.To, req.Lamports); err != nil {
		return nil, err
	}

	inst, err := instructions.BuildSolTransfer(*req.From, *req.To, *req.Lamports)
	if err != nil {
		return nil, err
	}
	return s.instructionResult(r, "send_sol", inst)
}

type sendTokenRequest struct {
	Destination *string `json:"destination"`
	Mint        *string `json:"mint"`
	Owner       *string `json:"owner"`
	Amount      *uint64 `json:"amount"`
}

func (s *Server) sendToken(r *http.Request) (interface{}, error) {
	var req sendTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	if err := requireFields(req.Destination, req.Mint, req.Owner, req.Amount); err != nil {
		return nil, err
	}

	inst, err := instructions.BuildTokenTransfer(*req.Destination, *req.Mint, *req.Owner, *req.Amount)
	if err != nil {
		return nil, err
	}
	return s.instructionResult(r, "send_token", inst)
}
