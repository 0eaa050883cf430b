package api

import (
	"fmt"
	"net/http"

	"solana-wallet-server-go/internal/keys"
	"solana-wallet-server-go/internal/signing"
)

type keypairResponse struct {
	Pubkey string `json:"pubkey"`
	Secret string `json:"secret"`
}

func (s *Server) generateKeypair(r *http.Request) (interface{}, error) {
	kp, err := s.keys.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errKeygen, err)
	}
	s.metrics.KeypairGenerated()

	return keypairResponse{
		Pubkey: kp.PublicString(),
		Secret: kp.SecretString(),
	}, nil
}

type mnemonicRequest struct {
	Mnemonic   *string `json:"mnemonic"`
	Passphrase string  `json:"passphrase"`
	Path       *string `json:"path"`
}

type mnemonicResponse struct {
	Mnemonic string `json:"mnemonic"`
	Path     string `json:"path"`
	Pubkey   string `json:"pubkey"`
	Secret   string `json:"secret"`
}

// mnemonicKeypair derives a keypair from the supplied mnemonic, or from a
// freshly generated one when none is given. An explicit empty path selects
// the legacy seed-only derivation.
func (s *Server) mnemonicKeypair(r *http.Request) (interface{}, error) {
	var req mnemonicRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	path := s.opts.DerivationPath
	if req.Path != nil {
		path = *req.Path
	}

	var mnemonic string
	if req.Mnemonic != nil {
		mnemonic = keys.NormalizeMnemonic(*req.Mnemonic)
	} else {
		generated, err := s.keys.NewMnemonic(s.opts.MnemonicEntropyBits)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errKeygen, err)
		}
		mnemonic = generated
	}

	kp, err := keys.FromMnemonic(mnemonic, req.Passphrase, path)
	if err != nil {
		return nil, err
	}
	s.metrics.KeypairGenerated()

	return mnemonicResponse{
		Mnemonic: mnemonic,
		Path:     path,
		Pubkey:   kp.PublicString(),
		Secret:   kp.SecretString(),
	}, nil
}

type signRequest struct {
	Message *string `json:"message"`
	Secret  *string `json:"secret"`
}

type signResponse struct {
	Signature string `json:"signature"`
	PublicKey string `json:"public_key"`
	Message   string `json:"message"`
}

func (s *Server) signMessage(r *http.Request) (interface{}, error) {
	var req signRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	if err := requireFields(req.Message, req.Secret); err != nil {
		return nil, err
	}

	signed, err := signing.SignEncoded([]byte(*req.Message), *req.Secret)
	if err != nil {
		return nil, invalidField("secret key", err)
	}

	return signResponse{
		Signature: signed.SignatureString(),
		PublicKey: signed.Signer.String(),
		Message:   *req.Message,
	}, nil
}

type verifyRequest struct {
	Message   *string `json:"message"`
	Signature *string `json:"signature"`
	Pubkey    *string `json:"pubkey"`
}

type verifyResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Pubkey  string `json:"pubkey"`
}

func (s *Server) verifyMessage(r *http.Request) (interface{}, error) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	if err := requireFields(req.Message, req.Signature, req.Pubkey); err != nil {
		return nil, err
	}

	sig, err := keys.ParseSignature(*req.Signature)
	if err != nil {
		return nil, invalidField("signature", err)
	}
	pub, err := keys.ParsePublic(*req.Pubkey)
	if err != nil {
		return nil, invalidField("public key", err)
	}

	valid := signing.Verify([]byte(*req.Message), sig, pub)
	s.metrics.SignatureVerified(valid)

	return verifyResponse{
		Valid:   valid,
		Message: *req.Message,
		Pubkey:  *req.Pubkey,
	}, nil
}
