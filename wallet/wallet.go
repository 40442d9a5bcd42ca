package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"

	"go.dedis.ch/epfer/account"
	"go.dedis.ch/epfer/logging"
	"go.dedis.ch/epfer/runtime"
)

type PrivateKey struct {
	*ecdsa.PrivateKey
	bytes []byte
}

func (pri *PrivateKey) String() string {
	return hex.EncodeToString(pri.bytes)[:8] + "..."
}

type PublicKey struct {
	*ecdsa.PublicKey
	bytes []byte
}

func (pub *PublicKey) String() string {
	return hex.EncodeToString(pub.bytes)[:8] + "..."
}

// Wallet is a caller identity: an ECDSA keypair and the account
// address derived from it. It composes and signs call requests.
type Wallet struct {
	logger zerolog.Logger

	privateKey PrivateKey
	publicKey  PublicKey
	addr       *account.Address
}

func NewWallet() (*Wallet, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return NewWalletFromKey(key), nil
}

func NewWalletFromKey(key *ecdsa.PrivateKey) *Wallet {
	w := Wallet{}
	w.privateKey = PrivateKey{key, crypto.FromECDSA(key)}
	w.publicKey = PublicKey{&key.PublicKey, crypto.FromECDSAPub(&key.PublicKey)}
	w.addr = account.NewAddressFromPublicKey(&key.PublicKey)

	w.logger = logging.RootLogger.With().Str("Wallet", w.addr.Short()).Logger()
	w.logger.Info().Msgf("wallet created: pubKey=%s, priKey=%s",
		w.publicKey.String(), w.privateKey.String())
	return &w
}

func (w *Wallet) Address() account.Address {
	return *w.addr
}

// SignCall fills in the signature of a composed request.
func (w *Wallet) SignCall(req *runtime.CallRequest) error {
	sig, err := crypto.Sign(req.Digest(), w.privateKey.PrivateKey)
	if err != nil {
		return fmt.Errorf("sign call: %w", err)
	}
	req.Sig = sig
	return nil
}

// NewCall composes and signs a request against the given contract.
// The nonce must be the caller account's current one.
func (w *Wallet) NewCall(contractAddr account.Address, calldata string,
	nonce uint32) (*runtime.CallRequest, error) {

	req := &runtime.CallRequest{
		Caller:   *w.addr,
		Contract: contractAddr,
		Calldata: calldata,
		Nonce:    nonce,
	}
	if err := w.SignCall(req); err != nil {
		return nil, err
	}
	return req, nil
}
