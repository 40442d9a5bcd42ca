package runtime

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"go.dedis.ch/epfer/account"
)

// CallRequest is one signed endpoint invocation. Nonce must match the
// caller account nonce, which rules out replays. Sig is the 65-byte
// recoverable secp256k1 signature over Digest.
type CallRequest struct {
	Caller   account.Address
	Contract account.Address
	Calldata string
	Nonce    uint32
	Sig      []byte
}

// Digest is the keccak hash the caller signs: addresses, calldata and
// nonce in a fixed order.
func (r CallRequest) Digest() []byte {
	var nonce [4]byte
	binary.BigEndian.PutUint32(nonce[:], r.Nonce)
	return crypto.Keccak256(r.Caller.Bytes(), r.Contract.Bytes(), []byte(r.Calldata), nonce[:])
}

// verifySig recovers the signer and checks it is the claimed caller.
func (r CallRequest) verifySig() error {
	if len(r.Sig) == 0 {
		return fmt.Errorf("request is not signed")
	}
	pub, err := crypto.SigToPub(r.Digest(), r.Sig)
	if err != nil {
		return fmt.Errorf("recover signer: %w", err)
	}
	signer := account.NewAddressFromPublicKey(pub)
	if signer.Hex() != r.Caller.Hex() {
		return fmt.Errorf("signature from %s does not match caller %s", signer, r.Caller)
	}
	return nil
}

func (r CallRequest) String() string {
	return fmt.Sprintf("{caller: %s, contract: %s, calldata: %q, nonce: %d}",
		r.Caller.Short(), r.Contract.Short(), r.Calldata, r.Nonce)
}
