package wallet

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"go.dedis.ch/epfer/account"
	"go.dedis.ch/epfer/runtime"
)

func TestWalletAddressIsStable(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	a := NewWalletFromKey(key)
	b := NewWalletFromKey(key)
	require.Equal(t, a.Address().Hex(), b.Address().Hex())
}

func TestNewCallIsRecoverable(t *testing.T) {
	w, err := NewWallet()
	require.NoError(t, err)

	contractKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	contractAddr := account.NewAddressFromPublicKey(&contractKey.PublicKey)

	req, err := w.NewCall(*contractAddr, "add(5)", 0)
	require.NoError(t, err)
	require.Len(t, req.Sig, 65)

	pub, err := crypto.SigToPub(req.Digest(), req.Sig)
	require.NoError(t, err)
	require.Equal(t, w.Address().Hex(), account.NewAddressFromPublicKey(pub).Hex())
}

func TestDigestCoversCalldataAndNonce(t *testing.T) {
	w, err := NewWallet()
	require.NoError(t, err)

	a := runtime.CallRequest{Caller: w.Address(), Calldata: "add(5)", Nonce: 0}
	b := runtime.CallRequest{Caller: w.Address(), Calldata: "add(6)", Nonce: 0}
	c := runtime.CallRequest{Caller: w.Address(), Calldata: "add(5)", Nonce: 1}

	require.NotEqual(t, a.Digest(), b.Digest())
	require.NotEqual(t, a.Digest(), c.Digest())
}
