package account

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"go.dedis.ch/epfer/storage"
)

func TestStateBuilder(t *testing.T) {
	state := NewStateBuilder(storage.CreateSimpleKV).
		SetBalance(100).
		SetKV("sum", "3").
		Build()

	require.Equal(t, uint64(100), state.Balance)
	require.Equal(t, uint32(0), state.Nonce)
	require.False(t, state.IsContract())

	value, err := state.StorageRoot.Get("sum")
	require.NoError(t, err)
	require.Equal(t, "3", value)
}

func TestStateIsContract(t *testing.T) {
	state := NewStateBuilder(storage.CreateSimpleKV).
		SetCodeHash("cafebabe").
		Build()
	require.True(t, state.IsContract())
}

func TestAccountBuilder(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	acc := NewAccountBuilder(&key.PublicKey, storage.CreateSimpleKV).
		WithBalance(42).
		WithKV("counter", "0").
		Build()

	require.Equal(t, NewAddressFromPublicKey(&key.PublicKey).Hex(), acc.GetAddr().Hex())
	require.Equal(t, uint64(42), acc.GetState().Balance)
}
