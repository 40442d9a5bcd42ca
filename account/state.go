package account

import (
	"fmt"

	"go.dedis.ch/epfer/storage"
)

// State is what the sandbox tracks per account: the transaction nonce,
// the balance, the contract storage and the code hash. CodeHash is
// empty for external accounts.
type State struct {
	Nonce       uint32
	Balance     uint64
	StorageRoot storage.KV
	CodeHash    string
}

func NewState(kvFactory storage.KVFactory) *State {
	s := State{
		Nonce:    0,
		Balance:  0,
		CodeHash: "",
	}
	s.StorageRoot = kvFactory()
	return &s
}

func (s *State) IsContract() bool {
	return s.CodeHash != ""
}

func (s *State) String() string {
	return fmt.Sprintf("{nonce=%d, balance=%d, storageRoot=%s, codeHash=%s}",
		s.Nonce, s.Balance, s.StorageRoot.Hash(), s.CodeHash)
}

type StateBuilder struct {
	state *State
}

func NewStateBuilder(kvFactory storage.KVFactory) *StateBuilder {
	return &StateBuilder{state: NewState(kvFactory)}
}

func (sb *StateBuilder) SetBalance(balance uint64) *StateBuilder {
	sb.state.Balance = balance
	return sb
}

func (sb *StateBuilder) SetKV(key string, value interface{}) *StateBuilder {
	if err := sb.state.StorageRoot.Put(key, value); err != nil {
		panic(err)
	}
	return sb
}

func (sb *StateBuilder) SetCodeHash(codeHash string) *StateBuilder {
	sb.state.CodeHash = codeHash
	return sb
}

func (sb *StateBuilder) Build() *State {
	return sb.state
}
