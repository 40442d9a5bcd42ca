package account

import (
	"crypto/ecdsa"
	"fmt"

	"go.dedis.ch/epfer/storage"
)

// Account in the Epfer sandbox
type Account struct {
	addr  *Address
	state *State
}

func (a *Account) GetAddr() *Address {
	return a.addr
}

func (a *Account) GetState() *State {
	return a.state
}

func (a *Account) String() string {
	return fmt.Sprintf("{addr: %s, state: %s}", a.addr, a.state)
}

type AccountBuilder struct {
	addr  *Address
	state *StateBuilder
}

func NewAccountBuilder(pub *ecdsa.PublicKey, kvFactory storage.KVFactory) *AccountBuilder {
	return &AccountBuilder{addr: NewAddressFromPublicKey(pub), state: NewStateBuilder(kvFactory)}
}

func (ab *AccountBuilder) WithBalance(balance uint64) *AccountBuilder {
	ab.state.SetBalance(balance)
	return ab
}

func (ab *AccountBuilder) WithKV(key string, value interface{}) *AccountBuilder {
	ab.state.SetKV(key, value)
	return ab
}

func (ab *AccountBuilder) Build() *Account {
	return &Account{ab.addr, ab.state.Build()}
}
