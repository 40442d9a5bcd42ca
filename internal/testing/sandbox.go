package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.dedis.ch/epfer/account"
	"go.dedis.ch/epfer/contract"
	"go.dedis.ch/epfer/runtime"
	"go.dedis.ch/epfer/storage"
	"go.dedis.ch/epfer/wallet"
)

// Test harness: a sandbox plus a funded wallet, assembled through
// options so tests can swap the storage backend.

type configTemplate struct {
	kvFactory storage.KVFactory
	balance   uint64
}

func newConfigTemplate() configTemplate {
	return configTemplate{
		kvFactory: storage.CreateSimpleKV,
		balance:   100,
	}
}

type Option func(*configTemplate)

func WithKVFactory(factory storage.KVFactory) Option {
	return func(ct *configTemplate) {
		ct.kvFactory = factory
	}
}

func WithBalance(balance uint64) Option {
	return func(ct *configTemplate) {
		ct.balance = balance
	}
}

// NewTestSandbox builds a sandbox and one registered wallet.
func NewTestSandbox(t *testing.T, opts ...Option) (*runtime.Sandbox, *wallet.Wallet) {
	template := newConfigTemplate()
	for _, opt := range opts {
		opt(&template)
	}

	sb := runtime.NewSandbox(runtime.SandboxConf{
		KVFactory: template.kvFactory,
		Name:      t.Name(),
	})
	w, err := wallet.NewWallet()
	require.NoError(t, err)
	require.NoError(t, sb.CreateAccount(w.Address(), template.balance))
	return sb, w
}

// NewTestWallet registers one more funded wallet with the sandbox.
func NewTestWallet(t *testing.T, sb *runtime.Sandbox) *wallet.Wallet {
	w, err := wallet.NewWallet()
	require.NoError(t, err)
	require.NoError(t, sb.CreateAccount(w.Address(), 100))
	return w
}

// SignedCall composes, signs and submits one call at the wallet's
// current nonce.
func SignedCall(t *testing.T, sb *runtime.Sandbox, w *wallet.Wallet,
	contractAddr account.Address, calldata string) (*runtime.Receipt, error) {

	nonce, err := sb.Nonce(w.Address())
	require.NoError(t, err)
	req, err := w.NewCall(contractAddr, calldata, nonce)
	require.NoError(t, err)
	return sb.Call(*req)
}

// MustCall is SignedCall for calls the test expects to succeed.
func MustCall(t *testing.T, sb *runtime.Sandbox, w *wallet.Wallet,
	contractAddr account.Address, calldata string) *runtime.Receipt {

	receipt, err := SignedCall(t, sb, w, contractAddr, calldata)
	require.NoError(t, err)
	return receipt
}

// MustDeploy deploys a contract the test expects to come up.
func MustDeploy(t *testing.T, sb *runtime.Sandbox, w *wallet.Wallet,
	impl contract.Contract, args contract.Args) account.Address {

	addr, err := sb.Deploy(impl, w.Address(), args)
	require.NoError(t, err)
	return *addr
}
