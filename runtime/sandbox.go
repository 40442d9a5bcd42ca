package runtime

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"go.dedis.ch/epfer/account"
	"go.dedis.ch/epfer/contract"
	"go.dedis.ch/epfer/contract/calldata"
	"go.dedis.ch/epfer/logging"
	"go.dedis.ch/epfer/storage"
)

// Sandbox is the in-process contract host. It keeps the world state
// (address -> account state), the deployed implementations and their
// endpoint dispatch tables, and executes deploy/call/query/upgrade
// against them. It is not a virtual machine: contracts are Go values
// and run in the host process; there is no bytecode, no gas and no
// trie.
type Sandbox struct {
	logger zerolog.Logger

	mu        sync.Mutex
	kvFactory storage.KVFactory

	world    map[string]*account.State
	impls    map[string]contract.Contract
	dispatch map[string]map[string]contract.Endpoint
	owners   map[string]account.Address

	receipts []*Receipt
}

type SandboxConf struct {
	// KVFactory creates the storage of each deployed contract. Defaults
	// to the in-memory KV.
	KVFactory storage.KVFactory
	Name      string
}

func NewSandbox(conf SandboxConf) *Sandbox {
	sb := Sandbox{}
	sb.kvFactory = conf.KVFactory
	if sb.kvFactory == nil {
		sb.kvFactory = storage.CreateSimpleKV
	}
	sb.world = make(map[string]*account.State)
	sb.impls = make(map[string]contract.Contract)
	sb.dispatch = make(map[string]map[string]contract.Endpoint)
	sb.owners = make(map[string]account.Address)
	name := conf.Name
	if name == "" {
		name = "sandbox"
	}
	sb.logger = logging.RootLogger.With().Str("Sandbox", name).Logger()
	sb.logger.Info().Msg("sandbox created")
	return &sb
}

// CreateAccount registers an external account. Re-creating an existing
// account is an error.
func (sb *Sandbox) CreateAccount(addr account.Address, balance uint64) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if _, ok := sb.world[addr.Hex()]; ok {
		return fmt.Errorf("account %s already exists", addr)
	}
	sb.world[addr.Hex()] = account.NewStateBuilder(storage.CreateSimpleKV).
		SetBalance(balance).Build()
	sb.logger.Info().Msgf("account created: %s, balance=%d", addr.Short(), balance)
	return nil
}

// Nonce returns the current nonce of an account, which the wallet
// needs to compose the next call.
func (sb *Sandbox) Nonce(addr account.Address) (uint32, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	state, err := sb.stateOf(addr)
	if err != nil {
		return 0, err
	}
	return state.Nonce, nil
}

func (sb *Sandbox) Balance(addr account.Address) (uint64, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	state, err := sb.stateOf(addr)
	if err != nil {
		return 0, err
	}
	return state.Balance, nil
}

// Receipts returns the receipts of every committed call so far.
func (sb *Sandbox) Receipts() []*Receipt {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	out := make([]*Receipt, len(sb.receipts))
	copy(out, sb.receipts)
	return out
}

// Deploy creates a contract account for impl, runs its Init hook with
// args and registers its endpoints. The contract address derives from
// the deployer address and nonce, so the same caller deploying twice
// gets two distinct contracts. A failing Init leaves nothing behind.
func (sb *Sandbox) Deploy(impl contract.Contract, caller account.Address,
	args contract.Args) (*account.Address, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	callerState, err := sb.stateOf(caller)
	if err != nil {
		return nil, fmt.Errorf("deploy: %w", err)
	}

	addr := account.NewContractAddress(caller, callerState.Nonce)
	if _, ok := sb.world[addr.Hex()]; ok {
		return nil, fmt.Errorf("deploy: contract account %s already exists", addr)
	}

	dispatch, err := buildDispatch(impl)
	if err != nil {
		return nil, fmt.Errorf("deploy %s: %w", impl.Name(), err)
	}

	state := account.NewState(sb.kvFactory)
	state.CodeHash = codeHashOf(impl)

	staging := storage.NewStaging(state.StorageRoot)
	ctx := newCallContext(caller, *addr, staging,
		sb.logger.With().Str("Contract", impl.Name()).Logger())
	if err := impl.Init(ctx, args); err != nil {
		return nil, fmt.Errorf("init %s: %w", impl.Name(), err)
	}
	if err := staging.Commit(); err != nil {
		return nil, fmt.Errorf("commit init of %s: %w", impl.Name(), err)
	}

	sb.world[addr.Hex()] = state
	sb.impls[addr.Hex()] = impl
	sb.dispatch[addr.Hex()] = dispatch
	sb.owners[addr.Hex()] = caller
	callerState.Nonce += 1

	sb.logger.Info().Msgf("deployed %s at %s", impl.Name(), addr.Short())
	return addr, nil
}

// Call executes one signed endpoint invocation. Storage writes are
// staged and commit only when the endpoint returns without error, so
// a failing call leaves contract storage untouched.
func (sb *Sandbox) Call(req CallRequest) (*Receipt, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if err := req.verifySig(); err != nil {
		return nil, fmt.Errorf("call %s: %w", req, err)
	}

	callerState, err := sb.stateOf(req.Caller)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", req, err)
	}
	if req.Nonce != callerState.Nonce {
		return nil, fmt.Errorf("call %s: nonce mismatch, account is at %d", req, callerState.Nonce)
	}

	contractState, impl, err := sb.contractOf(req.Contract)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", req, err)
	}

	call, err := calldata.Parse(req.Calldata)
	if err != nil {
		return nil, fmt.Errorf("call %s: parse calldata: %w", req, err)
	}

	ep, ok := sb.dispatch[req.Contract.Hex()][call.Endpoint]
	if !ok {
		return nil, fmt.Errorf("call %s: %s: %w", req, call.Endpoint, contract.ErrNoSuchEndpoint)
	}

	staging := storage.NewStaging(contractState.StorageRoot)
	var kv storage.KV = staging
	if ep.Mutability == contract.Readonly {
		kv = storage.NewReadOnly(contractState.StorageRoot)
	}

	ctx := newCallContext(req.Caller, req.Contract, kv,
		sb.logger.With().Str("Contract", impl.Name()).Logger())
	result, err := ep.Handler(ctx, call.Args())
	if err != nil {
		staging.Discard()
		return nil, fmt.Errorf("call %s: execute %s: %w", req, call.Endpoint, err)
	}
	if err := staging.Commit(); err != nil {
		return nil, fmt.Errorf("call %s: commit %s: %w", req, call.Endpoint, err)
	}
	callerState.Nonce += 1

	receipt := &Receipt{
		ID:        xid.New().String(),
		Contract:  req.Contract,
		Endpoint:  call.Endpoint,
		Result:    result,
		StateHash: contractState.StorageRoot.Hash(),
	}
	sb.receipts = append(sb.receipts, receipt)
	sb.logger.Info().Msgf("call committed: %s", receipt)
	return receipt, nil
}

// Query executes a view against a read-only storage snapshot. It needs
// no signature and leaves no receipt. Dispatching a mutable endpoint
// through Query fails with ErrNotView.
func (sb *Sandbox) Query(contractAddr account.Address, plain string) (contract.Value, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	contractState, impl, err := sb.contractOf(contractAddr)
	if err != nil {
		return contract.Void(), fmt.Errorf("query %s: %w", contractAddr.Short(), err)
	}

	call, err := calldata.Parse(plain)
	if err != nil {
		return contract.Void(), fmt.Errorf("query %s: parse calldata: %w", contractAddr.Short(), err)
	}

	ep, ok := sb.dispatch[contractAddr.Hex()][call.Endpoint]
	if !ok {
		return contract.Void(), fmt.Errorf("query %s: %s: %w",
			contractAddr.Short(), call.Endpoint, contract.ErrNoSuchEndpoint)
	}
	if ep.Mutability != contract.Readonly {
		return contract.Void(), fmt.Errorf("query %s: %s: %w",
			contractAddr.Short(), call.Endpoint, contract.ErrNotView)
	}

	ctx := newCallContext(contractAddr, contractAddr,
		storage.NewReadOnly(contractState.StorageRoot),
		sb.logger.With().Str("Contract", impl.Name()).Logger())
	result, err := ep.Handler(ctx, call.Args())
	if err != nil {
		return contract.Void(), fmt.Errorf("query %s: execute %s: %w",
			contractAddr.Short(), call.Endpoint, err)
	}
	return result, nil
}

// Upgrade swaps the implementation behind a contract address and runs
// the Upgrade hook of the new implementation. Contract storage
// survives; the code hash and dispatch table are replaced. Only the
// deployer may upgrade.
func (sb *Sandbox) Upgrade(contractAddr account.Address, impl contract.Contract,
	caller account.Address, args contract.Args) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	contractState, old, err := sb.contractOf(contractAddr)
	if err != nil {
		return fmt.Errorf("upgrade %s: %w", contractAddr.Short(), err)
	}
	if owner := sb.owners[contractAddr.Hex()]; owner.Hex() != caller.Hex() {
		return fmt.Errorf("upgrade %s: caller %s is not the owner", contractAddr.Short(), caller.Short())
	}

	dispatch, err := buildDispatch(impl)
	if err != nil {
		return fmt.Errorf("upgrade %s: %w", contractAddr.Short(), err)
	}

	staging := storage.NewStaging(contractState.StorageRoot)
	ctx := newCallContext(caller, contractAddr, staging,
		sb.logger.With().Str("Contract", impl.Name()).Logger())
	if err := impl.Upgrade(ctx, args); err != nil {
		return fmt.Errorf("upgrade %s: hook: %w", contractAddr.Short(), err)
	}
	if err := staging.Commit(); err != nil {
		return fmt.Errorf("upgrade %s: commit: %w", contractAddr.Short(), err)
	}

	sb.impls[contractAddr.Hex()] = impl
	sb.dispatch[contractAddr.Hex()] = dispatch
	contractState.CodeHash = codeHashOf(impl)

	sb.logger.Info().Msgf("upgraded %s: %s -> %s", contractAddr.Short(), old.Name(), impl.Name())
	return nil
}

// StorageHash returns the storage hash of a contract account.
func (sb *Sandbox) StorageHash(contractAddr account.Address) (string, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	contractState, _, err := sb.contractOf(contractAddr)
	if err != nil {
		return "", err
	}
	return contractState.StorageRoot.Hash(), nil
}

func (sb *Sandbox) stateOf(addr account.Address) (*account.State, error) {
	state, ok := sb.world[addr.Hex()]
	if !ok {
		return nil, fmt.Errorf("account %s does not exist", addr)
	}
	return state, nil
}

func (sb *Sandbox) contractOf(addr account.Address) (*account.State, contract.Contract, error) {
	state, err := sb.stateOf(addr)
	if err != nil {
		return nil, nil, err
	}
	impl, ok := sb.impls[addr.Hex()]
	if !ok {
		return nil, nil, fmt.Errorf("account %s is not a contract", addr)
	}
	return state, impl, nil
}

func buildDispatch(impl contract.Contract) (map[string]contract.Endpoint, error) {
	dispatch := make(map[string]contract.Endpoint)
	for _, ep := range impl.Endpoints() {
		if _, ok := dispatch[ep.Name]; ok {
			return nil, fmt.Errorf("duplicate endpoint %s", ep.Name)
		}
		dispatch[ep.Name] = ep
	}
	return dispatch, nil
}

func codeHashOf(impl contract.Contract) string {
	return hex.EncodeToString(crypto.Keccak256([]byte(impl.Name())))
}
