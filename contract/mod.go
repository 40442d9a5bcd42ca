package contract

import (
	"github.com/rs/zerolog"

	"go.dedis.ch/epfer/account"
	"go.dedis.ch/epfer/storage"
)

// Contract is the authoring surface: a named implementation with the
// two lifecycle hooks and the set of externally callable endpoints.
// The sandbox invokes Init once at deployment and Upgrade each time
// the implementation behind an address is swapped; contract storage
// survives upgrades.
type Contract interface {
	Name() string

	Init(ctx CallContext, args Args) error

	Upgrade(ctx CallContext, args Args) error

	// Endpoints lists the callable entry points. Names must be unique
	// within one contract.
	Endpoints() []Endpoint
}

// Mutability separates endpoints that may write storage from views.
type Mutability int

const (
	Mutable Mutability = iota
	Readonly
)

// Handler executes one endpoint call.
type Handler func(ctx CallContext, args Args) (Value, error)

type Endpoint struct {
	Name       string
	Mutability Mutability
	Handler    Handler
}

// CallContext is what a contract sees of the outside world during one
// call: who calls, under which address it runs, and its own storage.
// Storage returns a read-only KV when the call is a view.
type CallContext interface {
	Caller() account.Address
	Self() account.Address
	Storage() storage.KV
	Logger() zerolog.Logger
}
