package runtime

import (
	"github.com/rs/zerolog"

	"go.dedis.ch/epfer/account"
	"go.dedis.ch/epfer/contract"
	"go.dedis.ch/epfer/storage"
)

// callContext implements contract.CallContext for one call.
type callContext struct {
	caller account.Address
	self   account.Address
	kv     storage.KV
	logger zerolog.Logger
}

func newCallContext(caller, self account.Address, kv storage.KV, logger zerolog.Logger) callContext {
	return callContext{caller: caller, self: self, kv: kv, logger: logger}
}

func (c callContext) Caller() account.Address {
	return c.caller
}

func (c callContext) Self() account.Address {
	return c.self
}

func (c callContext) Storage() storage.KV {
	return c.kv
}

func (c callContext) Logger() zerolog.Logger {
	return c.logger
}

var _ contract.CallContext = callContext{}
