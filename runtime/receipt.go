package runtime

import (
	"fmt"

	"go.dedis.ch/epfer/account"
	"go.dedis.ch/epfer/contract"
)

// Receipt records one committed call: which endpoint ran, what it
// returned and the contract storage hash afterwards.
type Receipt struct {
	ID        string
	Contract  account.Address
	Endpoint  string
	Result    contract.Value
	StateHash string
}

func (r Receipt) String() string {
	result := r.Result.String()
	if r.Result.IsVoid() {
		result = "<void>"
	}
	return fmt.Sprintf("{id: %s, contract: %s, endpoint: %s, result: %s, state: %s}",
		r.ID, r.Contract.Short(), r.Endpoint, result, r.StateHash[:8]+"...")
}
