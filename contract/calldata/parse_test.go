package calldata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.dedis.ch/epfer/contract"
)

func TestParseNoArgs(t *testing.T) {
	call, err := Parse("getSum()")
	require.NoError(t, err)
	require.Equal(t, "getSum", call.Endpoint)
	require.Equal(t, 0, call.Args().Len())
}

func TestParseNumberArg(t *testing.T) {
	call, err := Parse("add(5)")
	require.NoError(t, err)
	require.Equal(t, "add", call.Endpoint)

	args := call.Args()
	require.Equal(t, 1, args.Len())
	v, err := args.BigUint(0)
	require.NoError(t, err)
	require.Equal(t, "5", v.String())
}

func TestParseBigNumberSurvives(t *testing.T) {
	// beyond u64: must not be truncated by parsing
	call, err := Parse("add(340282366920938463463374607431768211456)")
	require.NoError(t, err)

	v, err := call.Args().BigUint(0)
	require.NoError(t, err)
	require.Equal(t, "340282366920938463463374607431768211456", v.String())
}

func TestParseMixedArgs(t *testing.T) {
	call, err := Parse(`register("alice", 42) # deploy-time comment`)
	require.NoError(t, err)
	require.Equal(t, "register", call.Endpoint)

	args := call.Args()
	require.Equal(t, 2, args.Len())

	name, err := args.String(0)
	require.NoError(t, err)
	require.Equal(t, "alice", name)

	age, err := args.U64(1)
	require.NoError(t, err)
	require.Equal(t, uint64(42), age)
}

func TestParseArgKinds(t *testing.T) {
	call, err := Parse(`f("s", 1)`)
	require.NoError(t, err)
	args := call.Args()
	require.Equal(t, contract.KindString, args[0].Kind())
	require.Equal(t, contract.KindNumber, args[1].Kind())
}

func TestParseErrors(t *testing.T) {
	invalid := []string{
		"",
		"add",
		"add(",
		"add(5",
		"add 5)",
		"(5)",
		"add(5,)",
	}
	for _, plain := range invalid {
		_, err := Parse(plain)
		require.Error(t, err, "input %q", plain)
	}
}
