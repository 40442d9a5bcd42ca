package contract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgsAccessors(t *testing.T) {
	args := NewArgs(NumberValue("5"), StringValue("alice"), NumberValue("340282366920938463463374607431768211456"))

	u, err := args.U64(0)
	require.NoError(t, err)
	require.Equal(t, uint64(5), u)

	b, err := args.BigUint(0)
	require.NoError(t, err)
	require.Equal(t, "5", b.String())

	s, err := args.String(1)
	require.NoError(t, err)
	require.Equal(t, "alice", s)

	// 2^128 fits a BigUint but not a u64
	b, err = args.BigUint(2)
	require.NoError(t, err)
	require.Equal(t, "340282366920938463463374607431768211456", b.String())
	_, err = args.U64(2)
	require.ErrorIs(t, err, ErrBadArgument)
}

func TestArgsKindAndBoundsChecks(t *testing.T) {
	args := NewArgs(NumberValue("5"))

	_, err := args.String(0)
	require.ErrorIs(t, err, ErrBadArgument)
	_, err = args.BigUint(1)
	require.ErrorIs(t, err, ErrBadArgument)
	_, err = args.U64(-1)
	require.ErrorIs(t, err, ErrBadArgument)
}

func TestValueRendering(t *testing.T) {
	require.True(t, Void().IsVoid())
	require.Equal(t, "", Void().String())
	require.Equal(t, "8", BigUintValue(NewBigUint(8)).String())
	require.Equal(t, "42", U64Value(42).String())
	require.Equal(t, KindString, StringValue("x").Kind())
}
