package contract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBigUintParse(t *testing.T) {
	v, err := NewBigUintFromString("340282366920938463463374607431768211456") // 2^128
	require.NoError(t, err)
	require.Equal(t, "340282366920938463463374607431768211456", v.String())

	_, err = NewBigUintFromString("-1")
	require.ErrorIs(t, err, ErrBadArgument)
	_, err = NewBigUintFromString("abc")
	require.ErrorIs(t, err, ErrBadArgument)
	_, err = NewBigUintFromString("")
	require.ErrorIs(t, err, ErrBadArgument)
}

func TestBigUintAdd(t *testing.T) {
	sum := NewBigUint(3)
	sum.Add(NewBigUint(5))
	require.Equal(t, "8", sum.String())
}

func TestBigUintSubUnderflow(t *testing.T) {
	v := NewBigUint(3)
	err := v.Sub(NewBigUint(5))
	require.ErrorIs(t, err, ErrUnderflow)
	// receiver unchanged on underflow
	require.Equal(t, "3", v.String())

	require.NoError(t, v.Sub(NewBigUint(3)))
	require.True(t, v.IsZero())
}

func TestBigUintClone(t *testing.T) {
	v := NewBigUint(7)
	c := v.Clone()
	v.Add(NewBigUint(1))
	require.Equal(t, "7", c.String())
	require.Equal(t, "8", v.String())
	require.Equal(t, 1, v.Cmp(c))
}
