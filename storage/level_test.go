package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelKVBasic(t *testing.T) {
	kv, err := OpenLevelKV(filepath.Join(t.TempDir(), "kv"))
	require.NoError(t, err)
	defer kv.Close()

	_, err = kv.Get("sum")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Put("sum", "8"))
	value, err := kv.Get("sum")
	require.NoError(t, err)
	require.Equal(t, "8", value)

	require.NoError(t, kv.Del("sum"))
	err = kv.Del("sum")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestLevelKVReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv")

	kv, err := OpenLevelKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Put("counter", "42"))
	require.NoError(t, kv.Close())

	kv, err = OpenLevelKV(path)
	require.NoError(t, err)
	defer kv.Close()

	value, err := kv.Get("counter")
	require.NoError(t, err)
	require.Equal(t, "42", value)
}

func TestLevelKVHashMatchesSimpleKV(t *testing.T) {
	lkv, err := OpenLevelKV(filepath.Join(t.TempDir(), "kv"))
	require.NoError(t, err)
	defer lkv.Close()
	skv := NewSimpleKV()

	for _, kv := range []KV{lkv, skv} {
		require.NoError(t, kv.Put("sum", "8"))
		require.NoError(t, kv.Put("counter", "1"))
	}

	// the two backends must agree on the canonical state hash
	require.Equal(t, skv.Hash(), lkv.Hash())
}
