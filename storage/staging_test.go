package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStagingCommit(t *testing.T) {
	base := NewSimpleKV()
	require.NoError(t, base.Put("sum", "3"))

	staging := NewStaging(base)
	require.NoError(t, staging.Put("sum", "8"))

	// write is visible through the overlay, not yet in the base
	value, err := staging.Get("sum")
	require.NoError(t, err)
	require.Equal(t, "8", value)

	value, err = base.Get("sum")
	require.NoError(t, err)
	require.Equal(t, "3", value)

	require.NoError(t, staging.Commit())
	value, err = base.Get("sum")
	require.NoError(t, err)
	require.Equal(t, "8", value)
}

func TestStagingDiscard(t *testing.T) {
	base := NewSimpleKV()
	require.NoError(t, base.Put("counter", "1"))

	staging := NewStaging(base)
	require.NoError(t, staging.Put("counter", "2"))
	require.NoError(t, staging.Put("other", "9"))
	staging.Discard()

	require.NoError(t, staging.Commit()) // nothing buffered anymore
	value, err := base.Get("counter")
	require.NoError(t, err)
	require.Equal(t, "1", value)
	_, err = base.Get("other")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestStagingDel(t *testing.T) {
	base := NewSimpleKV()
	require.NoError(t, base.Put("sum", "3"))

	staging := NewStaging(base)
	require.NoError(t, staging.Del("sum"))

	_, err := staging.Get("sum")
	require.ErrorIs(t, err, ErrKeyNotFound)

	// still in the base until commit
	_, err = base.Get("sum")
	require.NoError(t, err)

	require.NoError(t, staging.Commit())
	_, err = base.Get("sum")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestStagingDelMissing(t *testing.T) {
	staging := NewStaging(NewSimpleKV())
	err := staging.Del("ghost")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestStagingIterMergesViews(t *testing.T) {
	base := NewSimpleKV()
	require.NoError(t, base.Put("a", "1"))
	require.NoError(t, base.Put("b", "2"))

	staging := NewStaging(base)
	require.NoError(t, staging.Put("b", "20"))
	require.NoError(t, staging.Put("c", "30"))
	require.NoError(t, staging.Del("a"))

	seen := map[string]interface{}{}
	err := staging.Iter(func(key string, value interface{}) error {
		seen[key] = value
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"b": "20", "c": "30"}, seen)
}
