package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
)

var ErrKeyNotFound error = errors.New("key not found")
var ErrReadOnly error = errors.New("storage is read-only")

// KV is a basic string-keyed mapping. Values must be JSON-encodable so
// that every implementation can persist and hash them the same way.
type KV interface {
	Get(key string) (interface{}, error)
	Put(key string, value interface{}) error
	Del(key string) error
	// Iter visits every pair. Order is implementation defined.
	Iter(fn func(key string, value interface{}) error) error
	Hash() string
}

type KVFactory func() KV

func CreateSimpleKV() KV {
	return NewSimpleKV()
}

// hashOf computes the canonical hash of any KV: sha256 over the
// key-sorted pairs, values JSON encoded.
func hashOf(kv KV) string {
	pairs := map[string]interface{}{}
	err := kv.Iter(func(key string, value interface{}) error {
		pairs[key] = value
		return nil
	})
	if err != nil {
		panic(err)
	}

	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, key := range keys {
		if _, err := h.Write([]byte(key)); err != nil {
			panic(err)
		}
		bytes, err := json.Marshal(pairs[key])
		if err != nil {
			panic(err)
		}
		if _, err := h.Write(bytes); err != nil {
			panic(err)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
