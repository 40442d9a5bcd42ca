package storage

// ReadOnly rejects every mutation of the wrapped KV. Views execute
// against a ReadOnly so that a misbehaving view fails instead of
// silently changing state.
type ReadOnly struct {
	base KV
}

func NewReadOnly(base KV) *ReadOnly {
	return &ReadOnly{base: base}
}

func (r *ReadOnly) Get(key string) (interface{}, error) {
	return r.base.Get(key)
}

func (r *ReadOnly) Put(key string, value interface{}) error {
	return ErrReadOnly
}

func (r *ReadOnly) Del(key string) error {
	return ErrReadOnly
}

func (r *ReadOnly) Iter(fn func(key string, value interface{}) error) error {
	return r.base.Iter(fn)
}

func (r *ReadOnly) Hash() string {
	return r.base.Hash()
}
