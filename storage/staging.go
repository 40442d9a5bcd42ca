package storage

// Staging buffers writes on top of a base KV until Commit. It is how
// contract execution becomes atomic: the sandbox runs an endpoint
// against a staging overlay and commits only when the endpoint
// returned without error.
type Staging struct {
	base   KV
	writes map[string]interface{}
	dels   map[string]struct{}
}

func NewStaging(base KV) *Staging {
	return &Staging{
		base:   base,
		writes: make(map[string]interface{}),
		dels:   make(map[string]struct{}),
	}
}

func (s *Staging) Get(key string) (interface{}, error) {
	if _, ok := s.dels[key]; ok {
		return nil, ErrKeyNotFound
	}
	if value, ok := s.writes[key]; ok {
		return value, nil
	}
	return s.base.Get(key)
}

func (s *Staging) Put(key string, value interface{}) error {
	delete(s.dels, key)
	s.writes[key] = value
	return nil
}

func (s *Staging) Del(key string) error {
	if _, err := s.Get(key); err != nil {
		return err
	}
	delete(s.writes, key)
	s.dels[key] = struct{}{}
	return nil
}

func (s *Staging) Iter(fn func(key string, value interface{}) error) error {
	merged := map[string]interface{}{}
	err := s.base.Iter(func(key string, value interface{}) error {
		merged[key] = value
		return nil
	})
	if err != nil {
		return err
	}
	for key := range s.dels {
		delete(merged, key)
	}
	for key, value := range s.writes {
		merged[key] = value
	}

	for key, value := range merged {
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Staging) Hash() string {
	return hashOf(s)
}

// Commit flushes the buffered operations to the base KV.
func (s *Staging) Commit() error {
	for key := range s.dels {
		if err := s.base.Del(key); err != nil && err != ErrKeyNotFound {
			return err
		}
	}
	for key, value := range s.writes {
		if err := s.base.Put(key, value); err != nil {
			return err
		}
	}
	s.Discard()
	return nil
}

// Discard drops every buffered operation.
func (s *Staging) Discard() {
	s.writes = make(map[string]interface{})
	s.dels = make(map[string]struct{})
}
