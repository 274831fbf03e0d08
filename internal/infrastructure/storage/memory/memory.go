// Package memory is a process-local ports.KeyValueStore for tests and
// throwaway sessions.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu   sync.RWMutex
	data map[string]string
	// failures maps "op:key" (op is get, set or delete) to an injected error.
	failures map[string]error
}

func New() *Store {
	return &Store{data: make(map[string]string), failures: make(map[string]error)}
}

// FailOn makes op ("get", "set" or "delete") on key return err. A nil err
// clears the failure.
func (s *Store) FailOn(op, key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op+":"+key)
		return
	}
	s.failures[op+":"+key] = err
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failures["get:"+key]; err != nil {
		return "", false, err
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["set:"+key]; err != nil {
		return err
	}
	s.data[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["delete:"+key]; err != nil {
		return err
	}
	delete(s.data, key)
	return nil
}

// Len reports the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
