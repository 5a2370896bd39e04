package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemStorage is an in-memory Storage.
type MemStorage struct {
	sync.RWMutex

	profiles map[string]*Profile
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		profiles: make(map[string]*Profile),
	}
}

func (s *MemStorage) Open(ctx context.Context) error {
	return nil
}

func (s *MemStorage) Close(ctx context.Context) error {
	return nil
}

func (s *MemStorage) Put(ctx context.Context, p *Profile) error {
	if p == nil || p.Name == "" {
		return ErrNoName
	}
	s.Lock()
	s.profiles[p.Name] = p.Copy()
	s.Unlock()
	return nil
}

func (s *MemStorage) Get(ctx context.Context, name string) (*Profile, error) {
	s.RLock()
	p, have := s.profiles[name]
	s.RUnlock()
	if !have {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return p.Copy(), nil
}

func (s *MemStorage) List(ctx context.Context) ([]string, error) {
	s.RLock()
	acc := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		acc = append(acc, name)
	}
	s.RUnlock()
	sort.Strings(acc)
	return acc, nil
}

func (s *MemStorage) Delete(ctx context.Context, name string) error {
	s.Lock()
	defer s.Unlock()
	if _, have := s.profiles[name]; !have {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	delete(s.profiles, name)
	return nil
}
