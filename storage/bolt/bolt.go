// Package bolt is a Storage backed by a bbolt file.
package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Comcast/collate/storage"
	"github.com/Comcast/collate/util"

	bolt "go.etcd.io/bbolt"
)

var bucket = []byte("profiles")

// ErrNotOpen occurs when the Storage is used before Open.
var ErrNotOpen = errors.New("storage isn't open")

type Storage struct {
	Debug    bool
	filename string
	db       *bolt.DB
}

func NewStorage(filename string) (*Storage, error) {
	if filename == "" {
		return nil, errors.New("no filename")
	}
	return &Storage{
		filename: filename,
	}, nil
}

// Open opens (and maybe creates) the database file.
func (s *Storage) Open(ctx context.Context) error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	db, err := bolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return err
	}
	s.db = db
	s.logf("Open %s", s.filename)
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	s.logf("Close %s", s.filename)
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Storage) logf(format string, args ...interface{}) {
	if s.Debug {
		util.Logger().Debugf("bolt storage "+format, args...)
	}
}

func (s *Storage) Put(ctx context.Context, p *storage.Profile) error {
	if s.db == nil {
		return ErrNotOpen
	}
	if p == nil || p.Name == "" {
		return storage.ErrNoName
	}
	js, err := json.Marshal(p)
	if err != nil {
		return err
	}
	s.logf("Put %s %s", p.Name, js)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(p.Name), js)
	})
}

func (s *Storage) Get(ctx context.Context, name string) (*storage.Profile, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	s.logf("Get %s", name)
	var p storage.Profile
	err := s.db.View(func(tx *bolt.Tx) error {
		js := tx.Bucket(bucket).Get([]byte(name))
		if js == nil {
			return fmt.Errorf("%q: %w", name, storage.ErrNotFound)
		}
		return json.Unmarshal(js, &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) List(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	acc := make([]string, 0, 8)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			acc = append(acc, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logf("List found %d", len(acc))
	return acc, nil
}

func (s *Storage) Delete(ctx context.Context, name string) error {
	if s.db == nil {
		return ErrNotOpen
	}
	s.logf("Delete %s", name)
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		key := []byte(name)
		if b.Get(key) == nil {
			return fmt.Errorf("%q: %w", name, storage.ErrNotFound)
		}
		return b.Delete(key)
	})
}
