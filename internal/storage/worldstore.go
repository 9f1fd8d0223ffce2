package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"mini-voxel/internal/world"

	"github.com/dgraph-io/badger/v3"
)

var (
	ErrWorldNotFound    = errors.New("world not found")
	ErrInvalidWorldName = errors.New("invalid world name")
	ErrStoreClosed      = errors.New("world store closed")
)

const (
	keyPrefix = "world/"
	dimsKey   = "dims"
	blocksKey = "blocks"
)

// WorldStore is a library of named chunks kept in badger. Each world is two
// keys, world/<name>/dims (X, Y, Z as little-endian uint32) and
// world/<name>/blocks (the raw dump), always written together.
type WorldStore struct {
	db     *badger.DB
	mu     sync.RWMutex
	closed bool
}

// OpenWorldStore opens the library at path. An empty path keeps it in memory.
func OpenWorldStore(path string) (*WorldStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open world store: %w", err)
	}
	return &WorldStore{db: db}, nil
}

// Close closes the underlying database. Further calls fail with ErrStoreClosed.
func (s *WorldStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Save stores c under name, replacing any previous world of that name.
func (s *WorldStore) Save(name string, c *world.Chunk) error {
	if err := validName(name); err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("save %q: nil chunk", name)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}

	dims := encodeDims(c.Dims())
	blocks := c.Bytes()
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(worldKey(name, dimsKey), dims); err != nil {
			return err
		}
		return txn.Set(worldKey(name, blocksKey), blocks)
	})
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	return nil
}

// Load returns the world saved under name.
func (s *WorldStore) Load(name string) (*world.Chunk, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	var dimsRaw, blocks []byte
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		if dimsRaw, err = getValue(txn, worldKey(name, dimsKey)); err != nil {
			return err
		}
		blocks, err = getValue(txn, worldKey(name, blocksKey))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrWorldNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	dims, err := decodeDims(dimsRaw)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	c, err := world.LoadChunk(dims, blocks)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return c, nil
}

// List returns the saved world names in sorted order.
func (s *WorldStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		suffix := "/" + dimsKey
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			if strings.HasSuffix(key, suffix) {
				names = append(names, strings.TrimSuffix(strings.TrimPrefix(key, keyPrefix), suffix))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the world saved under name.
func (s *WorldStore) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(worldKey(name, dimsKey)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %q", ErrWorldNotFound, name)
			}
			return err
		}
		if err := txn.Delete(worldKey(name, dimsKey)); err != nil {
			return err
		}
		return txn.Delete(worldKey(name, blocksKey))
	})
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidWorldName, name)
	}
	return nil
}

func worldKey(name, field string) []byte {
	return []byte(keyPrefix + name + "/" + field)
}

func getValue(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func encodeDims(d world.Dims) []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:], uint32(d.X))
	binary.LittleEndian.PutUint32(buf[4:], uint32(d.Y))
	binary.LittleEndian.PutUint32(buf[8:], uint32(d.Z))
	return buf
}

func decodeDims(b []byte) (world.Dims, error) {
	if len(b) != 12 {
		return world.Dims{}, fmt.Errorf("%w: dims record of %d bytes", world.ErrInvalidChunkData, len(b))
	}
	d := world.Dims{
		X: int(binary.LittleEndian.Uint32(b[0:])),
		Y: int(binary.LittleEndian.Uint32(b[4:])),
		Z: int(binary.LittleEndian.Uint32(b[8:])),
	}
	if !d.Valid() {
		return world.Dims{}, fmt.Errorf("%w: dims %s", world.ErrInvalidChunkData, d)
	}
	return d, nil
}
