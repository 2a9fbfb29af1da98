package memdb

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
)

// Storage fake de ports.ImageStorage.
type Storage struct {
	mu      sync.Mutex
	Objects map[string]ports.StoredObject
	Data    map[string][]byte
	// RemoveErr si no es nil, Remove falla para todas las claves.
	RemoveErr error
	Removed   []string
	Now       func() time.Time
}

var _ ports.ImageStorage = (*Storage)(nil)

// NewStorage crea un storage vacío.
func NewStorage() *Storage {
	return &Storage{Objects: map[string]ports.StoredObject{}, Data: map[string][]byte{}, Now: time.Now}
}

func (s *Storage) Put(_ context.Context, key string, r io.Reader, size int64, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = ports.StoredObject{Key: key, Size: size, LastModified: s.Now()}
	s.Data[key] = b
	return nil
}

func (s *Storage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	delete(s.Objects, key)
	delete(s.Data, key)
	s.Removed = append(s.Removed, key)
	return nil
}

func (s *Storage) List(_ context.Context, prefix string) ([]ports.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ports.StoredObject
	for k, o := range s.Objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Storage) URL(key string) string { return "http://cdn.test/" + key }

// Cache fake de ports.SettingsCache.
type Cache struct {
	Entry       map[string]*string
	Has         bool
	Invalidated int
}

var _ ports.SettingsCache = (*Cache)(nil)

func (c *Cache) Get(_ context.Context) (map[string]*string, bool, error) {
	return c.Entry, c.Has, nil
}

func (c *Cache) Set(_ context.Context, m map[string]*string) error {
	c.Entry, c.Has = m, true
	return nil
}

func (c *Cache) Invalidate(_ context.Context) error {
	c.Entry, c.Has = nil, false
	c.Invalidated++
	return nil
}
