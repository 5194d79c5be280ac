package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/farmxchain/farmx/pkg/cache"
	"github.com/farmxchain/farmx/pkg/crypt"
	"github.com/farmxchain/farmx/pkg/logger"
)

// ------------------- Memory -------------------

// MemoryBackend keeps everything in process memory. Used by a single portal
// instance and by tests.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: map[string]string{}}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryBackend) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// ------------------- File -------------------

// FileBackend stores a flat JSON object on disk, readable only by the owner.
// It is the CLI's equivalent of browser storage.
type FileBackend struct {
	mu   sync.Mutex
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the file location.
func (f *FileBackend) Path() string { return f.path }

func (f *FileBackend) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session/file: read %s: %w", f.path, err)
	}

	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("session/file: decode %s: %w", f.path, err)
	}
	return data, nil
}

func (f *FileBackend) write(data map[string]string) error {
	if len(data) == 0 {
		err := os.Remove(f.path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("session/file: remove %s: %w", f.path, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("session/file: mkdir: %w", err)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("session/file: encode: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("session/file: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("session/file: rename: %w", err)
	}
	return nil
}

func (f *FileBackend) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *FileBackend) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	data[key] = value
	return f.write(data)
}

func (f *FileBackend) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(data, k)
	}
	return f.write(data)
}

// ------------------- Redis -------------------

// RedisBackend stores keys in the shared Redis connection from pkg/cache,
// refreshing the TTL on every write so idle sessions expire.
type RedisBackend struct {
	ttl time.Duration
}

func NewRedisBackend(ttl time.Duration) *RedisBackend {
	return &RedisBackend{ttl: ttl}
}

func (r *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	return cache.GetString(ctx, key)
}

func (r *RedisBackend) Set(ctx context.Context, key, value string) error {
	return cache.SetString(ctx, key, value, r.ttl)
}

func (r *RedisBackend) Del(ctx context.Context, keys ...string) error {
	return cache.Del(ctx, keys...)
}

// ------------------- Sealed -------------------

// SealedBackend encrypts values before they reach the inner backend. Keys
// stay readable so Redis TTLs and file diffs still make sense.
type SealedBackend struct {
	inner  Backend
	sealer *crypt.Sealer
}

// SealWithKey wraps inner with a sealer derived from key. An empty key
// leaves values in the clear.
func SealWithKey(inner Backend, key string) (Backend, error) {
	if key == "" {
		return inner, nil
	}
	sealer, err := crypt.New(key)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return Seal(inner, sealer), nil
}

// Seal wraps inner. A nil sealer returns inner unchanged.
func Seal(inner Backend, sealer *crypt.Sealer) Backend {
	if sealer == nil {
		return inner
	}
	return &SealedBackend{inner: inner, sealer: sealer}
}

// Get reports values that fail to open as missing, so rotating the key
// signs everyone out instead of breaking reads.
func (s *SealedBackend) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", false, err
	}
	plain, err := s.sealer.Open(v)
	if err != nil {
		logger.WithCtx(ctx).Warn("session: unreadable sealed value", "key", key)
		return "", false, nil
	}
	return string(plain), true, nil
}

func (s *SealedBackend) Set(ctx context.Context, key, value string) error {
	enc, err := s.sealer.Seal([]byte(value))
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, enc)
}

func (s *SealedBackend) Del(ctx context.Context, keys ...string) error {
	return s.inner.Del(ctx, keys...)
}
