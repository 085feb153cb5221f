// Package cache is the on-disk store collaborator: a key to bytes map
// with a TTL, persisted as sha256(key)-named meta/body file pairs. It
// holds the serialized lab index, assembled labs, and raw lab page HTML
// between runs. No eviction policy beyond TTL expiry is included.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrMiss means the key is absent or its entry has expired.
var ErrMiss = errors.New("cache miss")

// entryMeta sits beside each body file so Info can list entries without
// reversing the hashed filenames.
type entryMeta struct {
	Key     string    `json:"key"`
	SavedAt time.Time `json:"saved_at"`
}

// Store is a disk-backed TTL cache. Dir is created on first use.
type Store struct {
	Dir string
	// TTL after which entries read as misses. Zero disables expiry.
	TTL time.Duration
}

func (s *Store) ensureDir() error {
	if s == nil || s.Dir == "" {
		return errors.New("cache dir not configured")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s *Store) hash(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}

func (s *Store) metaPath(h string) string { return filepath.Join(s.Dir, h+".meta.json") }
func (s *Store) bodyPath(h string) string { return filepath.Join(s.Dir, h+".body") }

// Get returns the stored bytes for key, or ErrMiss when absent/expired.
// Expired entries are removed on the way out.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	h := s.hash(key)
	meta, err := s.readMeta(h)
	if err != nil {
		return nil, ErrMiss
	}
	if s.TTL > 0 && time.Since(meta.SavedAt) > s.TTL {
		_ = os.Remove(s.metaPath(h))
		_ = os.Remove(s.bodyPath(h))
		return nil, ErrMiss
	}
	body, err := os.ReadFile(s.bodyPath(h))
	if err != nil {
		return nil, ErrMiss
	}
	return body, nil
}

// Put stores value under key. The body is written first, then the meta
// file lands atomically via tmp+rename, so a crash never yields a meta
// file pointing at a missing body.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	h := s.hash(key)
	if err := os.WriteFile(s.bodyPath(h), value, 0o644); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	meta := entryMeta{Key: key, SavedAt: time.Now().UTC()}
	tmp := s.metaPath(h) + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create meta: %w", err)
	}
	if err := json.NewEncoder(f).Encode(&meta); err != nil {
		f.Close()
		return fmt.Errorf("encode meta: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.metaPath(h))
}

// Delete removes a single entry. Missing entries are not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	h := s.hash(key)
	_ = os.Remove(s.metaPath(h))
	_ = os.Remove(s.bodyPath(h))
	return nil
}

// Clear removes every entry in the cache directory.
func (s *Store) Clear() error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".meta.json") || strings.HasSuffix(name, ".body") {
			_ = os.Remove(filepath.Join(s.Dir, name))
		}
	}
	return nil
}

// Entry describes one live cache entry for reporting.
type Entry struct {
	Key     string
	SavedAt time.Time
	Size    int64
}

// Info summarizes the cache state for the cache-info command.
type Info struct {
	Dir       string
	SizeBytes int64
	Entries   []Entry
}

// Info scans the cache directory. Expired entries are excluded.
func (s *Store) Info() (Info, error) {
	info := Info{Dir: s.Dir}
	if err := s.ensureDir(); err != nil {
		return info, err
	}
	files, err := os.ReadDir(s.Dir)
	if err != nil {
		return info, err
	}
	for _, f := range files {
		name := f.Name()
		if !strings.HasSuffix(name, ".meta.json") {
			continue
		}
		h := strings.TrimSuffix(name, ".meta.json")
		meta, err := s.readMeta(h)
		if err != nil {
			continue
		}
		if s.TTL > 0 && time.Since(meta.SavedAt) > s.TTL {
			continue
		}
		var size int64
		if st, err := os.Stat(s.bodyPath(h)); err == nil {
			size = st.Size()
		}
		info.Entries = append(info.Entries, Entry{Key: meta.Key, SavedAt: meta.SavedAt, Size: size})
		info.SizeBytes += size
	}
	sort.Slice(info.Entries, func(i, j int) bool { return info.Entries[i].Key < info.Entries[j].Key })
	return info, nil
}

func (s *Store) readMeta(h string) (entryMeta, error) {
	var meta entryMeta
	f, err := os.Open(s.metaPath(h))
	if err != nil {
		return meta, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return meta, err
	}
	return meta, nil
}
