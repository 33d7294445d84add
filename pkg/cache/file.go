package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores ephemeris responses on disk for CLI runs, so repeated
// charts for the same moment never hit the ephemeris service twice.
type FileCache struct {
	dir string
}

// NewFileCache opens a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// envelope is the on-disk entry format. Expires is a unix timestamp;
// zero means the entry never goes stale, which fits ephemeris positions
// since a moment's longitudes never change.
type envelope struct {
	Payload []byte `json:"payload"`
	Expires int64  `json:"expires,omitempty"`
}

// Get retrieves a value. Corrupt or stale entries are evicted and
// reported as misses so the caller re-fetches.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if e.Expires != 0 && time.Now().Unix() > e.Expires {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return e.Payload, true, nil
}

// Set stores a value.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := envelope{Payload: data}
	// Zero TTL means no expiration; anything else is an absolute deadline.
	if ttl != 0 {
		e.Expires = time.Now().Add(ttl).Unix()
	}

	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, raw, 0644)
}

// Delete removes a value. A missing entry is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to dir/hh/rest.json, fanning entries out over 256
// subdirectories so one directory never holds every cached response.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
