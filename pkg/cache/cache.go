// Package cache provides caching for ephemeris responses and built charts.
//
// The Cache interface abstracts over backends: a file-based cache for CLI
// usage, a Redis cache for server deployments, and a null cache for tests
// or when caching is disabled. Keys are built through the Keyer interface
// so that embedding services can scope them per tenant.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is the storage backend interface.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value by key. The second return value reports
	// whether the key was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache discards every write and always misses on Get. It backs
// --no-cache runs and tests.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (NullCache) Delete(ctx context.Context, key string) error { return nil }

func (NullCache) Close() error { return nil }

// EphemerisKeyOpts identifies an ephemeris request for caching.
// Two requests with identical options yield identical positions.
type EphemerisKeyOpts struct {
	Time      time.Time
	Latitude  float64
	Longitude float64
	Ayanamsha string
}

// ChartKeyOpts identifies a built divisional chart.
type ChartKeyOpts struct {
	Division int
}

// Keyer generates cache keys for the different cached artifacts.
type Keyer interface {
	// EphemerisKey generates a key for a raw ephemeris response.
	EphemerisKey(service string, opts EphemerisKeyOpts) string

	// ChartKey generates a key for a built chart, derived from the
	// hash of the source positions and the division.
	ChartKey(positionsHash string, opts ChartKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// EphemerisKey generates a key for an ephemeris response.
// The moment and place are hashed so keys stay a fixed length.
func (k *DefaultKeyer) EphemerisKey(service string, opts EphemerisKeyOpts) string {
	return hashKey("ephem:"+service, opts.Time.UTC().Format(time.RFC3339Nano), opts.Latitude, opts.Longitude, opts.Ayanamsha)
}

// ChartKey generates a key for a built chart.
func (k *DefaultKeyer) ChartKey(positionsHash string, opts ChartKeyOpts) string {
	return hashKey("chart", positionsHash, opts.Division)
}

// hashKey builds a fixed-length "prefix:sha256(parts)" key.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of data. It keys charts by their source
// positions and fans out the file cache directory layout.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Ensure the in-package backends implement Cache.
var (
	_ Cache = NullCache{}
	_ Keyer = (*DefaultKeyer)(nil)
)
