// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about chart builds, cache operations, and ephemeris calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetChartHooks(&myChartHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Chart().OnBuildStart(ctx, division)
//	// ... build the chart ...
//	observability.Chart().OnBuildComplete(ctx, division, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Chart Hooks
// =============================================================================

// ChartHooks receives events from divisional chart construction.
type ChartHooks interface {
	// Build events, one pair per division
	OnBuildStart(ctx context.Context, division int)
	OnBuildComplete(ctx context.Context, division int, duration time.Duration, err error)

	// Run events, one pair per pipeline request
	OnRunStart(ctx context.Context, requestID string, divisions []int)
	OnRunComplete(ctx context.Context, requestID string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Ephemeris Hooks
// =============================================================================

// EphemerisHooks receives events from ephemeris provider calls.
type EphemerisHooks interface {
	// OnFetchStart records an outgoing position request.
	OnFetchStart(ctx context.Context, service string)

	// OnFetchComplete records a completed position request.
	OnFetchComplete(ctx context.Context, service string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopChartHooks is a no-op implementation of ChartHooks.
type NoopChartHooks struct{}

func (NoopChartHooks) OnBuildStart(context.Context, int)                           {}
func (NoopChartHooks) OnBuildComplete(context.Context, int, time.Duration, error)  {}
func (NoopChartHooks) OnRunStart(context.Context, string, []int)                   {}
func (NoopChartHooks) OnRunComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopEphemerisHooks is a no-op implementation of EphemerisHooks.
type NoopEphemerisHooks struct{}

func (NoopEphemerisHooks) OnFetchStart(context.Context, string)                          {}
func (NoopEphemerisHooks) OnFetchComplete(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	chartHooks ChartHooks     = NoopChartHooks{}
	cacheHooks CacheHooks     = NoopCacheHooks{}
	ephemHooks EphemerisHooks = NoopEphemerisHooks{}
	hooksMu    sync.RWMutex
)

// SetChartHooks registers custom chart hooks.
// This should be called once at application startup before any chart builds.
func SetChartHooks(h ChartHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		chartHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetEphemerisHooks registers custom ephemeris hooks.
// This should be called once at application startup before any position fetches.
func SetEphemerisHooks(h EphemerisHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		ephemHooks = h
	}
}

// Chart returns the registered chart hooks.
func Chart() ChartHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return chartHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Ephemeris returns the registered ephemeris hooks.
func Ephemeris() EphemerisHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return ephemHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	chartHooks = NoopChartHooks{}
	cacheHooks = NoopCacheHooks{}
	ephemHooks = NoopEphemerisHooks{}
}
