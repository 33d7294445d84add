// Package pkg provides the core libraries for Jyotir divisional chart computation.
//
// # Overview
//
// Jyotir computes the sixteen classical divisional charts (shodashavarga) of
// Vedic astrology from sidereal longitudes. The pkg directory is organized
// into four main areas:
//
//  1. [varga] - Domain logic (divisional projection, houses, vargottama)
//  2. [ephem] - Ephemeris service client (position resolution, caching)
//  3. [manifest] - Chart request files (TOML parsing and validation)
//  4. [pipeline] - Orchestration (resolve → build → evaluate)
//
// Supporting packages: [zodiac] (signs and longitude arithmetic), [graha]
// (the nine bodies), [cache] (backends and keying), [observability] (hooks),
// [errors] (coded errors), and [buildinfo] (version metadata).
//
// # Architecture
//
// The typical data flow through Jyotir:
//
//	Manifest file / Ephemeris service
//	         ↓
//	    [ephem] package (resolve sidereal longitudes)
//	         ↓
//	    [varga] package (project longitudes into divisions)
//	         ↓
//	    [pipeline] package (charts + vargottama evaluation)
//	         ↓
//	    Table/JSON/TUI output
//
// # Quick Start
//
// Build a navamsha chart from known longitudes:
//
//	import (
//	    "github.com/nakshatralabs/jyotir/pkg/graha"
//	    "github.com/nakshatralabs/jyotir/pkg/varga"
//	)
//
//	longs := varga.Longitudes{
//	    Ascendant: 102.5,
//	    Bodies: map[graha.Body]float64{
//	        graha.Sun: 250.125,
//	        // ... remaining eight bodies
//	    },
//	}
//
//	chart, _ := varga.BuildChart(longs, 9)
//	pos, _ := chart.Body(graha.Sun)
//	fmt.Println(pos.Sign, pos.House)
//
// Run the full pipeline against an ephemeris service:
//
//	provider, _ := ephem.NewClient(url, backend, 0)
//	runner := pipeline.NewRunner(provider, logger)
//	result, _ := runner.Run(ctx, pipeline.Options{
//	    Request:   ephem.Request{Time: t, Latitude: lat, Longitude: lon},
//	    Divisions: []int{1, 9, 10},
//	})
//
// # Main Packages
//
// ## Core Domain Logic
//
// [varga] - Divisional chart construction for all sixteen harmonics
// (D1 through D60). Each division has a projection rule mapping an absolute
// sidereal longitude to a divisional sign; whole-sign houses are counted from
// the divisional ascendant where the division supports them. Vargottama
// evaluation compares D1 and D9 placements.
//
// [zodiac] - The twelve sidereal signs with modality and element metadata,
// plus longitude normalization and sign arithmetic.
//
// [graha] - The nine classical bodies (Sun through Ketu), including node
// identification for vargottama applicability.
//
// ## Resolution and Input
//
// [ephem] - HTTP client for ephemeris position services with cache-backed
// fetching, retry with backoff, and a [ephem.Static] provider for requests
// that carry their own longitudes.
//
// [manifest] - TOML chart request files. A manifest names the chart and
// supplies either an observation moment (resolved remotely) or explicit
// positions (computed offline).
//
// ## Infrastructure
//
// [pipeline] - Complete chart pipeline (resolve → build → evaluate) used by
// every CLI command. Divisions build concurrently; vargottama is evaluated
// when both D1 and D9 are present.
//
// [cache] - Cache backends (file, Redis, null) with SHA-256 request keying,
// scoped keyers, and retry helpers for transient failures.
//
// [observability] - Hook interfaces for chart builds, cache activity, and
// ephemeris fetches. Defaults are no-ops; register implementations to collect
// metrics.
//
// [errors] - Structured errors with stable codes, user-facing messages, and
// input validation helpers.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/varga/...     # Specific package
//	go test -run Example        # Examples only
//
// [varga]: https://pkg.go.dev/github.com/nakshatralabs/jyotir/pkg/varga
// [zodiac]: https://pkg.go.dev/github.com/nakshatralabs/jyotir/pkg/zodiac
// [graha]: https://pkg.go.dev/github.com/nakshatralabs/jyotir/pkg/graha
// [ephem]: https://pkg.go.dev/github.com/nakshatralabs/jyotir/pkg/ephem
// [manifest]: https://pkg.go.dev/github.com/nakshatralabs/jyotir/pkg/manifest
// [pipeline]: https://pkg.go.dev/github.com/nakshatralabs/jyotir/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/nakshatralabs/jyotir/pkg/cache
// [observability]: https://pkg.go.dev/github.com/nakshatralabs/jyotir/pkg/observability
// [errors]: https://pkg.go.dev/github.com/nakshatralabs/jyotir/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/nakshatralabs/jyotir/pkg/buildinfo
// [ephem.Static]: https://pkg.go.dev/github.com/nakshatralabs/jyotir/pkg/ephem#Static
package pkg
