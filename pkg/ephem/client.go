package ephem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nakshatralabs/jyotir/pkg/cache"
	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/observability"
	"github.com/nakshatralabs/jyotir/pkg/varga"

	apperrors "github.com/nakshatralabs/jyotir/pkg/errors"
)

const httpTimeout = 10 * time.Second

// positionsResponse is the wire format of the positions endpoint.
type positionsResponse struct {
	Ascendant float64                `json:"ascendant"`
	Bodies    map[graha.Body]float64 `json:"bodies"`
}

// Client fetches sidereal positions from a remote ephemeris service over
// HTTP, with response caching and automatic retries on transient failures.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *http.Client
	baseURL string
	service string
	backend cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
}

// NewClient creates an ephemeris client for the service at baseURL.
//
// Parameters:
//   - baseURL: Service root, e.g. "https://ephem.example.com"
//   - backend: Cache backend for response caching (use cache.NewNullCache() for no caching)
//   - cacheTTL: How long responses are cached (positions for a fixed moment never change,
//     so long TTLs are safe)
//
// The returned Client is safe for concurrent use.
func NewClient(baseURL string, backend cache.Cache, cacheTTL time.Duration) (*Client, error) {
	if err := apperrors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse service URL")
	}
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: baseURL,
		service: u.Host,
		backend: backend,
		keyer:   cache.NewDefaultKeyer(),
		ttl:     cacheTTL,
	}, nil
}

// Positions resolves the request to raw longitudes.
//
// Cached responses are returned without a network call. On a miss the
// service is queried with up to three attempts for transient failures
// (timeouts, connection errors, 5xx responses).
//
// Returns:
//   - [apperrors.ErrCodeNotFound] if the service has no data for the moment
//   - [apperrors.ErrCodeNetwork] for HTTP failures after retries
//   - [apperrors.ErrCodeInvalidCoordinates] for out-of-range coordinates
func (c *Client) Positions(ctx context.Context, req Request) (varga.Longitudes, error) {
	if err := req.Validate(); err != nil {
		return varga.Longitudes{}, err
	}

	key := c.keyer.EphemerisKey(c.service, cache.EphemerisKeyOpts{
		Time:      req.Time,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Ayanamsha: req.Ayanamsha,
	})

	if data, hit, _ := c.backend.Get(ctx, key); hit {
		observability.Cache().OnCacheHit(ctx, "ephemeris")
		var resp positionsResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			return resp.longitudes()
		}
		// Corrupt entry: drop it and fall through to a fresh fetch.
		_ = c.backend.Delete(ctx, key)
	} else {
		observability.Cache().OnCacheMiss(ctx, "ephemeris")
	}

	start := time.Now()
	observability.Ephemeris().OnFetchStart(ctx, c.service)

	var raw []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var fetchErr error
		raw, fetchErr = c.fetch(ctx, req)
		return fetchErr
	})
	observability.Ephemeris().OnFetchComplete(ctx, c.service, time.Since(start), err)
	if err != nil {
		if apperrors.GetCode(err) != "" {
			return varga.Longitudes{}, err
		}
		return varga.Longitudes{}, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch positions from %s", c.service)
	}

	var resp positionsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return varga.Longitudes{}, apperrors.Wrap(apperrors.ErrCodeInternal, err, "decode positions response")
	}
	longs, err := resp.longitudes()
	if err != nil {
		return varga.Longitudes{}, err
	}

	if err := c.backend.Set(ctx, key, raw, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "ephemeris", len(raw))
	}
	return longs, nil
}

// fetch performs one GET against the positions endpoint. Transient failures
// are wrapped with cache.Retryable so RetryWithBackoff retries them.
func (c *Client) fetch(ctx context.Context, req Request) ([]byte, error) {
	q := url.Values{}
	q.Set("t", req.Time.UTC().Format(time.RFC3339Nano))
	q.Set("lat", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	if req.Ayanamsha != "" {
		q.Set("ayanamsha", req.Ayanamsha)
	}
	endpoint := c.baseURL + "/positions?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return io.ReadAll(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "no ephemeris data for the requested moment")
	case resp.StatusCode >= 500:
		return nil, cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, resp.StatusCode))
	default:
		return nil, apperrors.New(apperrors.ErrCodeNetwork, "unexpected status %d", resp.StatusCode)
	}
}

// longitudes converts the wire response, verifying all nine bodies arrived.
func (r positionsResponse) longitudes() (varga.Longitudes, error) {
	if err := checkResponseBodies(r.Bodies); err != nil {
		return varga.Longitudes{}, err
	}
	return varga.Longitudes{Ascendant: r.Ascendant, Bodies: r.Bodies}, nil
}

// Ensure Client implements Provider.
var _ Provider = (*Client)(nil)
