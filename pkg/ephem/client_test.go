package ephem

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nakshatralabs/jyotir/pkg/cache"
	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/varga"

	apperrors "github.com/nakshatralabs/jyotir/pkg/errors"
)

func testRequest() Request {
	return Request{
		Time:      time.Date(1987, time.March, 14, 5, 30, 0, 0, time.UTC),
		Latitude:  23.1793,
		Longitude: 75.7849,
		Ayanamsha: "lahiri",
	}
}

func testResponse() positionsResponse {
	return positionsResponse{
		Ascendant: 102.5,
		Bodies: map[graha.Body]float64{
			graha.Sun:     250.125,
			graha.Moon:    342.6,
			graha.Mars:    1.5,
			graha.Mercury: 30.0,
			graha.Jupiter: 183.25,
			graha.Venus:   299.0,
			graha.Saturn:  0.0,
			graha.Rahu:    212.75,
			graha.Ketu:    32.75,
		},
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient("ftp://ephem.example.com", nil, time.Hour)
	if err == nil {
		t.Fatal("NewClient() should reject non-http URLs")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("NewClient() error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidInput)
	}
}

func TestClientPositions(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/positions" {
			t.Errorf("path = %q, want /positions", r.URL.Path)
		}
		gotQuery = map[string]string{
			"t":         r.URL.Query().Get("t"),
			"ayanamsha": r.URL.Query().Get("ayanamsha"),
		}
		json.NewEncoder(w).Encode(testResponse())
	}))
	defer server.Close()

	client, err := NewClient(server.URL, cache.NewNullCache(), time.Hour)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	longs, err := client.Positions(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Positions() error: %v", err)
	}
	if longs.Ascendant != 102.5 {
		t.Errorf("Ascendant = %v, want 102.5", longs.Ascendant)
	}
	if longs.Bodies[graha.Sun] != 250.125 {
		t.Errorf("Sun = %v, want 250.125", longs.Bodies[graha.Sun])
	}
	if len(longs.Bodies) != graha.Count {
		t.Errorf("Bodies count = %d, want %d", len(longs.Bodies), graha.Count)
	}
	if gotQuery["t"] != "1987-03-14T05:30:00Z" {
		t.Errorf("moment query = %q, want UTC RFC3339", gotQuery["t"])
	}
	if gotQuery["ayanamsha"] != "lahiri" {
		t.Errorf("ayanamsha query = %q, want lahiri", gotQuery["ayanamsha"])
	}
}

func TestClientPositionsCaching(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(testResponse())
	}))
	defer server.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer backend.Close()

	client, err := NewClient(server.URL, backend, time.Hour)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	ctx := context.Background()
	req := testRequest()
	if _, err := client.Positions(ctx, req); err != nil {
		t.Fatalf("first Positions() error: %v", err)
	}
	longs, err := client.Positions(ctx, req)
	if err != nil {
		t.Fatalf("second Positions() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1 (second request should hit cache)", calls)
	}
	if longs.Bodies[graha.Moon] != 342.6 {
		t.Errorf("cached Moon = %v, want 342.6", longs.Bodies[graha.Moon])
	}

	// A different moment misses the cache
	req2 := req
	req2.Time = req.Time.Add(time.Hour)
	if _, err := client.Positions(ctx, req2); err != nil {
		t.Fatalf("third Positions() error: %v", err)
	}
	if calls != 2 {
		t.Errorf("server calls = %d, want 2 (different moment should miss)", calls)
	}
}

func TestClientPositionsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, cache.NewNullCache(), time.Hour)
	_, err := client.Positions(context.Background(), testRequest())
	if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("Positions() error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeNotFound)
	}
}

func TestClientPositionsRetriesServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(testResponse())
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, cache.NewNullCache(), time.Hour)
	_, err := client.Positions(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Positions() error after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("server calls = %d, want 2", calls)
	}
}

func TestClientPositionsInvalidCoordinates(t *testing.T) {
	client, _ := NewClient("https://ephem.example.com", cache.NewNullCache(), time.Hour)

	req := testRequest()
	req.Latitude = 91
	_, err := client.Positions(context.Background(), req)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidCoordinates) {
		t.Errorf("Positions() error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidCoordinates)
	}
}

func TestClientPositionsMissingBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := testResponse()
		delete(resp.Bodies, graha.Saturn)
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, cache.NewNullCache(), time.Hour)
	_, err := client.Positions(context.Background(), testRequest())
	if !apperrors.Is(err, apperrors.ErrCodeInternal) {
		t.Errorf("Positions() error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInternal)
	}
}

func TestStaticProvider(t *testing.T) {
	resp := testResponse()
	p := &Static{Longitudes: varga.Longitudes{Ascendant: resp.Ascendant, Bodies: resp.Bodies}}

	longs, err := p.Positions(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Positions() error: %v", err)
	}
	if longs.Ascendant != resp.Ascendant {
		t.Errorf("Ascendant = %v, want %v", longs.Ascendant, resp.Ascendant)
	}
	if longs.Bodies[graha.Venus] != 299.0 {
		t.Errorf("Venus = %v, want 299.0", longs.Bodies[graha.Venus])
	}
}
