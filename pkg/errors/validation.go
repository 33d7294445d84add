package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateChartName validates the display name of a chart request.
// Names come from user-edited request files, so the rules are conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateChartName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidManifest, "chart name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidManifest, "chart name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidManifest, "chart name contains invalid control characters")
		}
	}
	return nil
}

// ValidateCoordinates validates geographic coordinates for an ephemeris
// request. Both values must be finite; NaN slips past plain range
// comparisons, so it is rejected explicitly. Latitude must lie in
// [-90, 90] and longitude in [-180, 180].
func ValidateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) {
		return New(ErrCodeInvalidCoordinates, "latitude must be finite")
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return New(ErrCodeInvalidCoordinates, "longitude must be finite")
	}
	if latitude < -90 || latitude > 90 {
		return New(ErrCodeInvalidCoordinates, "latitude %v out of range [-90, 90]", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return New(ErrCodeInvalidCoordinates, "longitude %v out of range [-180, 180]", longitude)
	}
	return nil
}

// ValidateURL validates a service URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
