// Package coords parses and validates "lat,lng" coordinate text.
package coords

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/UnknownOlympus/beacon/internal/models"
)

const (
	maxLatitude  = 90
	maxLongitude = 180
	mapsBaseURL  = "https://www.google.com/maps?q="
)

// Both components must carry a literal decimal point; "10,-84" does not match.
var decimalPair = regexp.MustCompile(`^\s*(-?\d+\.\d+)\s*,\s*(-?\d+\.\d+)\s*$`)

// Range validation errors.
var (
	ErrLatitudeOutOfRange  = errors.New("latitude out of range [-90, 90]")
	ErrLongitudeOutOfRange = errors.New("longitude out of range [-180, 180]")
)

// Parse converts text of the form "<lat>,<lng>" into coordinates.
// The match must cover the whole string apart from surrounding whitespace, so text such as
// "Lat 9.93, -84.08" or "1.5,2.5,3.5" is rejected. It returns nil for empty or malformed input. Parsed values are not range checked,
// use Validate for that.
func Parse(text string) *models.Coordinates {
	if text == "" {
		return nil
	}

	match := decimalPair.FindStringSubmatch(text)
	if match == nil {
		return nil
	}

	lat, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return nil
	}

	return &models.Coordinates{Latitude: lat, Longitude: lng}
}

// Validate reports whether the coordinates fall inside the WGS84 ranges.
func Validate(c models.Coordinates) error {
	if c.Latitude < -maxLatitude || c.Latitude > maxLatitude {
		return fmt.Errorf("%w: %v", ErrLatitudeOutOfRange, c.Latitude)
	}
	if c.Longitude < -maxLongitude || c.Longitude > maxLongitude {
		return fmt.Errorf("%w: %v", ErrLongitudeOutOfRange, c.Longitude)
	}

	return nil
}

// Format renders coordinates as "lat,lng" with the shortest exact representation.
func Format(c models.Coordinates) string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// MapsLink returns a Google Maps link pointing at the coordinates.
func MapsLink(c models.Coordinates) string {
	return mapsBaseURL + Format(c)
}
