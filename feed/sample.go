package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidPayload is returned when a fetched body does not carry a usable
// coordinate pair.
var ErrInvalidPayload = errors.New("invalid location payload")

// Sample is one fetched location reading.
type Sample struct {
	Lat float64
	Lon float64
}

// Valid reports whether both coordinates are finite numbers.
func (s Sample) Valid() bool {
	return !math.IsNaN(s.Lat) && !math.IsInf(s.Lat, 0) &&
		!math.IsNaN(s.Lon) && !math.IsInf(s.Lon, 0)
}

// coordinate accepts numeric or numeric-string JSON values.
type coordinate float64

func (c *coordinate) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("parse coordinate %q: %w", text, err)
		}
		*c = coordinate(value)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err == nil {
		*c = coordinate(value)
		return nil
	}

	return fmt.Errorf("coordinate must be a string or number")
}

// locationPayload is the upstream JSON shape: V1 is latitude, V2 is longitude.
type locationPayload struct {
	V1 *coordinate `json:"V1"`
	V2 *coordinate `json:"V2"`
}

func decodeSample(data []byte) (Sample, error) {
	var payload locationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Sample{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if payload.V1 == nil || payload.V2 == nil {
		return Sample{}, fmt.Errorf("%w: missing coordinate field", ErrInvalidPayload)
	}
	s := Sample{Lat: float64(*payload.V1), Lon: float64(*payload.V2)}
	if !s.Valid() {
		return Sample{}, fmt.Errorf("%w: non-finite coordinates", ErrInvalidPayload)
	}
	return s, nil
}
