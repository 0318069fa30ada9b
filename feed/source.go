package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// ErrVehicleNotFound is returned by the GTFS-RT source when the configured
// vehicle has no position in the feed.
var ErrVehicleNotFound = errors.New("vehicle not found in feed")

// Source fetches one location sample from an upstream feed.
type Source interface {
	Fetch(ctx context.Context) (Sample, error)
}

// JSONSource polls an endpoint returning {"V1": <lat>, "V2": <lon>} where the
// coordinates may be numbers or numeric strings.
type JSONSource struct {
	httpClient *http.Client
	url        string
}

// NewJSONSource creates a JSON location source for the given endpoint.
func NewJSONSource(url string, timeout time.Duration) *JSONSource {
	return &JSONSource{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

func (s *JSONSource) Fetch(ctx context.Context) (Sample, error) {
	body, err := fetchBody(ctx, s.httpClient, s.url)
	if err != nil {
		return Sample{}, err
	}
	return decodeSample(body)
}

// GTFSRTSource polls a GTFS-Realtime VehiclePositions feed and selects one
// vehicle's position. An empty vehicle ID selects the first entity carrying a
// position.
type GTFSRTSource struct {
	httpClient *http.Client
	url        string
	vehicleID  string
}

// NewGTFSRTSource creates a GTFS-RT vehicle position source.
func NewGTFSRTSource(url, vehicleID string, timeout time.Duration) *GTFSRTSource {
	return &GTFSRTSource{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		vehicleID:  vehicleID,
	}
}

func (s *GTFSRTSource) Fetch(ctx context.Context) (Sample, error) {
	body, err := fetchBody(ctx, s.httpClient, s.url)
	if err != nil {
		return Sample{}, err
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(body, &fm); err != nil {
		return Sample{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	for _, e := range fm.Entity {
		if e.Vehicle == nil || e.Vehicle.Position == nil {
			continue
		}
		if s.vehicleID != "" {
			if e.Vehicle.Vehicle == nil || e.Vehicle.Vehicle.Id == nil || *e.Vehicle.Vehicle.Id != s.vehicleID {
				continue
			}
		}
		pos := e.Vehicle.Position
		if pos.Latitude == nil || pos.Longitude == nil {
			continue
		}
		sample := Sample{Lat: float64(*pos.Latitude), Lon: float64(*pos.Longitude)}
		if !sample.Valid() {
			return Sample{}, fmt.Errorf("%w: non-finite coordinates", ErrInvalidPayload)
		}
		return sample, nil
	}
	return Sample{}, ErrVehicleNotFound
}

func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
