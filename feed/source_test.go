package feed

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func fakeClient(statusCode int, body []byte) *http.Client {
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: statusCode,
				Header:     make(http.Header),
				Body:       io.NopCloser(strings.NewReader(string(body))),
			}, nil
		}),
	}
}

func failingClient(err error) *http.Client {
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, err
		}),
	}
}

func TestJSONSourceFetch(t *testing.T) {
	src := &JSONSource{
		httpClient: fakeClient(http.StatusOK, []byte(`{"V1": "40.0", "V2": "-74.0"}`)),
		url:        "http://tracker.test/location",
	}
	sample, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if math.Abs(sample.Lat-40.0) > 1e-9 || math.Abs(sample.Lon+74.0) > 1e-9 {
		t.Errorf("expected (40.0, -74.0), got (%f, %f)", sample.Lat, sample.Lon)
	}
}

func TestJSONSourceFetchHTTPError(t *testing.T) {
	src := &JSONSource{
		httpClient: fakeClient(http.StatusInternalServerError, nil),
		url:        "http://tracker.test/location",
	}
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestJSONSourceFetchTransportError(t *testing.T) {
	src := &JSONSource{
		httpClient: failingClient(errors.New("connection refused")),
		url:        "http://tracker.test/location",
	}
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestJSONSourceFetchMalformedBody(t *testing.T) {
	src := &JSONSource{
		httpClient: fakeClient(http.StatusOK, []byte(`{}`)),
		url:        "http://tracker.test/location",
	}
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func vehicleFeed(t *testing.T, vehicleID string, lat, lon float32) []byte {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfsrtpb.FeedEntity{
			{
				Id: proto.String("1"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Vehicle:  &gtfsrtpb.VehicleDescriptor{Id: proto.String(vehicleID)},
					Position: &gtfsrtpb.Position{Latitude: proto.Float32(lat), Longitude: proto.Float32(lon)},
				},
			},
		},
	}
	data, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("failed to marshal feed: %v", err)
	}
	return data
}

func TestGTFSRTSourceSelectsVehicle(t *testing.T) {
	src := &GTFSRTSource{
		httpClient: fakeClient(http.StatusOK, vehicleFeed(t, "bus-1", 40.0, -74.0)),
		url:        "http://tracker.test/vehicle-positions",
		vehicleID:  "bus-1",
	}
	sample, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if math.Abs(sample.Lat-40.0) > 1e-4 || math.Abs(sample.Lon+74.0) > 1e-4 {
		t.Errorf("expected (40.0, -74.0), got (%f, %f)", sample.Lat, sample.Lon)
	}
}

func TestGTFSRTSourceVehicleMissing(t *testing.T) {
	src := &GTFSRTSource{
		httpClient: fakeClient(http.StatusOK, vehicleFeed(t, "bus-2", 40.0, -74.0)),
		url:        "http://tracker.test/vehicle-positions",
		vehicleID:  "bus-1",
	}
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestGTFSRTSourceBadProtobuf(t *testing.T) {
	src := &GTFSRTSource{
		httpClient: fakeClient(http.StatusOK, []byte("not a protobuf")),
		url:        "http://tracker.test/vehicle-positions",
	}
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}
