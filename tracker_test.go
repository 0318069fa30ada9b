package bustracker

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/martazahmad1/bus-tracker/config"
	"github.com/martazahmad1/bus-tracker/feed"
)

func testConfig() config.AppConfig {
	return config.AppConfig{
		Server: config.ServerConfig{Port: 8080},
		Feed: config.FeedConfig{
			Source:         "json",
			EndpointURL:    "http://tracker.test/location",
			VehicleID:      "bus-1",
			PollIntervalMS: 5000,
			TimeoutMS:      10000,
		},
		Animation: config.AnimationConfig{DurationMS: 2000},
	}
}

func newTestTracker() *Tracker {
	return NewTracker(testConfig(), zerolog.Nop())
}

func TestFirstPollPlacesMarkerAndActivates(t *testing.T) {
	tr := newTestTracker()

	tr.handleUpdate(feed.Update{Sample: feed.Sample{Lat: 40.0, Lon: -74.0}, OK: true})

	if !tr.Connected() {
		t.Error("tracker should be connected after a successful poll")
	}
	st := tr.Status()
	if !st.HasPosition || st.Lat != 40.0 || st.Lon != -74.0 {
		t.Errorf("expected marker at (40.0, -74.0), got %+v", st)
	}
	if tr.Session().Animating() {
		t.Error("first placement must not animate")
	}
}

func TestSecondPollAnimatesToExactTarget(t *testing.T) {
	tr := newTestTracker()
	tr.handleUpdate(feed.Update{Sample: feed.Sample{Lat: 40.0, Lon: -74.0}, OK: true})
	tr.handleUpdate(feed.Update{Sample: feed.Sample{Lat: 40.001, Lon: -74.0}, OK: true})

	if !tr.Session().Animating() {
		t.Fatal("second sample should start an animation")
	}
	steps := 0
	for tr.Session().Animating() {
		tr.stepFrame()
		steps++
		if steps > 100 {
			t.Fatal("animation exceeded 100 frames")
		}
	}
	st := tr.Status()
	if st.Lat != 40.001 || st.Lon != -74.0 {
		t.Errorf("marker must end exactly at (40.001, -74.0), got (%f, %f)", st.Lat, st.Lon)
	}
}

func TestFailedPollDowngradesStatusButKeepsMarker(t *testing.T) {
	tr := newTestTracker()
	tr.handleUpdate(feed.Update{Sample: feed.Sample{Lat: 40.0, Lon: -74.0}, OK: true})
	tr.handleUpdate(feed.Update{Err: errors.New("connection refused")})

	if tr.Connected() {
		t.Error("tracker should report connecting after a failed poll")
	}
	st := tr.Status()
	if !st.HasPosition || st.Lat != 40.0 || st.Lon != -74.0 {
		t.Errorf("marker must stay at its last position, got %+v", st)
	}
}

func TestFailedPollBeforeFirstSample(t *testing.T) {
	tr := newTestTracker()
	tr.handleUpdate(feed.Update{Err: errors.New("boom")})

	st := tr.Status()
	if st.Connected || st.HasPosition {
		t.Errorf("no marker and no connection expected, got %+v", st)
	}
}

func TestRejectedSampleKeepsMarker(t *testing.T) {
	tr := newTestTracker()
	tr.handleUpdate(feed.Update{Sample: feed.Sample{Lat: 40.0, Lon: -74.0}, OK: true})
	tr.handleUpdate(feed.Update{Sample: feed.Sample{Lat: math.NaN(), Lon: -74.0}, OK: true})

	if tr.Connected() {
		t.Error("rejected sample should downgrade status")
	}
	st := tr.Status()
	if st.Lat != 40.0 || st.Lon != -74.0 {
		t.Errorf("marker must stay at its last position, got (%f, %f)", st.Lat, st.Lon)
	}
}

func TestNewSourceSelection(t *testing.T) {
	cfg := testConfig().Feed
	if _, ok := NewSource(cfg).(*feed.JSONSource); !ok {
		t.Errorf("expected JSON source for %q", cfg.Source)
	}
	cfg.Source = "gtfsrt"
	if _, ok := NewSource(cfg).(*feed.GTFSRTSource); !ok {
		t.Error("expected GTFS-RT source")
	}
}
