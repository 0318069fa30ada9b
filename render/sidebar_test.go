package render

import (
	"strings"
	"testing"
)

func TestSidebarActiveWithPosition(t *testing.T) {
	out := Sidebar(Status{
		Connected:   true,
		HasPosition: true,
		Lat:         40.0,
		Lon:         -74.0,
		UpdatedAt:   "2024-05-01T12:00:00Z",
	})

	for _, want := range []string{
		"status-active",
		">Active<",
		"40.000000, -74.000000",
		"Updated 2024-05-01T12:00:00Z",
		`data-lat="40.000000"`,
		`data-lon="-74.000000"`,
		"Center Map",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected fragment to contain %q\ngot: %s", want, out)
		}
	}
}

func TestSidebarConnectingWithoutPosition(t *testing.T) {
	out := Sidebar(Status{})

	if !strings.Contains(out, "Connecting...") {
		t.Errorf("expected Connecting... placeholder, got: %s", out)
	}
	if !strings.Contains(out, "Waiting for data...") {
		t.Errorf("expected Waiting for data... placeholder, got: %s", out)
	}
	if strings.Contains(out, "center-map") {
		t.Errorf("no recenter control before the first sample, got: %s", out)
	}
}

func TestSidebarConnectingRetainsLastPosition(t *testing.T) {
	out := Sidebar(Status{
		Connected:   false,
		HasPosition: true,
		Lat:         40.001,
		Lon:         -74.0,
	})

	if !strings.Contains(out, "Connecting...") {
		t.Errorf("expected Connecting... status, got: %s", out)
	}
	if !strings.Contains(out, "40.001000, -74.000000") {
		t.Errorf("last known position should still render, got: %s", out)
	}
}

func TestSidebarRecenterTargetsLatestCoordinate(t *testing.T) {
	first := Sidebar(Status{Connected: true, HasPosition: true, Lat: 40.0, Lon: -74.0})
	second := Sidebar(Status{Connected: true, HasPosition: true, Lat: 41.0, Lon: -75.0})

	if !strings.Contains(first, `data-lat="40.000000"`) {
		t.Errorf("first render should carry the first coordinate, got: %s", first)
	}
	if !strings.Contains(second, `data-lat="41.000000"`) {
		t.Errorf("re-render must refresh the recenter target, got: %s", second)
	}
}

func TestSidebarOmitsZeroDistance(t *testing.T) {
	out := Sidebar(Status{Connected: true, HasPosition: true, Lat: 1, Lon: 2})
	if strings.Contains(out, "km traveled") {
		t.Errorf("distance row should be absent at zero, got: %s", out)
	}
	out = Sidebar(Status{Connected: true, HasPosition: true, Lat: 1, Lon: 2, TraveledKM: 3.456})
	if !strings.Contains(out, "3.46 km traveled") {
		t.Errorf("expected rounded distance row, got: %s", out)
	}
}
