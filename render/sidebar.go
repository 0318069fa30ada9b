package render

import (
	"strconv"
	"strings"
)

// Status is everything the sidebar shows. It is derived fresh on each render;
// nothing here is stored between updates.
type Status struct {
	// Connected is true when the latest poll succeeded and parsed.
	Connected bool
	// HasPosition is true once the marker has been placed; the coordinate
	// pair below is only meaningful then.
	HasPosition bool
	Lat         float64
	Lon         float64
	// TraveledKM is the cumulative distance between accepted samples.
	TraveledKM float64
	// UpdatedAt is the ISO8601 instant of the latest accepted sample, empty
	// when none has arrived.
	UpdatedAt string
}

// Sidebar renders the status card as an HTML fragment. It is a pure function
// of the status, called unconditionally on every update; the host swaps the
// whole fragment in. Rendering never fails on absent data: placeholders stand
// in until the first sample arrives.
//
// The center-map control carries the latest coordinate as data attributes, so
// a recenter click always targets the current position rather than the one
// captured when the card was first created.
func Sidebar(st Status) string {
	var b strings.Builder
	b.WriteString(`<div class="status-card">`)

	b.WriteString(`<div class="status-row"><span class="status-dot `)
	if st.Connected {
		b.WriteString(`status-active"></span><span class="status-label">Active</span>`)
	} else {
		b.WriteString(`status-connecting"></span><span class="status-label">Connecting...</span>`)
	}
	b.WriteString(`</div>`)

	if st.HasPosition {
		b.WriteString(`<div class="status-location">`)
		b.WriteString(formatCoord(st.Lat))
		b.WriteString(", ")
		b.WriteString(formatCoord(st.Lon))
		b.WriteString(`</div>`)
		if st.UpdatedAt != "" {
			b.WriteString(`<div class="status-updated">Updated `)
			b.WriteString(st.UpdatedAt)
			b.WriteString(`</div>`)
		}
		if st.TraveledKM > 0 {
			b.WriteString(`<div class="status-distance">`)
			b.WriteString(strconv.FormatFloat(st.TraveledKM, 'f', 2, 64))
			b.WriteString(` km traveled</div>`)
		}
		b.WriteString(`<button class="center-map" data-lat="`)
		b.WriteString(formatCoord(st.Lat))
		b.WriteString(`" data-lon="`)
		b.WriteString(formatCoord(st.Lon))
		b.WriteString(`">Center Map</button>`)
	} else {
		b.WriteString(`<div class="status-location">Waiting for data...</div>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
