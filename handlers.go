package bustracker

import (
	"encoding/json"
	"net/http"

	"github.com/martazahmad1/bus-tracker/render"
	"github.com/martazahmad1/bus-tracker/utils"
)

// vehicleStatus is the normalized shape served to API consumers.
type vehicleStatus struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	LastUpdate int64   `json:"lastUpdate"`
	ValidUntil string  `json:"validUntil,omitempty"`
	TraveledKM float64 `json:"traveledKm"`
	Animating  bool    `json:"animating"`
}

func handleStatusJSON(t *Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		st := t.Status()
		status := "connecting"
		if st.Connected {
			status = "active"
		}
		epoch := t.Session().LastSampleUnix()
		resp := vehicleStatus{
			ID:         t.cfg.Feed.VehicleID,
			Status:     status,
			Lat:        st.Lat,
			Lon:        st.Lon,
			LastUpdate: epoch,
			ValidUntil: utils.ValidUntilFrom(epoch, t.cfg.Feed.PollIntervalMS),
			TraveledKM: st.TraveledKM,
			Animating:  t.Session().Animating(),
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func handleSidebar(t *Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(render.Sidebar(t.Status())))
	}
}
