package bustracker

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status            string `json:"status"`
	Connected         bool   `json:"connected"`
	LatestSampleEpoch int64  `json:"latest_sample_epoch"`
}

func handleHealth(t *Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := healthResponse{
			Status:            "ok",
			Connected:         t.Connected(),
			LatestSampleEpoch: t.Session().LastSampleUnix(),
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
