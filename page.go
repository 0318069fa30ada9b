package bustracker

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/martazahmad1/bus-tracker/config"
)

//go:embed index.html
var indexHTML embed.FS

type pageData struct {
	VehicleID   string
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	TileURL     string
	Attribution string
	AccessToken string
}

// handleIndex serves the embedded map page with the configured viewport and
// tile layer baked in.
func handleIndex(cfg config.AppConfig, logger zerolog.Logger) http.HandlerFunc {
	tmpl, err := template.ParseFS(indexHTML, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			logger.Error().Err(err).Msg("map page template error")
			http.Error(w, "map page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{
			VehicleID:   cfg.Feed.VehicleID,
			CenterLat:   cfg.Map.CenterLat,
			CenterLon:   cfg.Map.CenterLon,
			Zoom:        cfg.Map.Zoom,
			TileURL:     cfg.Map.TileURL,
			Attribution: cfg.Map.Attribution,
			AccessToken: cfg.Map.AccessToken,
		}
		if err := tmpl.Execute(w, data); err != nil {
			logger.Error().Err(err).Msg("map page render error")
		}
	}
}
