package bustracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bustracker_polls_total",
		Help: "Successful polls of the location feed",
	})
	pollErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bustracker_poll_errors_total",
		Help: "Polls that failed or returned an unusable payload",
	})
	samplesRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bustracker_samples_rejected_total",
		Help: "Samples dropped for non-finite coordinates",
	})
	framesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bustracker_frames_total",
		Help: "Animation frames produced",
	})
	recentersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bustracker_recenters_total",
		Help: "View recenters (fires once, on first placement)",
	})
	websocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bustracker_websocket_clients",
		Help: "Currently connected websocket clients",
	})
)
