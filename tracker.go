package bustracker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/martazahmad1/bus-tracker/config"
	"github.com/martazahmad1/bus-tracker/feed"
	"github.com/martazahmad1/bus-tracker/render"
	"github.com/martazahmad1/bus-tracker/tracking"
	"github.com/martazahmad1/bus-tracker/utils"
)

// Tracker wires the poller, the animation session and the broadcast hub
// together. One instance exists per process; it owns the single tracked
// vehicle.
type Tracker struct {
	cfg     config.AppConfig
	session *tracking.Session
	hub     *Hub
	logger  zerolog.Logger

	mu        sync.Mutex
	connected bool
}

// frameMessage is pushed to browsers for every animation frame. Recenter is
// set only on the very first marker placement.
type frameMessage struct {
	Type     string  `json:"type"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Recenter bool    `json:"recenter,omitempty"`
}

// statusMessage is pushed to browsers after every poll result so the sidebar
// reflects connectivity without waiting for the next frame.
type statusMessage struct {
	Type      string `json:"type"`
	Connected bool   `json:"connected"`
	Sidebar   string `json:"sidebar"`
}

// NewTracker builds a tracker from the application configuration.
func NewTracker(cfg config.AppConfig, logger zerolog.Logger) *Tracker {
	return &Tracker{
		cfg:     cfg,
		session: tracking.NewSession(time.Duration(cfg.Animation.DurationMS) * time.Millisecond),
		hub:     NewHub(logger),
		logger:  logger,
	}
}

// NewSource builds the configured feed source.
func NewSource(cfg config.FeedConfig) feed.Source {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if cfg.Source == "gtfsrt" {
		return feed.NewGTFSRTSource(cfg.EndpointURL, cfg.VehicleID, timeout)
	}
	return feed.NewJSONSource(cfg.EndpointURL, timeout)
}

// Run polls the feed and drives the frame loop until ctx is cancelled. The
// poll timer and the frame timer are independent schedules; they share only
// the session, which serializes access itself.
func (t *Tracker) Run(ctx context.Context) {
	updates := make(chan feed.Update)
	poller := feed.NewPoller(NewSource(t.cfg.Feed), time.Duration(t.cfg.Feed.PollIntervalMS)*time.Millisecond, t.logger)
	go poller.Run(ctx, updates)

	frames := time.NewTicker(tracking.FrameInterval)
	defer frames.Stop()
	for {
		select {
		case <-ctx.Done():
			t.hub.Close()
			return
		case u := <-updates:
			t.handleUpdate(u)
		case <-frames.C:
			t.stepFrame()
		}
	}
}

// handleUpdate applies one poll result. Failures and unusable payloads
// downgrade the status to connecting and leave the marker where it is.
func (t *Tracker) handleUpdate(u feed.Update) {
	if !u.OK {
		pollErrorsTotal.Inc()
		t.setConnected(false)
		t.hub.Broadcast(statusMessage{Type: "status", Connected: false, Sidebar: render.Sidebar(t.Status())})
		return
	}

	recenter, err := t.session.Apply(tracking.Position{Lat: u.Sample.Lat, Lon: u.Sample.Lon})
	if err != nil {
		samplesRejectedTotal.Inc()
		t.logger.Warn().Err(err).Float64("lat", u.Sample.Lat).Float64("lon", u.Sample.Lon).Msg("sample rejected")
		t.setConnected(false)
		t.hub.Broadcast(statusMessage{Type: "status", Connected: false, Sidebar: render.Sidebar(t.Status())})
		return
	}

	pollsTotal.Inc()
	t.setConnected(true)
	if recenter {
		recentersTotal.Inc()
		pos := t.session.Current()
		t.logger.Info().Float64("lat", pos.Lat).Float64("lon", pos.Lon).Msg("first sample placed")
		t.hub.Broadcast(frameMessage{Type: "frame", Lat: pos.Lat, Lon: pos.Lon, Recenter: true})
	}
	t.hub.Broadcast(statusMessage{Type: "status", Connected: true, Sidebar: render.Sidebar(t.Status())})
}

// stepFrame advances the in-flight animation, if any, and broadcasts the
// produced frame.
func (t *Tracker) stepFrame() {
	pos, ok := t.session.Step()
	if !ok {
		return
	}
	framesTotal.Inc()
	t.hub.Broadcast(frameMessage{Type: "frame", Lat: pos.Lat, Lon: pos.Lon})
}

func (t *Tracker) setConnected(v bool) {
	t.mu.Lock()
	t.connected = v
	t.mu.Unlock()
}

// Connected reports whether the latest poll succeeded.
func (t *Tracker) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

// Status derives the sidebar state from the current session. Nothing here is
// cached; every call reflects the latest poll and marker position.
func (t *Tracker) Status() render.Status {
	pos := t.session.Current()
	st := render.Status{
		Connected:   t.Connected(),
		HasPosition: t.session.HasReceivedFirstSample(),
		Lat:         pos.Lat,
		Lon:         pos.Lon,
		TraveledKM:  t.session.TraveledKM(),
	}
	if epoch := t.session.LastSampleUnix(); epoch > 0 {
		st.UpdatedAt = utils.Iso8601FromUnixSeconds(epoch)
	}
	return st
}

// Session exposes the underlying tracker session.
func (t *Tracker) Session() *tracking.Session { return t.session }

// Hub exposes the broadcast hub for the websocket handler.
func (t *Tracker) Hub() *Hub { return t.hub }
