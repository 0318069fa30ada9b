package feed

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Update is the result of one poll tick. OK is true when the fetch succeeded
// and parsed; otherwise Err carries the cause and Sample is zero.
type Update struct {
	Sample Sample
	OK     bool
	Err    error
}

// Poller fetches from a Source on a fixed interval and forwards every result,
// success or failure, to the updates channel. Failures are absorbed: the next
// tick fires unconditionally, with no backoff.
type Poller struct {
	source   Source
	interval time.Duration
	logger   zerolog.Logger
}

// NewPoller creates a poller for the given source and interval.
func NewPoller(source Source, interval time.Duration, logger zerolog.Logger) *Poller {
	return &Poller{source: source, interval: interval, logger: logger}
}

// Run polls until ctx is cancelled. An immediate fetch precedes the first
// interval tick. Each tick launches its fetch independently: there is no
// overlap guard, so results arrive on updates in completion order, which may
// differ from request order when a fetch outlives the interval.
func (p *Poller) Run(ctx context.Context, updates chan<- Update) {
	p.logger.Info().Dur("interval", p.interval).Msg("poller started")
	go p.poll(ctx, updates)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("poller stopped")
			return
		case <-ticker.C:
			go p.poll(ctx, updates)
		}
	}
}

func (p *Poller) poll(ctx context.Context, updates chan<- Update) {
	sample, err := p.source.Fetch(ctx)
	var u Update
	if err != nil {
		p.logger.Warn().Err(err).Msg("poll failed")
		u = Update{Err: err}
	} else {
		u = Update{Sample: sample, OK: true}
	}
	select {
	case updates <- u:
	case <-ctx.Done():
	}
}
