package tracking

import (
	"errors"
	"sync"
	"time"

	"github.com/martazahmad1/bus-tracker/utils"
)

// ErrBadCoordinate is returned when a sample carries non-finite coordinates;
// the session state is left untouched.
var ErrBadCoordinate = errors.New("non-finite coordinate")

// Session owns the single tracked vehicle's marker state. It is created once
// per process and updated, never replaced: the first valid sample places the
// marker directly, every later sample starts an animation from the marker's
// current position toward the new one.
//
// The session is safe for concurrent use; poll results and frame ticks may
// arrive on different goroutines.
type Session struct {
	mu sync.Mutex

	current        Position
	hasFirstSample bool
	active         *Animation
	duration       time.Duration

	traveledKM     float64
	lastSampleUnix int64

	now func() time.Time
}

// NewSession creates a tracker session. duration is the animation window for
// each marker transition.
func NewSession(duration time.Duration) *Session {
	return &Session{duration: duration, now: time.Now}
}

// Apply feeds a new sample into the session. The returned recenter flag is
// true only for the very first valid sample, which places the marker with no
// intermediate frames; the caller recenters the view exactly once on it.
//
// A sample arriving mid-animation supersedes the in-flight animation: the
// replacement starts from the marker's current, possibly mid-flight, position
// rather than the previous target.
func (s *Session) Apply(p Position) (recenter bool, err error) {
	if !p.Valid() {
		return false, ErrBadCoordinate
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSampleUnix = s.now().Unix()
	if !s.hasFirstSample {
		s.current = p
		s.hasFirstSample = true
		s.active = nil
		return true, nil
	}
	s.traveledKM += utils.HaversineKM(s.current.Lat, s.current.Lon, p.Lat, p.Lon)
	s.active = NewAnimation(s.current, p, s.duration)
	return false, nil
}

// Step advances the active animation by one frame and moves the marker to the
// produced position. It reports whether a frame was produced; with no active
// animation the marker stays put and Step returns the current position with
// false.
func (s *Session) Step() (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return s.current, false
	}
	pos, done := s.active.Advance()
	s.current = pos
	if done {
		s.active = nil
	}
	return pos, true
}

// Cancel drops the in-flight animation, leaving the marker at its current
// position. Superseding via Apply is the usual path; Cancel exists for
// explicit teardown.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

// Current returns the marker's current position.
func (s *Session) Current() Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// HasReceivedFirstSample reports whether the marker has ever been placed.
func (s *Session) HasReceivedFirstSample() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasFirstSample
}

// Animating reports whether a transition is in flight.
func (s *Session) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil
}

// TraveledKM returns the cumulative great-circle distance between accepted
// samples.
func (s *Session) TraveledKM() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traveledKM
}

// LastSampleUnix returns the epoch of the most recently accepted sample, or
// zero when none has arrived.
func (s *Session) LastSampleUnix() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSampleUnix
}
