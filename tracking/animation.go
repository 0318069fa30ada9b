package tracking

import (
	"math"
	"time"
)

const (
	// FrameInterval is the target host redraw interval (~60fps).
	FrameInterval = 16 * time.Millisecond
	// MaxFrames caps an animation regardless of duration.
	MaxFrames = 100
)

// Position is a latitude/longitude pair.
type Position struct {
	Lat float64
	Lon float64
}

// Valid reports whether both coordinates are finite.
func (p Position) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0)
}

// Animation linearly interpolates between two positions over a fixed number
// of frames. Frames are advanced by an external scheduler tick; the animation
// holds only progress state.
type Animation struct {
	from   Position
	to     Position
	frames int
	step   int
}

// NewAnimation builds an animation from one position to another over the
// given duration. Frame count is min(ceil(duration/FrameInterval), MaxFrames)
// and never less than one, so a duration at or below one frame interval
// yields a single frame.
func NewAnimation(from, to Position, duration time.Duration) *Animation {
	frames := int(math.Ceil(float64(duration) / float64(FrameInterval)))
	if frames < 1 {
		frames = 1
	}
	if frames > MaxFrames {
		frames = MaxFrames
	}
	return &Animation{from: from, to: to, frames: frames}
}

// Frames returns the total frame count.
func (a *Animation) Frames() int { return a.frames }

// Target returns the animation's end position.
func (a *Animation) Target() Position { return a.to }

// Done reports whether the final frame has been produced.
func (a *Animation) Done() bool { return a.step >= a.frames }

// Advance produces the next frame position. Each axis is interpolated
// independently; the final frame is the target exactly, with no floating
// point residue. Calling Advance on a finished animation keeps returning the
// target.
func (a *Animation) Advance() (Position, bool) {
	if a.step < a.frames {
		a.step++
	}
	if a.step >= a.frames {
		return a.to, true
	}
	progress := float64(a.step) / float64(a.frames)
	return Position{
		Lat: a.from.Lat + (a.to.Lat-a.from.Lat)*progress,
		Lon: a.from.Lon + (a.to.Lon-a.from.Lon)*progress,
	}, false
}
