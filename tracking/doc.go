// Package tracking maintains the animated position of a single tracked
// vehicle.
//
// The Session type owns the marker state: the first valid sample places the
// marker directly, later samples start a linear interpolation from the
// marker's current position to the new sample over a fixed number of frames.
// Frames are advanced by the host's scheduler tick, so the animation itself
// never blocks. A sample arriving mid-animation supersedes the in-flight
// transition rather than queueing behind it.
package tracking
