//go:build (linux && !cgo) || (!linux && !darwin && !windows)

package engine

import "time"

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio on linux requires CGO for the native sound libraries.
const AudioAvailable = false

// silentTransport is a no-op transport for builds without audio support.
// The application works, nothing plays.
type silentTransport struct{}

func newTransport() transport {
	return silentTransport{}
}

func (silentTransport) load(src string, onDone func()) error { return nil }

func (silentTransport) pause() {}

func (silentTransport) resume() {}

func (silentTransport) stop() {}

func (silentTransport) seek(d time.Duration) error { return nil }

func (silentTransport) position() time.Duration { return 0 }

func (silentTransport) duration() time.Duration { return 0 }

func (silentTransport) setGain(volume float64, muted bool) {}
