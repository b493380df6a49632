// Package engine is the playback engine: one audio transport shared by
// the whole application, with transport controls, live position, and the
// completion side effect that feeds finished lectures into the streak.
package engine

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/nitaidas/sadhana/cmd/common/catalog"
	"github.com/nitaidas/sadhana/cmd/common/progress"
)

// transport is the underlying audio output. Implementations are not
// required to be safe for use from multiple engines; the engine
// serializes access.
type transport interface {
	// load decodes src (a local path or http(s) URL) and starts playing
	// it from the beginning. onDone fires once on natural completion.
	load(src string, onDone func()) error
	pause()
	resume()
	stop()
	seek(d time.Duration) error
	position() time.Duration
	duration() time.Duration
	setGain(volume float64, muted bool)
}

// CompletionFunc is invoked once per naturally completed lecture, after
// the streak has been durably updated. Fire-and-forget: panics are
// swallowed and never reach the engine.
type CompletionFunc func(catalog.Lecture)

// Status is a point-in-time snapshot of playback state.
type Status struct {
	Current  *catalog.Lecture
	Playing  bool
	Position time.Duration
	Duration time.Duration
	Volume   float64
	Muted    bool
}

// Engine mediates the single active audio transport. Exactly one lecture
// is current at a time; starting another one detaches the previous
// transport context so its late callbacks cannot touch the new state.
type Engine struct {
	store      *progress.Store
	onComplete CompletionFunc
	now        func() time.Time

	mu         sync.Mutex
	transport  transport
	current    *catalog.Lecture
	playing    bool
	loaded     bool
	volume     float64
	muted      bool
	playbackID uint64

	subs    map[int]func()
	nextSub int
}

// New creates the engine. store must not be nil; onComplete may be.
func New(store *progress.Store, onComplete CompletionFunc) *Engine {
	if store == nil {
		panic("engine.New: nil store")
	}
	return &Engine{
		store:      store,
		onComplete: onComplete,
		now:        time.Now,
		transport:  newTransport(),
		volume:     1,
		subs:       map[int]func(){},
	}
}

// Play starts the given lecture. If it is already the current lecture
// with a loaded transport, playback resumes in place instead of
// restarting. Start failures are logged; the engine stays idle.
func (e *Engine) Play(lec catalog.Lecture) {
	e.mu.Lock()

	if e.current != nil && e.current.ID == lec.ID && e.loaded {
		e.transport.resume()
		e.playing = true
		e.mu.Unlock()
		e.notify()
		return
	}

	// New lecture: the previous transport context is torn down first, so
	// any of its still-pending callbacks are already stale by id.
	e.playbackID++
	id := e.playbackID
	e.transport.stop()

	l := lec
	e.current = &l
	e.loaded = false
	e.playing = false

	if err := e.transport.load(lec.AudioURL, func() { e.onTrackEnded(id) }); err != nil {
		slog.Warn("playback failed to start", "lecture", lec.ID, "source", lec.AudioURL, "error", err)
		e.mu.Unlock()
		e.notify()
		return
	}

	e.loaded = true
	e.playing = true
	e.transport.setGain(e.volume, e.muted)
	e.mu.Unlock()
	e.notify()
}

// Pause pauses the transport. No-op when nothing is loaded.
func (e *Engine) Pause() {
	e.mu.Lock()
	if e.loaded {
		e.transport.pause()
		e.playing = false
	}
	e.mu.Unlock()
	e.notify()
}

// Resume resumes a paused transport. No-op when nothing is loaded.
func (e *Engine) Resume() {
	e.mu.Lock()
	if e.loaded {
		e.transport.resume()
		e.playing = true
	}
	e.mu.Unlock()
	e.notify()
}

// Stop halts playback, releases the source and clears the current
// lecture.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.playbackID++
	e.transport.stop()
	e.current = nil
	e.playing = false
	e.loaded = false
	e.mu.Unlock()
	e.notify()
}

// Seek jumps to the given position in seconds, clamped to
// [0, duration]. Non-finite values are ignored.
func (e *Engine) Seek(seconds float64) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return
	}
	e.seekLocked(time.Duration(seconds * float64(time.Second)))
}

// Skip seeks relative to the current position, clamped to [0, duration].
func (e *Engine) Skip(deltaSeconds float64) {
	if math.IsNaN(deltaSeconds) || math.IsInf(deltaSeconds, 0) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return
	}
	e.seekLocked(e.transport.position() + time.Duration(deltaSeconds*float64(time.Second)))
}

func (e *Engine) seekLocked(target time.Duration) {
	if target < 0 {
		target = 0
	}
	if max := e.transport.duration(); target > max {
		target = max
	}
	if err := e.transport.seek(target); err != nil {
		slog.Warn("seek failed", "target", target, "error", err)
	}
}

// SetVolume sets the transport volume, clamped into [0, 1]. Setting a
// nonzero volume clears the mute flag; setting exactly 0 sets it.
func (e *Engine) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	e.mu.Lock()
	e.volume = v
	e.muted = v == 0
	e.transport.setGain(e.volume, e.muted)
	e.mu.Unlock()
	e.notify()
}

// ToggleMute flips the mute flag without touching the stored volume, so
// unmuting restores the previous level.
func (e *Engine) ToggleMute() {
	e.mu.Lock()
	e.muted = !e.muted
	e.transport.setGain(e.volume, e.muted)
	e.mu.Unlock()
	e.notify()
}

// Status returns a snapshot of the playback state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{
		Playing: e.playing,
		Volume:  e.volume,
		Muted:   e.muted,
	}
	if e.current != nil {
		l := *e.current
		st.Current = &l
	}
	if e.loaded {
		st.Position = e.transport.position()
		st.Duration = e.transport.duration()
	}
	return st
}

// Subscribe registers fn to run after every state transition. The
// returned function cancels the subscription.
func (e *Engine) Subscribe(fn func()) func() {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

func (e *Engine) notify() {
	e.mu.Lock()
	fns := make([]func(), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// onTrackEnded handles natural completion. Callbacks from a superseded
// transport context carry a stale id and are dropped. The listening
// credit is written to the store before any subscriber can observe the
// engine as stopped.
func (e *Engine) onTrackEnded(id uint64) {
	e.mu.Lock()
	if id != e.playbackID {
		e.mu.Unlock()
		return
	}
	dur := e.transport.duration()
	var lec *catalog.Lecture
	if e.current != nil {
		l := *e.current
		lec = &l
	}
	e.mu.Unlock()

	// Unknown duration means no minutes to credit.
	if minutes := dur.Minutes(); minutes > 0 {
		e.store.Update(progress.ApplyListening(e.now(), minutes))
	}

	e.mu.Lock()
	if id != e.playbackID {
		// Superseded while crediting; the new context owns the state.
		e.mu.Unlock()
		return
	}
	e.transport.stop()
	e.playing = false
	e.loaded = false
	// current is retained so the UI can keep showing the finished
	// lecture until the next Play or Stop.
	e.mu.Unlock()
	e.notify()

	if lec != nil && e.onComplete != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Warn("completion callback panicked", "lecture", lec.ID, "error", r)
				}
			}()
			e.onComplete(*lec)
		}()
	}
}
