//go:build (linux && cgo) || windows || darwin

package engine

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// beepTransport plays mp3 audio through beep's speaker.
type beepTransport struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	gain        *effects.Volume
}

func newTransport() transport {
	return &beepTransport{
		sampleRate: beep.SampleRate(44100),
	}
}

// fetchSource reads the full audio source into memory, from disk or over
// http(s). Decoding from memory keeps seeking cheap.
func fetchSource(src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		client := &http.Client{Timeout: 5 * time.Minute}
		resp, err := client.Get(src)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetching %s: %s", src, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(src)
}

func (t *beepTransport) load(src string, onDone func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()

	data, err := fetchSource(src)
	if err != nil {
		return err
	}

	streamer, format, err := mp3.Decode(nopCloser{bytes.NewReader(data)})
	if err != nil {
		return err
	}

	if !t.initialized {
		if err := speaker.Init(t.sampleRate, t.sampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return err
		}
		t.initialized = true
	}

	t.streamer = streamer
	t.format = format

	resampled := beep.Resample(4, format.SampleRate, t.sampleRate, streamer)
	t.ctrl = &beep.Ctrl{Streamer: resampled}
	t.gain = &effects.Volume{Streamer: t.ctrl, Base: 2}

	speaker.Play(beep.Seq(t.gain, beep.Callback(func() {
		// Separate goroutine: the callback runs under the speaker lock
		// and onDone will want to talk to the transport again.
		go onDone()
	})))

	return nil
}

func (t *beepTransport) pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctrl != nil {
		speaker.Lock()
		t.ctrl.Paused = true
		speaker.Unlock()
	}
}

func (t *beepTransport) resume() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctrl != nil {
		speaker.Lock()
		t.ctrl.Paused = false
		speaker.Unlock()
	}
}

func (t *beepTransport) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *beepTransport) stopLocked() {
	if t.ctrl != nil {
		speaker.Lock()
		t.ctrl.Paused = true
		speaker.Unlock()
	}
	if t.streamer != nil {
		t.streamer.Close()
		t.streamer = nil
	}
	t.ctrl = nil
	t.gain = nil
}

func (t *beepTransport) seek(d time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.streamer == nil {
		return nil
	}

	speaker.Lock()
	defer speaker.Unlock()
	return t.streamer.Seek(t.format.SampleRate.N(d))
}

func (t *beepTransport) position() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.streamer == nil {
		return 0
	}

	speaker.Lock()
	pos := t.streamer.Position()
	speaker.Unlock()

	return t.format.SampleRate.D(pos)
}

func (t *beepTransport) duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.streamer == nil {
		return 0
	}

	return t.format.SampleRate.D(t.streamer.Len())
}

func (t *beepTransport) setGain(volume float64, muted bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.gain == nil {
		return
	}

	speaker.Lock()
	t.gain.Silent = muted || volume <= 0
	if volume > 0 {
		t.gain.Volume = math.Log2(volume)
	}
	speaker.Unlock()
}

// nopCloser wraps a bytes.Reader to implement io.ReadCloser.
type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
