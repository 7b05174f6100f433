// Package audio plays looping WAV tracks: the prairie ambience and the
// wagon's running sound, whose level follows the player's speed.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker rate every track is resampled to.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when a track is started before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager mixes any number of named looping tracks.
type Manager struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate
	master      float64
	tracks      map[string]*track
}

type track struct {
	source beep.StreamSeekCloser
	ctrl   *beep.Ctrl
	volume *effects.Volume
	level  float64
}

// New creates a manager at full master volume.
func New() *Manager {
	return &Manager{
		master: 1.0,
		tracks: make(map[string]*track),
	}
}

// Init opens the speaker. It fails on machines without an audio device;
// callers treat that as "run silent".
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	m.initialized = true
	return nil
}

// Close stops every track and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name := range m.tracks {
		m.stopLocked(name)
	}
	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// Initialized reports whether Init succeeded.
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.master = clamp(vol, 0, 1)
	for _, t := range m.tracks {
		m.applyLocked(t)
	}
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.master
}

// Loop starts the WAV data as a looping track under name, replacing any
// track already playing under it.
func (m *Manager) Loop(name string, data []byte, level float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav %s: %w", name, err)
	}

	m.stopLocked(name)

	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	t := &track{source: streamer, level: clamp(level, 0, 1)}
	t.ctrl = &beep.Ctrl{Streamer: &loopStreamer{source: streamer, resampled: resampled}}
	t.volume = &effects.Volume{Streamer: t.ctrl, Base: 2}
	m.applyLocked(t)

	m.tracks[name] = t
	speaker.Play(t.volume)
	return nil
}

// SetLevel changes one track's level (0.0 to 1.0). Unknown names are
// ignored.
func (m *Manager) SetLevel(name string, level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tracks[name]
	if !ok {
		return
	}
	level = clamp(level, 0, 1)
	if level == t.level {
		return
	}
	t.level = level
	m.applyLocked(t)
}

// Level returns a track's level and whether it is playing.
func (m *Manager) Level(name string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tracks[name]
	if !ok {
		return 0, false
	}
	return t.level, true
}

// Stop ends a track.
func (m *Manager) Stop(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked(name)
}

func (m *Manager) stopLocked(name string) {
	t, ok := m.tracks[name]
	if !ok {
		return
	}
	delete(m.tracks, name)

	if m.initialized {
		speaker.Lock()
	}
	// A Ctrl without a streamer reports done and the speaker drops it.
	t.ctrl.Streamer = nil
	if m.initialized {
		speaker.Unlock()
	}
	t.source.Close()
}

// applyLocked pushes master * level into the track's volume effect. The
// speaker lock guards the effect against the mixing goroutine.
func (m *Manager) applyLocked(t *track) {
	vol := m.master * t.level
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	t.volume.Silent = vol <= 0
	t.volume.Volume = gain(vol)
}

// gain converts a 0-1 volume to the exponent effects.Volume expects
// with Base 2: vol=1 -> 0, vol=0.5 -> -1.
func gain(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// loopStreamer rewinds its source whenever it runs dry.
type loopStreamer struct {
	source    beep.StreamSeeker
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	rewound := false
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if ok {
			rewound = false
			continue
		}
		// An empty source stays empty after a rewind.
		if rewound && n == 0 {
			return filled, filled > 0
		}
		if err := l.source.Seek(0); err != nil {
			return filled, filled > 0
		}
		rewound = true
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.source.Err()
}

// Ramp maps speed onto a track level rising linearly from idle at rest to
// 1 at top speed.
func Ramp(speed, top, idle float64) float64 {
	if top <= 0 {
		return clamp(idle, 0, 1)
	}
	t := clamp(math.Abs(speed)/top, 0, 1)
	return clamp(idle+(1-idle)*t, 0, 1)
}
