package audio

import (
	"errors"
	"testing"
)

func TestGain(t *testing.T) {
	tests := []struct {
		vol      float64
		min, max float64
	}{
		{1.0, -0.01, 0.01},
		{0.5, -1.01, -0.99},
		{0.25, -2.01, -1.99},
		{0.0, -200, -90},
	}

	for _, tt := range tests {
		g := gain(tt.vol)
		if g < tt.min || g > tt.max {
			t.Errorf("gain(%f) = %f, want between %f and %f", tt.vol, g, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestSetMasterVolume(t *testing.T) {
	m := New()
	if m.MasterVolume() != 1.0 {
		t.Errorf("default master volume = %f, want 1.0", m.MasterVolume())
	}

	m.SetMasterVolume(0.5)
	if m.MasterVolume() != 0.5 {
		t.Errorf("master volume = %f, want 0.5", m.MasterVolume())
	}

	m.SetMasterVolume(2.0)
	if m.MasterVolume() != 1.0 {
		t.Errorf("master volume = %f, want 1.0 (clamped)", m.MasterVolume())
	}

	m.SetMasterVolume(-1.0)
	if m.MasterVolume() != 0.0 {
		t.Errorf("master volume = %f, want 0.0 (clamped)", m.MasterVolume())
	}
}

func TestLoopBeforeInit(t *testing.T) {
	m := New()
	if m.Initialized() {
		t.Fatal("new manager reports initialized")
	}
	if err := m.Loop("engine", nil, 1); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Loop before Init = %v, want ErrNotInitialized", err)
	}
	if _, ok := m.Level("engine"); ok {
		t.Error("track registered after failed Loop")
	}

	// No-ops on unknown tracks.
	m.SetLevel("engine", 0.5)
	m.Stop("engine")
	m.Close()
}

func TestRamp(t *testing.T) {
	tests := []struct {
		name             string
		speed, top, idle float64
		want             float64
	}{
		{"at rest", 0, 10, 0.2, 0.2},
		{"half speed", 5, 10, 0.2, 0.6},
		{"reversing", -5, 10, 0.2, 0.6},
		{"over top speed", 30, 10, 0.2, 1},
		{"no top speed", 5, 0, 0.3, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ramp(tt.speed, tt.top, tt.idle)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Ramp(%g, %g, %g) = %g, want %g", tt.speed, tt.top, tt.idle, got, tt.want)
			}
		})
	}
}

// samples is an in-memory beep.StreamSeeker.
type samples struct {
	data [][2]float64
	pos  int
}

func (s *samples) Stream(buf [][2]float64) (int, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	n := copy(buf, s.data[s.pos:])
	s.pos += n
	return n, true
}

func (s *samples) Err() error { return nil }
func (s *samples) Len() int { return len(s.data) }
func (s *samples) Position() int { return s.pos }
func (s *samples) Seek(p int) error { s.pos = p; return nil }

func TestLoopStreamerWraps(t *testing.T) {
	src := &samples{data: [][2]float64{{1, 1}, {2, 2}, {3, 3}}}
	l := &loopStreamer{source: src, resampled: src}

	buf := make([][2]float64, 7)
	n, ok := l.Stream(buf)
	if n != 7 || !ok {
		t.Fatalf("Stream = (%d, %v), want (7, true)", n, ok)
	}
	want := []float64{1, 2, 3, 1, 2, 3, 1}
	for i, w := range want {
		if buf[i][0] != w {
			t.Errorf("sample %d = %g, want %g", i, buf[i][0], w)
		}
	}
}

func TestLoopStreamerEmptySource(t *testing.T) {
	src := &samples{}
	l := &loopStreamer{source: src, resampled: src}

	n, ok := l.Stream(make([][2]float64, 4))
	if n != 0 || ok {
		t.Errorf("Stream = (%d, %v), want (0, false)", n, ok)
	}
}
