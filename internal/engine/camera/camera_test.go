package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wildwest/internal/engine/input"
	"github.com/Faultbox/wildwest/pkg/math"
)

const eps = 1e-4

type fakeTarget struct {
	pos      math.Vec3
	heading  float32
	throttle float32
}

func (f *fakeTarget) Position() math.Vec3 { return f.pos }
func (f *fakeTarget) Heading() float32    { return f.heading }
func (f *fakeTarget) Throttle() float32   { return f.throttle }

func approx(a, b float32) bool {
	return math32.Abs(a-b) <= eps
}

// forward extracts the look direction from a view matrix.
func forward(v math.Mat4) math.Vec3 {
	return math.Vec3{X: -v[2], Y: -v[6], Z: -v[10]}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"chase", Chase},
		{"tracking", Tracking},
		{"static", Static},
		{"", Chase},
		{"orbit", Chase},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if tt.want.String() != ParseMode(tt.want.String()).String() {
			t.Errorf("String/ParseMode mismatch for %v", tt.want)
		}
	}
}

func TestModeNext(t *testing.T) {
	m := Chase
	seen := []Mode{m}
	for i := 0; i < 3; i++ {
		m = m.Next()
		seen = append(seen, m)
	}
	want := []Mode{Chase, Tracking, Static, Chase}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
}

func TestChaseDistanceClamp(t *testing.T) {
	target := &fakeTarget{}
	r := NewRig(target, DefaultConfig(), Chase)

	for i := 0; i < 50; i++ {
		r.Update(input.Deltas{Scroll: 3}, 0.016)
	}
	if got := r.Chase().Distance; got != MinDistance {
		t.Errorf("distance after zooming in = %f, want %f", got, MinDistance)
	}

	for i := 0; i < 50; i++ {
		r.Update(input.Deltas{Scroll: -3}, 0.016)
	}
	if got := r.Chase().Distance; got != MaxDistance {
		t.Errorf("distance after zooming out = %f, want %f", got, MaxDistance)
	}
}

func TestChasePitchNeedsButton(t *testing.T) {
	r := NewRig(&fakeTarget{}, DefaultConfig(), Chase)
	before := r.Chase()

	r.Update(input.Deltas{DX: 40, DY: 40}, 0.016)
	after := r.Chase()
	if after.Pitch != before.Pitch || after.Yaw != before.Yaw {
		t.Errorf("drag without button changed orientation: %+v -> %+v", before, after)
	}

	r.Update(input.Deltas{DX: 10, DY: 5, Left: true}, 0.016)
	after = r.Chase()
	if !approx(after.Pitch, before.Pitch-0.05) {
		t.Errorf("pitch = %f, want %f", after.Pitch, before.Pitch-0.05)
	}
	if !approx(after.Yaw, -0.1) {
		t.Errorf("yaw = %f, want -0.1", after.Yaw)
	}
}

func TestPitchClamps(t *testing.T) {
	r := NewRig(&fakeTarget{}, DefaultConfig(), Chase)

	r.Update(input.Deltas{DY: -10000, Left: true}, 0.016)
	if p := r.Chase().Pitch; p >= math.HalfPi || !approx(p, maxPitch) {
		t.Errorf("chase pitch up = %f, want just under π/2", p)
	}
	r.Update(input.Deltas{DY: 10000, Left: true}, 0.016)
	if p := r.Chase().Pitch; p != minChasePitch {
		t.Errorf("chase pitch down = %f, want %f", p, float32(minChasePitch))
	}

	for _, m := range []Mode{Static, Tracking} {
		r.SetMode(m)
		r.Update(input.Deltas{DY: -10000}, 0.016)
		var p float32
		if m == Static {
			p = r.Static().Pitch
		} else {
			p = r.Tracking().Pitch
		}
		if p >= math.HalfPi {
			t.Errorf("%v pitch = %f, want < π/2", m, p)
		}
		r.Update(input.Deltas{DY: 10000}, 0.016)
		if m == Static {
			p = r.Static().Pitch
		} else {
			p = r.Tracking().Pitch
		}
		if p <= -math.HalfPi {
			t.Errorf("%v pitch = %f, want > -π/2", m, p)
		}
	}
}

func TestChaseYawRecentre(t *testing.T) {
	cfg := DefaultConfig()
	step := cfg.ResetSpeed * 0.1

	tests := []struct {
		name     string
		yaw      float32
		throttle float32
		want     float32
	}{
		{"within one step snaps to zero", 0.1, 1, 0},
		{"negative within one step", -0.1, 1, 0},
		{"positive moves down", 1, 1, 1 - step},
		{"negative moves up", -1, 1, -1 + step},
		{"below deadzone holds", 1, 0.05, 1},
		{"at deadzone holds", 1, 0.1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &fakeTarget{throttle: tt.throttle}
			r := NewRig(target, cfg, Chase)
			r.chase.Yaw = tt.yaw
			r.Update(input.Deltas{}, 0.1)
			if got := r.Chase().Yaw; !approx(got, tt.want) {
				t.Errorf("yaw = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestChaseYawWraps(t *testing.T) {
	r := NewRig(&fakeTarget{}, DefaultConfig(), Chase)
	for i := 0; i < 20; i++ {
		r.Update(input.Deltas{DX: -100, Left: true}, 0.016)
		if y := r.Chase().Yaw; y >= math.TwoPi || y <= -math.TwoPi {
			t.Fatalf("yaw escaped (-2π, 2π): %f", y)
		}
	}
}

func TestChaseLooksAtTarget(t *testing.T) {
	target := &fakeTarget{pos: math.Vec3{X: 1, Y: 2, Z: 3}}
	r := NewRig(target, DefaultConfig(), Chase)
	r.Update(input.Deltas{}, 0.016)

	sp, cp := math32.Sincos(math.Pi / 8)
	wantPos := math.Vec3{X: 1, Y: 2 + 5*sp, Z: 3 - 5*cp}
	got := r.Position()
	if !approx(got.X, wantPos.X) || !approx(got.Y, wantPos.Y) || !approx(got.Z, wantPos.Z) {
		t.Errorf("position = %+v, want %+v", got, wantPos)
	}

	want := mgl32.LookAtV(
		mgl32.Vec3{wantPos.X, wantPos.Y, wantPos.Z},
		mgl32.Vec3{1, 2, 3},
		mgl32.Vec3{0, 1, 0},
	)
	view := r.View()
	for i := 0; i < 16; i++ {
		if !approx(view[i], want[i]) {
			t.Errorf("view element %d = %f, want %f", i, view[i], want[i])
		}
	}
}

func TestChaseFollowsHeading(t *testing.T) {
	target := &fakeTarget{heading: math.HalfPi}
	r := NewRig(target, DefaultConfig(), Chase)
	r.Update(input.Deltas{}, 0.016)

	// Heading π/2 faces +X, so the camera sits on -X.
	p := r.Position()
	if p.X >= 0 || !approx(p.Z, 0) {
		t.Errorf("position = %+v, want behind the target on -X", p)
	}
}

func TestStaticZoom(t *testing.T) {
	r := NewRig(&fakeTarget{}, DefaultConfig(), Static)
	if got := r.FOV(45); got != MaxZoom {
		t.Fatalf("initial FOV = %f, want %f", got, MaxZoom)
	}

	r.Update(input.Deltas{Scroll: 10}, 0.016)
	if got := r.FOV(45); got != 35 {
		t.Errorf("FOV = %f, want 35", got)
	}
	for i := 0; i < 10; i++ {
		r.Update(input.Deltas{Scroll: 10}, 0.016)
	}
	if got := r.FOV(45); got != MinZoom {
		t.Errorf("FOV = %f, want %f", got, MinZoom)
	}
	r.Update(input.Deltas{Scroll: -1000}, 0.016)
	if got := r.FOV(45); got != MaxZoom {
		t.Errorf("FOV = %f, want %f", got, MaxZoom)
	}

	r.SetMode(Chase)
	if got := r.FOV(60); got != 60 {
		t.Errorf("chase FOV = %f, want default 60", got)
	}
}

func TestStaticPlacement(t *testing.T) {
	spawn := math.Vec3{X: 10, Y: 5, Z: -4}
	target := &fakeTarget{pos: spawn}
	r := NewRig(target, DefaultConfig(), Static)

	target.pos = math.Vec3{X: 100, Y: 100, Z: 100}
	r.Update(input.Deltas{DX: 3, DY: 2}, 0.016)

	want := spawn.Add(staticOffset)
	if got := r.Position(); got != want {
		t.Errorf("static camera moved: %+v, want %+v", got, want)
	}

	f := forward(r.View())
	wantF := front(r.Static().Pitch, r.Static().Yaw)
	if !approx(f.X, wantF.X) || !approx(f.Y, wantF.Y) || !approx(f.Z, wantF.Z) {
		t.Errorf("look direction = %+v, want %+v", f, wantF)
	}
}

func TestTrackingLooksForward(t *testing.T) {
	tests := []struct {
		name    string
		heading float32
	}{
		{"zero", 0},
		{"quarter", math.HalfPi},
		{"arbitrary", 0.7},
		{"negative", -2.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &fakeTarget{pos: math.Vec3{X: 4, Y: 1, Z: 9}, heading: tt.heading}
			r := NewRig(target, DefaultConfig(), Tracking)
			r.Update(input.Deltas{}, 0.016)

			if got := r.Position(); got != (math.Vec3{X: 4, Y: 2, Z: 9}) {
				t.Errorf("position = %+v, want one unit above target", got)
			}
			f := forward(r.View())
			s, c := math32.Sincos(tt.heading)
			if !approx(f.X, s) || !approx(f.Y, 0) || !approx(f.Z, c) {
				t.Errorf("look direction = %+v, want (%f, 0, %f)", f, s, c)
			}
		})
	}
}

func TestInactiveCamerasDoNotDrift(t *testing.T) {
	target := &fakeTarget{throttle: 1}
	r := NewRig(target, DefaultConfig(), Chase)

	r.Update(input.Deltas{DX: 30, DY: -20, Scroll: -4, Left: true}, 0.016)
	chase := r.Chase()
	tracking := r.Tracking()

	r.SetMode(Static)
	for i := 0; i < 100; i++ {
		target.heading += 0.05
		target.pos.X += 1
		r.Update(input.Deltas{DX: 7, DY: 3, Scroll: 1, Left: true}, 0.016)
	}

	if got := r.Chase(); got != chase {
		t.Errorf("chase drifted while inactive: %+v -> %+v", chase, got)
	}
	if got := r.Tracking(); got != tracking {
		t.Errorf("tracking drifted while inactive: %+v -> %+v", tracking, got)
	}

	static := r.Static()
	r.SetMode(Chase)
	if r.Chase().Distance != chase.Distance || r.Chase().Pitch != chase.Pitch {
		t.Errorf("SetMode reset chase state")
	}
	r.Update(input.Deltas{}, 0.016)
	if got := r.Static(); got != static {
		t.Errorf("static drifted while inactive: %+v -> %+v", static, got)
	}
}

func TestSetModeIgnoresInvalid(t *testing.T) {
	r := NewRig(&fakeTarget{}, DefaultConfig(), Tracking)
	r.SetMode(Mode(42))
	if r.Mode() != Tracking {
		t.Errorf("mode = %v, want tracking", r.Mode())
	}
}
