// Package camera provides the chase, tracking and static cameras and the
// rig that selects between them.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/wildwest/internal/engine/input"
	"github.com/Faultbox/wildwest/pkg/math"
)

// Mode selects the active camera.
type Mode int

const (
	Chase Mode = iota
	Tracking
	Static
	modeCount
)

func (m Mode) String() string {
	switch m {
	case Tracking:
		return "tracking"
	case Static:
		return "static"
	default:
		return "chase"
	}
}

// ParseMode maps a config string to a Mode. Unknown values select Chase.
func ParseMode(s string) Mode {
	switch s {
	case "tracking":
		return Tracking
	case "static":
		return Static
	default:
		return Chase
	}
}

// Valid reports whether m names a camera.
func (m Mode) Valid() bool {
	return m >= 0 && m < modeCount
}

// Next cycles chase -> tracking -> static -> chase.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// Target is what the chase and tracking cameras follow.
type Target interface {
	Position() math.Vec3
	Heading() float32
	Throttle() float32
}

// Camera limits.
const (
	MinDistance = 2.5
	MaxDistance = 20.0
	MinZoom     = 1.0
	MaxZoom     = 45.0

	pitchEpsilon  = 0.0001
	minChasePitch = 0.1
	maxPitch      = math.HalfPi - pitchEpsilon
	minPitch      = -maxPitch
)

// Config holds the rig tuning.
type Config struct {
	Sensitivity      float32 // radians per pixel of drag
	ResetSpeed       float32 // chase yaw recentre rate, rad/s
	ThrottleDeadzone float32 // throttle above which the chase yaw recentres
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Sensitivity:      0.01,
		ResetSpeed:       math.HalfPi,
		ThrottleDeadzone: 0.1,
	}
}

// ChaseCamera orbits the target and always looks at it. Yaw is relative
// to the target heading and drifts back to zero while driving.
type ChaseCamera struct {
	Distance float32
	Pitch    float32
	Yaw      float32

	position math.Vec3
	view     math.Mat4
}

func newChase() ChaseCamera {
	return ChaseCamera{
		Distance: 5,
		Pitch:    math.Pi / 8,
		view:     math.Identity(),
	}
}

func (c *ChaseCamera) update(t Target, d input.Deltas, cfg Config, dt float32) {
	c.Distance = math.Clamp(c.Distance-d.Scroll, MinDistance, MaxDistance)

	if d.Left {
		c.Pitch = math.Clamp(c.Pitch-d.DY*cfg.Sensitivity, minChasePitch, maxPitch)
		c.Yaw = math.WrapAngle(c.Yaw - d.DX*cfg.Sensitivity)
	}

	if t.Throttle() > cfg.ThrottleDeadzone {
		c.Yaw = math.ApproachZero(c.Yaw, cfg.ResetSpeed*dt)
	}

	angle := c.Yaw + t.Heading()
	sp, cp := math32.Sincos(c.Pitch)
	sa, ca := math32.Sincos(angle)
	h := c.Distance * cp

	focus := t.Position()
	c.position = focus.Add(math.Vec3{X: -h * sa, Y: c.Distance * sp, Z: -h * ca})
	c.view = math.LookAt(c.position, focus, math.Up)
}

// StaticCamera stays where it was placed and looks around freely. Zoom is
// the vertical field of view in degrees.
type StaticCamera struct {
	Pitch float32
	Yaw   float32
	Zoom  float32

	position math.Vec3
	view     math.Mat4
}

// staticOffset places the static camera relative to the spawn point.
var staticOffset = math.Vec3{X: -20, Y: 10, Z: 20}

func newStatic(spawn math.Vec3) StaticCamera {
	c := StaticCamera{
		Yaw:      -math.Pi / 4,
		Zoom:     MaxZoom,
		position: spawn.Add(staticOffset),
	}
	c.look()
	return c
}

func (c *StaticCamera) update(d input.Deltas, cfg Config) {
	c.Zoom = math.Clamp(c.Zoom-d.Scroll, MinZoom, MaxZoom)
	c.Pitch = math.Clamp(c.Pitch-d.DY*cfg.Sensitivity, minPitch, maxPitch)
	c.Yaw = math.WrapAngle(c.Yaw + d.DX*cfg.Sensitivity)
	c.look()
}

func (c *StaticCamera) look() {
	c.view = math.LookAt(c.position, c.position.Add(front(c.Pitch, c.Yaw)), math.Up)
}

// TrackingCamera is mounted on the target, one unit above its origin.
// Yaw is subtracted from the heading so the view stays pointed along the
// vehicle as it turns.
type TrackingCamera struct {
	Pitch float32
	Yaw   float32

	position math.Vec3
	view     math.Mat4
}

// mountHeight is the tracking camera's offset above the target.
const mountHeight = 1

func newTracking() TrackingCamera {
	// front(0, π/2) is +Z, the forward axis at heading zero.
	return TrackingCamera{Yaw: math.HalfPi, view: math.Identity()}
}

func (c *TrackingCamera) update(t Target, d input.Deltas, cfg Config) {
	c.Pitch = math.Clamp(c.Pitch-d.DY*cfg.Sensitivity, minPitch, maxPitch)
	c.Yaw = math.WrapAngle(c.Yaw + d.DX*cfg.Sensitivity)

	c.position = t.Position().Add(math.Vec3{Y: mountHeight})
	c.view = math.LookAt(c.position, c.position.Add(front(c.Pitch, c.Yaw-t.Heading())), math.Up)
}

// front is the unit look direction for a pitch/yaw pair, with yaw
// measured from +X toward +Z.
func front(pitch, yaw float32) math.Vec3 {
	sp, cp := math32.Sincos(pitch)
	sy, cy := math32.Sincos(yaw)
	return math.Vec3{X: cp * cy, Y: sp, Z: cp * sy}.Normalize()
}

// Rig owns one camera of each kind. Only the active one is advanced;
// the others keep their state untouched until selected again.
type Rig struct {
	cfg    Config
	target Target
	mode   Mode

	chase    ChaseCamera
	tracking TrackingCamera
	static   StaticCamera
}

// NewRig creates a rig following target. The static camera is placed
// relative to the target's current position.
func NewRig(target Target, cfg Config, mode Mode) *Rig {
	r := &Rig{
		cfg:      cfg,
		target:   target,
		mode:     mode,
		chase:    newChase(),
		tracking: newTracking(),
		static:   newStatic(target.Position()),
	}
	// Give the chase and tracking views a valid pose before the first frame.
	r.chase.update(target, input.Deltas{}, cfg, 0)
	r.tracking.update(target, input.Deltas{}, cfg)
	return r
}

// Mode returns the active camera.
func (r *Rig) Mode() Mode {
	return r.mode
}

// SetMode selects the active camera. No camera state is reset.
func (r *Rig) SetMode(m Mode) {
	if !m.Valid() {
		return
	}
	r.mode = m
}

// Update advances the active camera with this frame's input.
func (r *Rig) Update(d input.Deltas, dt float32) {
	switch r.mode {
	case Chase:
		r.chase.update(r.target, d, r.cfg, dt)
	case Tracking:
		r.tracking.update(r.target, d, r.cfg)
	case Static:
		r.static.update(d, r.cfg)
	}
}

// View returns the active camera's view matrix.
func (r *Rig) View() math.Mat4 {
	switch r.mode {
	case Tracking:
		return r.tracking.view
	case Static:
		return r.static.view
	default:
		return r.chase.view
	}
}

// Position returns the active camera's eye position.
func (r *Rig) Position() math.Vec3 {
	switch r.mode {
	case Tracking:
		return r.tracking.position
	case Static:
		return r.static.position
	default:
		return r.chase.position
	}
}

// FOV returns the vertical field of view in degrees. Only the static
// camera zooms; the others use def.
func (r *Rig) FOV(def float32) float32 {
	if r.mode == Static {
		return r.static.Zoom
	}
	return def
}

// Chase returns a copy of the chase camera state.
func (r *Rig) Chase() ChaseCamera { return r.chase }

// Tracking returns a copy of the tracking camera state.
func (r *Rig) Tracking() TrackingCamera { return r.tracking }

// Static returns a copy of the static camera state.
func (r *Rig) Static() StaticCamera { return r.static }
