package lighting

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/wildwest/pkg/math"
)

// Config holds the rig tuning.
type Config struct {
	SkyboxSize    float32 // places the sun relative to the sky cube
	HeadlightStep float32 // radians per adjustment
	BeaconSpeed   float32 // rad/s
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		SkyboxSize:    200,
		HeadlightStep: 0.05,
		BeaconSpeed:   3,
	}
}

// SunPosition is the directional sky light vector for a sky cube of the
// given size.
func SunPosition(skyboxSize float32) math.Vec4 {
	return math.Vec4{-1.25 * skyboxSize / 10, 2.5 * skyboxSize / 10, 3 * skyboxSize / 10, 0}
}

// DaySky is the sun preset.
func DaySky(skyboxSize float32) Light {
	l := NewLight()
	l.Position = SunPosition(skyboxSize)
	l.Specular = math.Vec3{X: 1, Y: 1, Z: 1}
	l.Diffuse = math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	l.Ambient = math.Vec3{X: 0.2, Y: 0.2, Z: 0.2}
	return l
}

// NightSky is the moonlight preset: same direction, much dimmer.
func NightSky(skyboxSize float32) Light {
	l := DaySky(skyboxSize)
	l.Diffuse = math.Vec3{X: 0.1, Y: 0.1, Z: 0.1}
	l.Ambient = math.Vec3{X: 0.05, Y: 0.05, Z: 0.05}
	return l
}

// Headlight is the vehicle spot light preset.
func Headlight() Light {
	l := NewLight()
	l.Position = math.Vec4{0, 0, 0, 1}
	l.Specular = math.Vec3{X: 0.8, Y: 0.8, Z: 0.4}
	l.Diffuse = math.Vec3{X: 0.8, Y: 0.8, Z: 0.4}
	l.ConeAngle = math.Pi / 8
	l.Radius = 5
	return l
}

// Beacon is the rotating blue spot light preset.
func Beacon() Light {
	l := NewLight()
	l.Position = math.Vec4{0, 0, 0, 1}
	l.Specular = math.Vec3{X: 1, Y: 1, Z: 1}
	l.Diffuse = math.Vec3{X: 0, Y: 0, Z: 1}
	l.ConeAngle = math.Pi / 8
	l.Radius = 5
	return l
}

// Rig owns the scene lights. There is always exactly one sky light and
// one headlight; the beacon is optional.
type Rig struct {
	cfg Config
	set *Set

	sky    ID
	night  bool
	head   ID
	beacon ID

	// Headlight aim. Yaw π/2 points along the vehicle at heading zero.
	headPitch float32
	headYaw   float32
}

// NewRig creates a daytime rig.
func NewRig(cfg Config) (*Rig, error) {
	r := &Rig{
		cfg:     cfg,
		set:     NewSet(),
		headYaw: math.HalfPi,
	}
	var err error
	if r.sky, err = r.set.Add(DaySky(cfg.SkyboxSize)); err != nil {
		return nil, fmt.Errorf("add sky light: %w", err)
	}
	if r.head, err = r.set.Add(Headlight()); err != nil {
		return nil, fmt.Errorf("add headlight: %w", err)
	}
	r.aimHeadlight(0)
	return r, nil
}

// Set exposes the underlying light set.
func (r *Rig) Set() *Set {
	return r.set
}

// Lights returns the lights to upload this frame.
func (r *Rig) Lights() []Light {
	return r.set.Lights()
}

// Night reports whether the night preset is active.
func (r *Rig) Night() bool {
	return r.night
}

// SetNight swaps the sky light for the night or day preset. The old sky
// light is removed before the new one is added, so there is never more
// than one.
func (r *Rig) SetNight(night bool) error {
	r.set.Remove(r.sky)
	l := DaySky(r.cfg.SkyboxSize)
	if night {
		l = NightSky(r.cfg.SkyboxSize)
	}
	id, err := r.set.Add(l)
	if err != nil {
		return fmt.Errorf("add sky light: %w", err)
	}
	r.sky = id
	r.night = night
	return nil
}

// Sky returns the current sky light.
func (r *Rig) Sky() Light {
	return *r.set.Get(r.sky)
}

// Headlight returns the current headlight.
func (r *Rig) Headlight() Light {
	return *r.set.Get(r.head)
}

// BeaconOn reports whether the beacon is present.
func (r *Rig) BeaconOn() bool {
	return r.set.Get(r.beacon) != nil
}

// ToggleBeacon adds a fresh beacon or removes the current one. It
// returns the new state.
func (r *Rig) ToggleBeacon() (bool, error) {
	if r.set.Remove(r.beacon) {
		r.beacon = ID{}
		return false, nil
	}
	id, err := r.set.Add(Beacon())
	if err != nil {
		return false, fmt.Errorf("add beacon: %w", err)
	}
	r.beacon = id
	return true, nil
}

// Beacon returns the beacon light and whether it is on.
func (r *Rig) Beacon() (Light, bool) {
	l := r.set.Get(r.beacon)
	if l == nil {
		return Light{}, false
	}
	return *l, true
}

// AdjustHeadlight nudges the headlight aim by whole steps. Both angles
// stay inside (-2π, 2π).
func (r *Rig) AdjustHeadlight(pitchSteps, yawSteps float32) {
	r.headPitch = math.WrapAngle(r.headPitch + pitchSteps*r.cfg.HeadlightStep)
	r.headYaw = math.WrapAngle(r.headYaw + yawSteps*r.cfg.HeadlightStep)
}

// HeadlightAngles returns the headlight pitch and yaw.
func (r *Rig) HeadlightAngles() (pitch, yaw float32) {
	return r.headPitch, r.headYaw
}

// Update moves the vehicle lights to pos and re-aims them. elapsed is
// the total running time in seconds.
func (r *Rig) Update(pos math.Vec3, heading, elapsed float32) {
	if h := r.set.Get(r.head); h != nil {
		h.Position = math.Point(pos)
	}
	r.aimHeadlight(heading)

	if b := r.set.Get(r.beacon); b != nil {
		b.Position = math.Point(pos)
		s, c := math32.Sincos(elapsed * r.cfg.BeaconSpeed)
		b.ConeDirection = math.Vec3{X: c, Z: s}.Normalize()
	}
}

func (r *Rig) aimHeadlight(heading float32) {
	h := r.set.Get(r.head)
	if h == nil {
		return
	}
	h.ConeDirection = coneDirection(r.headPitch, r.headYaw-heading)
}

// coneDirection is the unit vector for a pitch/yaw pair with yaw measured
// from +X toward +Z.
func coneDirection(pitch, yaw float32) math.Vec3 {
	sp, cp := math32.Sincos(pitch)
	sy, cy := math32.Sincos(yaw)
	return math.Vec3{X: cp * cy, Y: sp, Z: cp * sy}.Normalize()
}
