// Package player drives the vehicle entity from keyboard input across the
// terrain.
package player

import (
	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/wildwest/internal/engine/input"
	"github.com/Faultbox/wildwest/internal/game/entity"
	"github.com/Faultbox/wildwest/internal/logger"
	"github.com/Faultbox/wildwest/pkg/math"
)

// Mode selects the driving model. It is fixed at construction.
type Mode int

const (
	// Basic maps throttle and brake straight to speed.
	Basic Mode = iota
	// PhysicsLite integrates a bicycle-model approximation.
	PhysicsLite
)

func (m Mode) String() string {
	if m == PhysicsLite {
		return "physics"
	}
	return "basic"
}

// ParseMode maps a config string to a Mode. Unknown values select Basic.
func ParseMode(s string) Mode {
	if s == "physics" {
		return PhysicsLite
	}
	return Basic
}

// Ground is the terrain query surface the controller needs.
type Ground interface {
	HeightAt(x, z float32) float32
	IsOnTerrain(x, z float32) bool
	AngleX(x, z, yaw float32) float32
	AngleZ(x, z, yaw float32) float32
}

// Config holds the kinematic constants.
type Config struct {
	Mode Mode

	MoveSpeed     float32 // basic: units/s at full throttle
	RotationSpeed float32 // basic: rad/s at full steer

	EngineForce    float32 // physics: forward accel at full throttle
	BrakeForce     float32 // physics: backward accel at full brake
	EBrakeForce    float32 // physics: decel opposing motion at full e-brake
	Drag           float32 // physics: quadratic drag coefficient
	RollResistance float32 // physics: linear drag coefficient
	Grip           float32 // physics: lateral velocity damping per second
	WheelBase      float32
	MaxSteer       float32 // radians at full steer
	SteerFrequency float64 // spring angular frequency for steering ease
}

// DefaultConfig returns the basic-mode tuning.
func DefaultConfig() Config {
	return Config{
		Mode:           Basic,
		MoveSpeed:      10,
		RotationSpeed:  1.5,
		EngineForce:    8,
		BrakeForce:     12,
		EBrakeForce:    20,
		Drag:           0.05,
		RollResistance: 0.5,
		Grip:           4,
		WheelBase:      2.5,
		MaxSteer:       0.6,
		SteerFrequency: 6,
	}
}

// control indexes the held-key table.
type control int

const (
	ctrlThrottle control = iota
	ctrlBrake
	ctrlLeft
	ctrlRight
	ctrlEBrake
	ctrlCount
)

var bindings = map[input.Key]control{
	input.KeyW:     ctrlThrottle,
	input.KeyUp:    ctrlThrottle,
	input.KeyS:     ctrlBrake,
	input.KeyDown:  ctrlBrake,
	input.KeyA:     ctrlLeft,
	input.KeyLeft:  ctrlLeft,
	input.KeyD:     ctrlRight,
	input.KeyRight: ctrlRight,
	input.KeySpace: ctrlEBrake,
}

// Player is the vehicle controller. It implements entity.Controller.
type Player struct {
	cfg    Config
	ground Ground
	entity *entity.Entity

	held map[input.Key]bool

	// Commanded values from the keyboard.
	throttleTarget float32
	brakeTarget    float32
	ebrakeTarget   float32
	steerTarget    float32 // -1 right .. +1 left

	// Applied values.
	throttle   float32
	brake      float32
	ebrake     float32
	steer      float32
	steerVel   float64
	steerAngle float32

	velocity   math.Vec2 // world XZ
	velocityC  math.Vec2 // vehicle-local: X lateral, Y forward
	accel      math.Vec2
	accelC     math.Vec2
	yawRate    float32
	speed      float32
	log        *zap.Logger
	lastBumped bool
}

// New attaches a controller to e, which must already stand on ground.
func New(e *entity.Entity, ground Ground, cfg Config) *Player {
	p := &Player{
		cfg:    cfg,
		ground: ground,
		entity: e,
		held:   make(map[input.Key]bool),
		log:    logger.Named("player"),
	}
	e.SetController(p)
	p.clampToGround(e)
	return p
}

// Entity returns the controlled entity.
func (p *Player) Entity() *entity.Entity {
	return p.entity
}

// Mode returns the driving model.
func (p *Player) Mode() Mode {
	return p.cfg.Mode
}

// Position returns the vehicle position.
func (p *Player) Position() math.Vec3 {
	return p.entity.Position()
}

// Heading returns the vehicle yaw.
func (p *Player) Heading() float32 {
	return p.entity.Yaw()
}

// Throttle returns the applied throttle in [0,1].
func (p *Player) Throttle() float32 { return p.throttle }

// Brake returns the applied brake in [0,1].
func (p *Player) Brake() float32 { return p.brake }

// Steer returns the applied steering in [-1,1], positive to the left.
func (p *Player) Steer() float32 { return p.steer }

// Speed returns the ground speed magnitude.
func (p *Player) Speed() float32 { return p.speed }

// Velocity returns the world-space ground velocity (X, Z).
func (p *Player) Velocity() math.Vec2 { return p.velocity }

// YawRate returns the last heading change rate in rad/s.
func (p *Player) YawRate() float32 { return p.yawRate }

// HandleKey updates the input targets. It reports whether the key drives
// the vehicle.
func (p *Player) HandleKey(ev input.KeyEvent) bool {
	if _, ok := bindings[ev.Key]; !ok {
		return false
	}

	switch ev.Action {
	case input.Press, input.Repeat:
		p.held[ev.Key] = true
	case input.Release:
		delete(p.held, ev.Key)
	}
	p.updateTargets()
	return true
}

func (p *Player) updateTargets() {
	var active [ctrlCount]bool
	for k := range p.held {
		active[bindings[k]] = true
	}

	p.throttleTarget = boolf(active[ctrlThrottle])
	p.brakeTarget = boolf(active[ctrlBrake])
	p.ebrakeTarget = boolf(active[ctrlEBrake])
	p.steerTarget = boolf(active[ctrlLeft]) - boolf(active[ctrlRight])
}

func boolf(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Update advances the vehicle by dt seconds and re-seats it on the ground.
func (p *Player) Update(e *entity.Entity, dt float32) {
	if dt <= 0 {
		p.clampToGround(e)
		return
	}

	before := e.Position()

	if p.cfg.Mode == PhysicsLite {
		p.stepPhysics(e, dt)
	} else {
		p.stepBasic(e, dt)
	}

	pos := e.Position()
	if !p.ground.IsOnTerrain(pos.X, pos.Z) {
		if !p.lastBumped {
			p.log.Debug("edge of terrain", zap.Float32("x", pos.X), zap.Float32("z", pos.Z))
		}
		p.lastBumped = true
		pos.X, pos.Z = before.X, before.Z
		e.SetPosition(pos)
		p.velocity = math.Vec2{}
		p.velocityC = math.Vec2{}
		p.speed = 0
	} else {
		p.lastBumped = false
	}

	p.clampToGround(e)
}

// clampToGround sets Y to the terrain height and tilts the body to match
// the slope under the current heading.
func (p *Player) clampToGround(e *entity.Entity) {
	pos := e.Position()
	pos.Y = p.ground.HeightAt(pos.X, pos.Z)
	e.SetPosition(pos)
	e.SetTilt(
		p.ground.AngleX(pos.X, pos.Z, e.Yaw()),
		p.ground.AngleZ(pos.X, pos.Z, e.Yaw()),
	)
}

func (p *Player) stepBasic(e *entity.Entity, dt float32) {
	p.throttle = p.throttleTarget
	p.brake = p.brakeTarget
	p.ebrake = p.ebrakeTarget
	p.steer = p.steerTarget

	forwardSpeed := p.cfg.MoveSpeed * (p.throttle - p.brake)
	if p.ebrake > 0 {
		forwardSpeed = 0
	}

	yaw := e.Yaw() + p.cfg.RotationSpeed*p.steer*dt
	e.SetRotation(yaw)

	s, c := math32.Sincos(e.Yaw())
	p.velocity = math.Vec2{X: s * forwardSpeed, Y: c * forwardSpeed}
	p.velocityC = math.Vec2{Y: forwardSpeed}
	p.speed = math32.Abs(forwardSpeed)

	pos := e.Position()
	pos.X += p.velocity.X * dt
	pos.Z += p.velocity.Y * dt
	e.SetPosition(pos)
}

func (p *Player) stepPhysics(e *entity.Entity, dt float32) {
	p.throttle = p.throttleTarget
	p.brake = p.brakeTarget
	p.ebrake = p.ebrakeTarget
	p.steer = p.smoothSteering(dt)
	p.steerAngle = p.steer * p.cfg.MaxSteer

	yaw := e.Yaw()
	s, c := math32.Sincos(yaw)
	forward := math.Vec2{X: s, Y: c}
	side := math.Vec2{X: c, Y: -s}

	// World velocity into vehicle space.
	p.velocityC = math.Vec2{X: p.velocity.Dot(side), Y: p.velocity.Dot(forward)}
	vf := p.velocityC.Y
	vs := p.velocityC.X

	af := p.cfg.EngineForce*p.throttle - p.cfg.BrakeForce*p.brake
	af -= p.cfg.Drag*vf*math32.Abs(vf) + p.cfg.RollResistance*vf

	grip := p.cfg.Grip * (1 - 0.5*p.ebrake)
	as := -grip * vs
	p.accelC = math.Vec2{X: as, Y: af}

	nvf := vf + af*dt
	if p.ebrake > 0 && vf != 0 {
		// E-brake decelerates but never reverses the vehicle.
		decel := p.cfg.EBrakeForce * p.ebrake * dt
		if math32.Abs(nvf) <= decel || (nvf > 0) != (vf > 0) {
			nvf = 0
		} else if nvf > 0 {
			nvf -= decel
		} else {
			nvf += decel
		}
	}
	nvs := vs + as*dt
	if (nvs > 0) != (vs > 0) {
		nvs = 0
	}
	p.velocityC = math.Vec2{X: nvs, Y: nvf}

	p.yawRate = 0
	if p.cfg.WheelBase > 0 {
		p.yawRate = nvf * math32.Tan(p.steerAngle) / p.cfg.WheelBase
	}
	p.yawRate *= 1 - 0.5*p.ebrake
	e.SetRotation(yaw + p.yawRate*dt)

	// Back to world space along the new heading.
	s, c = math32.Sincos(e.Yaw())
	forward = math.Vec2{X: s, Y: c}
	side = math.Vec2{X: c, Y: -s}
	newVelocity := forward.Scale(nvf).Add(side.Scale(nvs))
	p.accel = newVelocity.Sub(p.velocity).Scale(1 / dt)
	p.velocity = newVelocity
	p.speed = p.velocity.Length()

	pos := e.Position()
	pos.X += p.velocity.X * dt
	pos.Z += p.velocity.Y * dt
	e.SetPosition(pos)
}

// smoothSteering eases the applied steering toward the target with a
// critically damped spring so the heading never snaps.
func (p *Player) smoothSteering(dt float32) float32 {
	spring := harmonica.NewSpring(float64(dt), p.cfg.SteerFrequency, 1.0)
	pos, vel := spring.Update(float64(p.steer), p.steerVel, float64(p.steerTarget))
	p.steerVel = vel
	return math.Clamp(float32(pos), -1, 1)
}
