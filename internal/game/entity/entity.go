// Package entity implements placed scene objects and their ordered registry.
package entity

import (
	"github.com/Faultbox/wildwest/internal/engine/model"
	"github.com/Faultbox/wildwest/pkg/math"
)

// ID identifies an entity within a Manager.
type ID uint32

// Controller drives an entity once per frame. Static decoration has none.
type Controller interface {
	Update(e *Entity, dt float32)
}

// Entity is a transform plus an optional shared mesh and controller.
type Entity struct {
	ID   ID
	Name string

	// Mesh is shared with other entities and owned by the asset loader.
	Mesh *model.Mesh

	position math.Vec3
	scale    math.Vec3
	yaw      float32
	// Terrain tilt, applied between yaw and scale.
	pitch float32
	roll  float32

	controller Controller
}

// New creates an entity at position with uniform scale.
func New(name string, mesh *model.Mesh, position math.Vec3, scale float32) *Entity {
	return &Entity{
		Name:     name,
		Mesh:     mesh,
		position: position,
		scale:    math.Vec3{X: scale, Y: scale, Z: scale},
	}
}

// SetController attaches a per-frame controller.
func (e *Entity) SetController(c Controller) {
	e.controller = c
}

// Controller returns the attached controller, if any.
func (e *Entity) Controller() Controller {
	return e.controller
}

// Position returns the world position.
func (e *Entity) Position() math.Vec3 {
	return e.position
}

// SetPosition moves the entity.
func (e *Entity) SetPosition(p math.Vec3) {
	e.position = p
}

// Scale returns the per-axis scale.
func (e *Entity) Scale() math.Vec3 {
	return e.scale
}

// SetScale sets a non-uniform scale. Non-positive components are ignored
// and reported as false.
func (e *Entity) SetScale(s math.Vec3) bool {
	if s.X <= 0 || s.Y <= 0 || s.Z <= 0 {
		return false
	}
	e.scale = s
	return true
}

// Yaw returns the heading in radians about +Y. Zero faces +Z.
func (e *Entity) Yaw() float32 {
	return e.yaw
}

// SetRotation sets the heading, wrapped to (-2π, 2π).
func (e *Entity) SetRotation(yaw float32) {
	e.yaw = math.WrapAngle(yaw)
}

// SetTilt sets the pitch (about local X) and roll (about local Z).
func (e *Entity) SetTilt(pitch, roll float32) {
	e.pitch = pitch
	e.roll = roll
}

// Tilt returns the pitch and roll.
func (e *Entity) Tilt() (pitch, roll float32) {
	return e.pitch, e.roll
}

// ModelMatrix returns translate * rotateY * rotateX * rotateZ * scale.
// It is rebuilt on every call so it always reflects the latest mutation.
func (e *Entity) ModelMatrix() math.Mat4 {
	m := math.TranslateVec(e.position).Mul(math.RotateY(e.yaw))
	if e.pitch != 0 || e.roll != 0 {
		m = m.Mul(math.RotateX(e.pitch)).Mul(math.RotateZ(e.roll))
	}
	return m.Mul(math.Scale(e.scale.X, e.scale.Y, e.scale.Z))
}

// PlaceBottomEdge lifts or lowers the entity so the lowest point of its
// scaled mesh rests at height h. Entities without a mesh sit at h.
func (e *Entity) PlaceBottomEdge(h float32) {
	var bottom float32
	if e.Mesh != nil && e.Mesh.Bounds.Valid() {
		bottom = e.Mesh.Bounds.Min[1] * e.scale.Y
	}
	e.position.Y = h - bottom
}

// Update runs the controller, if any.
func (e *Entity) Update(dt float32) {
	if e.controller != nil {
		e.controller.Update(e, dt)
	}
}
