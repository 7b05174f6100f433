// Package lighting holds the scene's dynamic lights: a fixed-capacity set
// addressed by stable IDs and the rig that drives the sky, headlight and
// beacon from the player each frame.
package lighting

import (
	"errors"

	"github.com/Faultbox/wildwest/pkg/math"
)

// MaxLights is the number of lights the shaders accept.
const MaxLights = 8

// ErrFull is returned by Add when every slot is taken.
var ErrFull = errors.New("lighting: light set is full")

// Light is one light as uploaded to the shaders. Position.W is 0 for a
// directional light and 1 for a point or spot light.
type Light struct {
	Position      math.Vec4
	Ambient       math.Vec3
	Diffuse       math.Vec3
	Specular      math.Vec3
	Radius        float32 // attenuation radius
	ConeAngle     float32 // half-angle in radians; π means no cone
	ConeDirection math.Vec3
}

// NewLight returns a black light with no cone.
func NewLight() Light {
	return Light{ConeAngle: math.Pi}
}

// ID identifies a light in a Set. A removed light's ID never matches the
// light that later reuses its slot. The zero ID is never valid.
type ID struct {
	slot uint8
	gen  uint32
}

// Valid reports whether id was issued by a Set.
func (id ID) Valid() bool {
	return id.gen != 0
}

type slot struct {
	light Light
	gen   uint32
	used  bool
}

// Set is a fixed-capacity collection of lights. Removal clears one slot
// and never touches another light, even one with identical values.
type Set struct {
	slots [MaxLights]slot
	count int
	buf   []Light
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{buf: make([]Light, 0, MaxLights)}
}

// Add stores l and returns its ID.
func (s *Set) Add(l Light) (ID, error) {
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.used {
			continue
		}
		sl.gen++
		if sl.gen == 0 {
			sl.gen = 1
		}
		sl.used = true
		sl.light = l
		s.count++
		return ID{slot: uint8(i), gen: sl.gen}, nil
	}
	return ID{}, ErrFull
}

func (s *Set) lookup(id ID) *slot {
	if !id.Valid() || int(id.slot) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[id.slot]
	if !sl.used || sl.gen != id.gen {
		return nil
	}
	return sl
}

// Remove deletes the light with the given ID. It reports whether the
// light was present.
func (s *Set) Remove(id ID) bool {
	sl := s.lookup(id)
	if sl == nil {
		return false
	}
	sl.used = false
	sl.light = Light{}
	s.count--
	return true
}

// Get returns a pointer to the stored light for in-place updates, or nil.
// The pointer is invalidated by Remove.
func (s *Set) Get(id ID) *Light {
	sl := s.lookup(id)
	if sl == nil {
		return nil
	}
	return &sl.light
}

// Len returns the number of stored lights.
func (s *Set) Len() int {
	return s.count
}

// Lights returns the stored lights in slot order. The slice is reused by
// the next call.
func (s *Set) Lights() []Light {
	s.buf = s.buf[:0]
	for i := range s.slots {
		if s.slots[i].used {
			s.buf = append(s.buf, s.slots[i].light)
		}
	}
	return s.buf
}
