package world

import (
	"github.com/Faultbox/wildwest/internal/config"
	"github.com/Faultbox/wildwest/internal/engine/camera"
)

// SceneState holds the user-facing render toggles. It is the only owner
// of these flags; the rest of the world reads them through the getters.
type SceneState struct {
	camera camera.Mode
	night  bool
	skybox bool
	fog    bool
	phong  bool
}

// NewSceneState returns the startup state from config.
func NewSceneState(cfg config.SceneConfig, mode camera.Mode) *SceneState {
	return &SceneState{
		camera: mode,
		skybox: cfg.SkyboxVisible,
		fog:    cfg.Fog,
		phong:  cfg.Phong,
	}
}

// CameraMode returns the active camera.
func (s *SceneState) CameraMode() camera.Mode { return s.camera }

// Night reports whether the night preset is active.
func (s *SceneState) Night() bool { return s.night }

// SkyboxVisible reports whether the sky cube is drawn.
func (s *SceneState) SkyboxVisible() bool { return s.skybox }

// Fog reports whether fog is applied.
func (s *SceneState) Fog() bool { return s.fog }

// Phong reports whether entities use per-fragment lighting.
func (s *SceneState) Phong() bool { return s.phong }

// SetCameraMode selects the active camera. Unknown modes are ignored.
func (s *SceneState) SetCameraMode(m camera.Mode) {
	if !m.Valid() {
		return
	}
	s.camera = m
}

// SetNight switches the sky preset. Either preset brings the skybox back
// and night turns fog off while day turns it on.
func (s *SceneState) SetNight(night bool) {
	s.night = night
	s.skybox = true
	s.fog = !night
}

// SetSkyboxVisible shows or hides the sky cube.
func (s *SceneState) SetSkyboxVisible(v bool) { s.skybox = v }

// SetFog turns fog on or off.
func (s *SceneState) SetFog(v bool) { s.fog = v }

// SetPhong selects per-fragment (true) or per-vertex lighting.
func (s *SceneState) SetPhong(v bool) { s.phong = v }
