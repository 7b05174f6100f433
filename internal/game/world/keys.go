package world

import (
	"go.uber.org/zap"

	"github.com/Faultbox/wildwest/internal/engine/camera"
	"github.com/Faultbox/wildwest/internal/engine/input"
	"github.com/Faultbox/wildwest/pkg/math"
)

// Command is a request the world cannot carry out itself.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandScreenshot
)

// HandleKey applies one key event. Toggles fire on press only; the
// headlight keys also follow key repeat. Driving keys go to the player on
// every action so releases clear their targets.
func (w *World) HandleKey(ev input.KeyEvent) Command {
	if w.player.HandleKey(ev) {
		return CommandNone
	}

	if ev.Action == input.Press || ev.Action == input.Repeat {
		var pitch, yaw float32
		switch ev.Key {
		case input.KeyI:
			pitch = 1
		case input.KeyK:
			pitch = -1
		case input.KeyJ:
			yaw = -1
		case input.KeyL:
			yaw = 1
		}
		if pitch != 0 || yaw != 0 {
			w.lights.AdjustHeadlight(pitch, yaw)
			p, y := w.lights.HeadlightAngles()
			w.log.Debug("headlight",
				zap.Float32("pitch_deg", math.Degrees(p)),
				zap.Float32("yaw_deg", math.Degrees(y)),
			)
			return CommandNone
		}
	}

	if ev.Action != input.Press {
		return CommandNone
	}

	switch ev.Key {
	case input.KeyEscape:
		return CommandQuit
	case input.KeyF12:
		return CommandScreenshot
	case input.KeyC:
		w.setNight(true)
	case input.KeyZ:
		w.setNight(false)
	case input.KeyX:
		w.state.SetSkyboxVisible(false)
	case input.KeyF:
		w.state.SetFog(!w.state.Fog())
		w.log.Debug("fog", zap.Bool("on", w.state.Fog()))
	case input.KeyP:
		w.state.SetPhong(!w.state.Phong())
		w.log.Debug("shading", zap.Bool("phong", w.state.Phong()))
	case input.KeyT:
		w.SetCameraMode(camera.Tracking)
	case input.KeyY:
		w.SetCameraMode(camera.Chase)
	case input.KeyU:
		w.SetCameraMode(camera.Static)
	case input.KeyQ:
		on, err := w.lights.ToggleBeacon()
		if err != nil {
			w.log.Warn("beacon", zap.Error(err))
			break
		}
		w.log.Debug("beacon", zap.Bool("on", on))
	}
	return CommandNone
}

func (w *World) setNight(night bool) {
	if err := w.SetNight(night); err != nil {
		w.log.Warn("sky preset", zap.Bool("night", night), zap.Error(err))
	}
}
