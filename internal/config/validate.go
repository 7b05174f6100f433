package config

import (
	"errors"
	"fmt"
)

// Validate rejects settings the scene cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		errs = append(errs, fmt.Errorf("graphics: clip planes near=%g far=%g", c.Graphics.Near, c.Graphics.Far))
	}
	if c.Graphics.ScreenshotScale < 1 || c.Graphics.ScreenshotScale > 4 {
		errs = append(errs, fmt.Errorf("graphics: screenshot_scale %d must be 1..4", c.Graphics.ScreenshotScale))
	}
	if c.Terrain.Size <= 0 || c.Terrain.MaxHeight < 0 {
		errs = append(errs, fmt.Errorf("terrain: size %g / max_height %g", c.Terrain.Size, c.Terrain.MaxHeight))
	}
	if c.Player.Scale <= 0 {
		errs = append(errs, fmt.Errorf("player: scale %g must be positive", c.Player.Scale))
	}
	if c.Player.Mode != "basic" && c.Player.Mode != "physics" {
		errs = append(errs, fmt.Errorf("player: unknown mode %q", c.Player.Mode))
	}
	switch c.Camera.Mode {
	case "chase", "tracking", "static":
	default:
		errs = append(errs, fmt.Errorf("camera: unknown mode %q", c.Camera.Mode))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 || c.Audio.EngineIdle < 0 || c.Audio.EngineIdle > 1 {
		errs = append(errs, fmt.Errorf("audio: volume %g / engine_idle %g must be in 0..1", c.Audio.Volume, c.Audio.EngineIdle))
	}
	for i, d := range c.Assets.Decorations {
		if d.Scale <= 0 {
			errs = append(errs, fmt.Errorf("assets: decoration %d (%s) scale must be positive", i, d.Model))
		}
	}
	if c.Scene.Decorations > 0 && len(c.Assets.Decorations) == 0 {
		errs = append(errs, errors.New("scene: decorations requested but none configured"))
	}

	return errors.Join(errs...)
}
