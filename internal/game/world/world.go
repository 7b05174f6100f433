// Package world assembles the scene: terrain, entities, the player, the
// camera rig and the lights, and advances them one frame at a time.
package world

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wildwest/internal/config"
	"github.com/Faultbox/wildwest/internal/engine/camera"
	"github.com/Faultbox/wildwest/internal/engine/input"
	"github.com/Faultbox/wildwest/internal/engine/lighting"
	"github.com/Faultbox/wildwest/internal/engine/model"
	"github.com/Faultbox/wildwest/internal/engine/scene"
	"github.com/Faultbox/wildwest/internal/engine/terrain"
	"github.com/Faultbox/wildwest/internal/game/entity"
	"github.com/Faultbox/wildwest/internal/game/player"
	"github.com/Faultbox/wildwest/internal/logger"
	"github.com/Faultbox/wildwest/pkg/math"
)

// ErrSpawnOffTerrain is returned by New when the player spawn pixel lies
// outside the heightmap.
var ErrSpawnOffTerrain = errors.New("spawn pixel outside the heightmap")

// MeshSource loads shared meshes by path.
type MeshSource interface {
	Mesh(path string) (*model.Mesh, error)
}

// World is the simulated scene.
type World struct {
	cfg *config.Config
	log *zap.Logger

	terrain  *terrain.Terrain
	entities *entity.Manager
	player   *player.Player
	cameras  *camera.Rig
	lights   *lighting.Rig
	state    *SceneState

	elapsed   float32
	instances []scene.Instance
}

// New populates a world on ground. The player model is mandatory;
// decoration models that fail to load are skipped with a warning.
func New(cfg *config.Config, ground *terrain.Terrain, meshes MeshSource) (*World, error) {
	w := &World{
		cfg:      cfg,
		log:      logger.Named("world"),
		terrain:  ground,
		entities: entity.NewManager(),
	}

	field := ground.Field()
	if !field.Contains(cfg.Player.SpawnX, cfg.Player.SpawnY) {
		return nil, fmt.Errorf("player spawn (%d, %d) on a %dx%d heightmap: %w",
			cfg.Player.SpawnX, cfg.Player.SpawnY, field.Width, field.Height, ErrSpawnOffTerrain)
	}

	mesh, err := meshes.Mesh(cfg.Player.Model)
	if err != nil {
		return nil, fmt.Errorf("player model: %w", err)
	}
	spawn := ground.PositionFromPixel(cfg.Player.SpawnX, cfg.Player.SpawnY)
	e := entity.New("player", mesh, spawn, cfg.Player.Scale)
	w.entities.Add(e)
	w.player = player.New(e, ground, PlayerConfig(cfg.Player))

	w.populate(meshes)

	w.lights, err = lighting.NewRig(LightingConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("lights: %w", err)
	}

	mode := camera.ParseMode(cfg.Camera.Mode)
	w.cameras = camera.NewRig(w.player, CameraConfig(cfg.Camera), mode)
	w.state = NewSceneState(cfg.Scene, mode)
	w.lights.Update(w.player.Position(), w.player.Heading(), 0)

	w.log.Info("world ready",
		zap.Int("entities", w.entities.Count()),
		zap.String("player_mode", w.player.Mode().String()),
		zap.String("camera", mode.String()),
	)
	return w, nil
}

// populate scatters decorations at random pixels, lines the track with
// barrels and rests every non-player entity on the ground.
func (w *World) populate(meshes MeshSource) {
	seed := w.cfg.Scene.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	field := w.terrain.Field()

	type kind struct {
		mesh  *model.Mesh
		scale float32
		name  string
	}
	var catalogue []kind
	for _, d := range w.cfg.Assets.Decorations {
		m, err := meshes.Mesh(d.Model)
		if err != nil {
			w.log.Warn("decoration skipped", zap.String("model", d.Model), zap.Error(err))
			continue
		}
		catalogue = append(catalogue, kind{mesh: m, scale: d.Scale, name: d.Model})
	}

	var placed []*entity.Entity
	if len(catalogue) > 0 {
		for i := 0; i < w.cfg.Scene.Decorations; i++ {
			k := catalogue[rng.Intn(len(catalogue))]
			pos := w.terrain.PositionFromPixel(rng.Intn(field.Width), rng.Intn(field.Height))
			placed = append(placed, entity.New(k.name, k.mesh, pos, k.scale))
		}
	}

	if len(w.cfg.Assets.BarrelTrack) > 0 {
		barrel, err := meshes.Mesh(w.cfg.Assets.Barrel.Model)
		if err != nil {
			w.log.Warn("barrel track skipped", zap.String("model", w.cfg.Assets.Barrel.Model), zap.Error(err))
		} else {
			for _, px := range w.cfg.Assets.BarrelTrack {
				if !field.Contains(px[0], px[1]) {
					w.log.Warn("barrel off the heightmap", zap.Int("x", px[0]), zap.Int("y", px[1]))
					continue
				}
				pos := w.terrain.PositionFromPixel(px[0], px[1])
				placed = append(placed, entity.New("barrel", barrel, pos, w.cfg.Assets.Barrel.Scale))
			}
		}
	}

	for _, e := range placed {
		p := e.Position()
		e.PlaceBottomEdge(w.terrain.HeightAt(p.X, p.Z))
		w.entities.Add(e)
	}
	w.log.Debug("scene populated", zap.Int("props", len(placed)), zap.Int64("seed", seed))
}

// Terrain returns the ground sampler.
func (w *World) Terrain() *terrain.Terrain { return w.terrain }

// Entities returns the ordered entity manager; the player is first.
func (w *World) Entities() *entity.Manager { return w.entities }

// Player returns the vehicle controller.
func (w *World) Player() *player.Player { return w.player }

// Cameras returns the camera rig.
func (w *World) Cameras() *camera.Rig { return w.cameras }

// Lights returns the light rig.
func (w *World) Lights() *lighting.Rig { return w.lights }

// State returns the scene toggles.
func (w *World) State() *SceneState { return w.state }

// Elapsed returns the running time passed to the last Step, in seconds.
func (w *World) Elapsed() float32 { return w.elapsed }

// Step advances one frame: the active camera with this frame's pointer
// deltas, then every entity in insertion order, then the lights.
func (w *World) Step(d input.Deltas, dt, elapsed float32) {
	w.elapsed = elapsed
	w.cameras.Update(d, dt)
	w.entities.Update(dt)
	w.lights.Update(w.player.Position(), w.player.Heading(), elapsed)
}

// Frame builds the per-frame render parameters. FOV is in degrees; the
// static camera's zoom replaces it while that camera is active.
func (w *World) Frame(aspect float32) scene.Frame {
	g := w.cfg.Graphics
	fov := w.cameras.FOV(g.FOV)
	return scene.Frame{
		Projection: math.Perspective(math.Radians(fov), aspect, g.Near, g.Far),
		View:       w.cameras.View(),
		Lights:     w.lights.Lights(),
		Fog:        w.state.Fog(),
		Phong:      w.state.Phong(),
		Skybox:     w.state.SkyboxVisible(),
		Night:      w.state.Night(),
	}
}

// Instances returns one draw instance per entity. The slice is reused
// across calls.
func (w *World) Instances() []scene.Instance {
	w.instances = w.instances[:0]
	for _, e := range w.entities.All() {
		w.instances = append(w.instances, scene.Instance{Mesh: e.Mesh, Model: e.ModelMatrix()})
	}
	return w.instances
}

// SetCameraMode switches the active camera without resetting any of them.
func (w *World) SetCameraMode(m camera.Mode) {
	w.state.SetCameraMode(m)
	w.cameras.SetMode(w.state.CameraMode())
	w.log.Debug("camera", zap.String("mode", w.state.CameraMode().String()))
}

// SetNight swaps the sky light, skybox and fog to the night or day preset.
func (w *World) SetNight(night bool) error {
	if err := w.lights.SetNight(night); err != nil {
		return err
	}
	w.state.SetNight(night)
	w.log.Debug("sky", zap.Bool("night", night))
	return nil
}

// Close releases every entity. The world must not be stepped afterwards.
func (w *World) Close() {
	n := w.entities.Count()
	w.entities.ClearAll()
	w.instances = w.instances[:0]
	w.log.Debug("world released", zap.Int("entities", n))
}

// PlayerConfig converts the player config section.
func PlayerConfig(c config.PlayerConfig) player.Config {
	return player.Config{
		Mode:           player.ParseMode(c.Mode),
		MoveSpeed:      c.MoveSpeed,
		RotationSpeed:  c.RotationSpeed,
		EngineForce:    c.EngineForce,
		BrakeForce:     c.BrakeForce,
		EBrakeForce:    c.EBrakeForce,
		Drag:           c.Drag,
		RollResistance: c.RollResistance,
		Grip:           c.Grip,
		WheelBase:      c.WheelBase,
		MaxSteer:       c.MaxSteer,
		SteerFrequency: float64(c.SteerFrequency),
	}
}

// CameraConfig converts the camera config section.
func CameraConfig(c config.CameraConfig) camera.Config {
	return camera.Config{
		Sensitivity:      c.Sensitivity,
		ResetSpeed:       c.ResetSpeed,
		ThrottleDeadzone: c.ThrottleDeadzone,
	}
}

// LightingConfig converts the lighting config section.
func LightingConfig(c *config.Config) lighting.Config {
	return lighting.Config{
		SkyboxSize:    c.Scene.SkyboxSize,
		HeadlightStep: c.Lighting.HeadlightStep,
		BeaconSpeed:   c.Lighting.BeaconSpeed,
	}
}
