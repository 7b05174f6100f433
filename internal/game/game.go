// Package game implements the main loop: it owns the window, the GL
// renderer and the world, and drives them one frame at a time.
package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/wildwest/internal/assets"
	"github.com/Faultbox/wildwest/internal/config"
	"github.com/Faultbox/wildwest/internal/engine/audio"
	"github.com/Faultbox/wildwest/internal/engine/clock"
	"github.com/Faultbox/wildwest/internal/engine/debug"
	"github.com/Faultbox/wildwest/internal/engine/framebuffer"
	"github.com/Faultbox/wildwest/internal/engine/input"
	"github.com/Faultbox/wildwest/internal/engine/model"
	"github.com/Faultbox/wildwest/internal/engine/renderer"
	"github.com/Faultbox/wildwest/internal/engine/scene"
	"github.com/Faultbox/wildwest/internal/engine/scene/shaders"
	"github.com/Faultbox/wildwest/internal/engine/shader"
	"github.com/Faultbox/wildwest/internal/engine/terrain"
	"github.com/Faultbox/wildwest/internal/engine/window"
	"github.com/Faultbox/wildwest/internal/game/world"
	"github.com/Faultbox/wildwest/internal/logger"
	"github.com/Faultbox/wildwest/pkg/math"
)

const title = "The Wild West"

// Game is the main game instance.
type Game struct {
	config  *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	loader   *assets.Loader
	input    *input.State
	clock    *clock.Clock
	shots    *debug.ScreenshotCapture
	capture  *framebuffer.Framebuffer
	audio    *audio.Manager

	programs []*shader.Program
	scene    scene.Renderer
	world    *world.World
}

// New opens the window and loads the scene. Any failure releases what was
// already created.
func New(cfg *config.Config) (g *Game, err error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g = &Game{
		config: cfg,
		input:  input.New(),
		clock:  clock.New(),
		shots:  debug.NewScreenshotCapture("", "wildwest"),
	}

	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	defer func() {
		if err != nil {
			g.Close()
		}
	}()

	// Renderer comes after the window, since the GL context must exist.
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.loader = assets.NewLoader(cfg.Assets.Root, g.renderer)

	if err := g.buildScene(); err != nil {
		return nil, err
	}
	g.startAudio()

	logger.Info("game initialized successfully",
		zap.Int("entities", g.world.Entities().Count()),
		zap.Int("programs", len(g.programs)),
	)
	return g, nil
}

func (g *Game) compile(src shaders.Source) (*shader.Program, error) {
	p, err := shader.New(src.Name, src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", src.Name, err)
	}
	g.programs = append(g.programs, p)
	return p, nil
}

// buildScene compiles the programs, uploads the terrain and skyboxes and
// populates the world.
func (g *Game) buildScene() error {
	cfg := g.config

	skyProg, err := g.compile(shaders.Skybox)
	if err != nil {
		return err
	}
	phong, err := g.compile(shaders.EntityPhong)
	if err != nil {
		return err
	}
	gouraud, err := g.compile(shaders.EntityGouraud)
	if err != nil {
		return err
	}
	terrainProg, err := g.compile(shaders.Terrain)
	if err != nil {
		return err
	}

	field, err := g.loader.HeightField(cfg.Terrain.Heightmap)
	if err != nil {
		return fmt.Errorf("heightmap: %w", err)
	}
	ground, err := terrain.New(field, cfg.Terrain.Size, cfg.Terrain.MaxHeight)
	if err != nil {
		return fmt.Errorf("terrain: %w", err)
	}
	terrainMesh, err := g.uploadTerrain(ground)
	if err != nil {
		return err
	}

	day, err := g.loader.Cubemap(cfg.Assets.DaySkybox)
	if err != nil {
		return fmt.Errorf("day skybox: %w", err)
	}
	night, err := g.loader.Cubemap(cfg.Assets.NightSkybox)
	if err != nil {
		return fmt.Errorf("night skybox: %w", err)
	}
	cube := model.Cube(cfg.Scene.SkyboxSize)
	cubeBuf, err := g.renderer.UploadGeometry(cube.Vertices, cube.Indices)
	if err != nil {
		return fmt.Errorf("skybox cube: %w", err)
	}

	g.world, err = world.New(cfg, ground, g.loader)
	if err != nil {
		return fmt.Errorf("world: %w", err)
	}

	g.scene = scene.Renderer{
		Skybox:  scene.NewSkyboxPass(skyProg, cubeBuf, day, night),
		Entity:  scene.NewEntityPass(phong, gouraud),
		Terrain: scene.NewTerrainPass(terrainProg, terrainMesh),
	}
	return nil
}

func (g *Game) uploadTerrain(ground *terrain.Terrain) (scene.TerrainMesh, error) {
	cfg := g.config.Terrain
	mesh := ground.BuildMesh()

	// terrain.Vertex and model.Vertex share one layout.
	vertices := make([]model.Vertex, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		vertices[i] = model.Vertex{Position: v.Position, Normal: v.Normal, TexCoord: v.TexCoord}
	}
	buf, err := g.renderer.UploadGeometry(vertices, mesh.Indices)
	if err != nil {
		return scene.TerrainMesh{}, fmt.Errorf("terrain mesh: %w", err)
	}

	tm := scene.TerrainMesh{Buffers: buf, Model: math.Identity(), Tiling: cfg.Tiling}
	paths := [...]string{cfg.BlendMap, cfg.Layers[0], cfg.Layers[1], cfg.Layers[2], cfg.Layers[3]}
	for unit, path := range paths {
		tex, err := g.loader.Texture(path)
		if err != nil {
			return scene.TerrainMesh{}, fmt.Errorf("terrain texture: %w", err)
		}
		tm.Textures[unit] = tex
	}

	logger.Info("terrain loaded",
		zap.Int("vertices", len(vertices)),
		zap.Int("indices", len(mesh.Indices)),
		zap.Float32("size", ground.Size),
	)
	return tm, nil
}

// Track names.
const (
	trackAmbience = "ambience"
	trackEngine   = "engine"
)

// startAudio opens the speaker and starts the looping tracks. Audio is
// optional, so every failure is logged and the game runs silent.
func (g *Game) startAudio() {
	cfg := g.config.Audio
	if !cfg.Enabled {
		return
	}

	m := audio.New()
	if err := m.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return
	}
	m.SetMasterVolume(cfg.Volume)
	g.audio = m

	tracks := []struct {
		name, path string
		level      float64
	}{
		{trackAmbience, cfg.Ambience, 1},
		{trackEngine, cfg.Engine, cfg.EngineIdle},
	}
	for _, t := range tracks {
		if t.path == "" {
			continue
		}
		data, err := g.loader.Load(t.path)
		if err == nil {
			err = m.Loop(t.name, data, t.level)
		}
		if err != nil {
			logger.Warn("audio track skipped", zap.String("track", t.name), zap.String("path", t.path), zap.Error(err))
		}
	}
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true
	g.clock.Reset()

	logger.Info("starting game loop")

	for g.running {
		dt, elapsed := g.clock.Tick()

		// 1. Process input
		ev := g.window.Poll(g.input)
		if ev.Quit {
			break
		}
		if ev.Resized {
			g.renderer.Resize(ev.Width, ev.Height)
		}

		screenshot := false
		for _, k := range g.input.DrainKeys() {
			switch g.world.HandleKey(k) {
			case world.CommandQuit:
				g.running = false
			case world.CommandScreenshot:
				screenshot = true
			}
		}
		if !g.running {
			break
		}

		// 2. Update: camera, entities, lights. Pointer deltas are drained
		// every frame even when the active camera ignores them.
		g.world.Step(g.input.Drain(), dt, elapsed)
		if g.audio != nil {
			a := g.config.Audio
			g.audio.SetLevel(trackEngine, audio.Ramp(float64(g.world.Player().Speed()), a.EngineTopSpeed, a.EngineIdle))
		}

		// 3. Render
		g.renderer.Begin()
		frame := g.world.Frame(g.renderer.Aspect())
		stats := g.scene.Render(g.renderer, &frame, g.world.Instances())
		g.renderer.End()

		if screenshot {
			g.screenshot(&frame)
		}

		// 4. Present
		g.window.SwapBuffers()

		if fps, frameTime, ok := g.clock.FPS(); ok {
			g.window.SetTitle(fmt.Sprintf("%s - %d fps", title, fps))
			logger.Debug("fps",
				zap.Int("count", fps),
				zap.Duration("frame", frameTime),
				zap.Int("draws", stats.DrawCalls),
				zap.Int("instances", stats.Instances),
			)
		}
	}

	return nil
}

// screenshot renders frame again into an offscreen target scaled from
// the window size and writes it to a PNG.
func (g *Game) screenshot(frame *scene.Frame) {
	w, h := g.renderer.Size()
	scale := g.config.Graphics.ScreenshotScale
	w, h = w*scale, h*scale

	if g.capture == nil {
		fb, err := framebuffer.New(int32(w), int32(h))
		if err != nil {
			logger.Warn("screenshot failed", zap.Error(err))
			return
		}
		g.capture = fb
	} else {
		g.capture.Resize(int32(w), int32(h))
	}

	restore := g.capture.Bind()
	g.renderer.Begin()
	g.scene.Render(g.renderer, frame, g.world.Instances())
	pixels := g.capture.ReadPixels()
	restore()

	path, err := g.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path), zap.Int("width", w), zap.Int("height", h))
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
		g.audio = nil
	}

	for _, p := range g.programs {
		p.Destroy()
	}
	g.programs = nil
	if g.world != nil {
		g.world.Close()
		g.world = nil
	}
	if g.capture != nil {
		g.capture.Destroy()
		g.capture = nil
	}
	if g.loader != nil {
		g.loader.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
}
