package world

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/wildwest/internal/config"
	"github.com/Faultbox/wildwest/internal/engine/camera"
	"github.com/Faultbox/wildwest/internal/engine/input"
	"github.com/Faultbox/wildwest/internal/engine/model"
	"github.com/Faultbox/wildwest/internal/engine/scene"
	"github.com/Faultbox/wildwest/internal/engine/terrain"
	"github.com/Faultbox/wildwest/pkg/math"
)

const eps = 1e-4

type fakeMeshes map[string]*model.Mesh

func (f fakeMeshes) Mesh(path string) (*model.Mesh, error) {
	m, ok := f[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

func box(name string, minY float32) *model.Mesh {
	return &model.Mesh{
		Name:   name,
		Bounds: model.Bounds{Min: [3]float32{-1, minY, -1}, Max: [3]float32{1, 3, 1}},
	}
}

func testMeshes() fakeMeshes {
	return fakeMeshes{
		"cart.glb":   box("cart", 0),
		"barrel.glb": box("barrel", -2),
		"house.glb":  box("house", -10),
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Player.Model = "cart.glb"
	cfg.Player.SpawnX, cfg.Player.SpawnY = 16, 16
	cfg.Scene.Decorations = 20
	cfg.Scene.Seed = 7
	cfg.Assets.Decorations = []config.DecorationConfig{
		{Model: "barrel.glb", Scale: 0.1},
		{Model: "house.glb", Scale: 0.005},
	}
	cfg.Assets.Barrel = config.DecorationConfig{Model: "barrel.glb", Scale: 0.1}
	cfg.Assets.BarrelTrack = [][2]int{{1, 1}, {30, 2}, {5, 29}}
	return cfg
}

// slopedGround rises along X and undulates along Z.
func slopedGround(t *testing.T) *terrain.Terrain {
	t.Helper()
	const n = 33
	f := &terrain.HeightField{Width: n, Height: n, Samples: make([]float32, n*n)}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			f.Samples[row*n+col] = float32(col)/(n-1)*0.5 + 0.2*math32.Sin(float32(row)*0.4) + 0.2
		}
	}
	tr, err := terrain.New(f, 100, 10)
	if err != nil {
		t.Fatalf("terrain.New: %v", err)
	}
	return tr
}

func newWorld(t *testing.T) *World {
	t.Helper()
	w, err := New(testConfig(), slopedGround(t), testMeshes())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func press(w *World, k input.Key) Command {
	return w.HandleKey(input.KeyEvent{Key: k, Action: input.Press})
}

func TestNewPopulatesScene(t *testing.T) {
	w := newWorld(t)

	all := w.Entities().All()
	if len(all) != 1+20+3 {
		t.Fatalf("entities = %d, want 24", len(all))
	}
	if all[0].Name != "player" {
		t.Errorf("first entity = %q, want player", all[0].Name)
	}

	ground := w.Terrain()
	for _, e := range all[1:] {
		p := e.Position()
		bottom := p.Y + e.Mesh.Bounds.Min[1]*e.Scale().Y
		if h := ground.HeightAt(p.X, p.Z); math32.Abs(bottom-h) > eps {
			t.Errorf("%s bottom at %v, ground at %v", e.Name, bottom, h)
		}
	}

	p := w.Player().Position()
	if h := ground.HeightAt(p.X, p.Z); math32.Abs(p.Y-h) > eps {
		t.Errorf("player Y = %v, ground = %v", p.Y, h)
	}
}

func TestPopulateIsSeeded(t *testing.T) {
	a, b := newWorld(t), newWorld(t)
	ea, eb := a.Entities().All(), b.Entities().All()
	for i := range ea {
		if ea[i].Position() != eb[i].Position() || ea[i].Name != eb[i].Name {
			t.Fatalf("entity %d differs between runs with one seed", i)
		}
	}
}

func TestMissingModels(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Model = "nope.glb"
	if _, err := New(cfg, slopedGround(t), testMeshes()); err == nil {
		t.Error("missing player model should fail")
	}

	cfg = testConfig()
	cfg.Assets.Decorations = append(cfg.Assets.Decorations, config.DecorationConfig{Model: "nope.glb", Scale: 1})
	cfg.Assets.Barrel.Model = "nope.glb"
	w, err := New(cfg, slopedGround(t), testMeshes())
	if err != nil {
		t.Fatalf("missing decorations should not fail: %v", err)
	}
	for _, e := range w.Entities().All() {
		if e.Name == "nope.glb" || e.Name == "barrel" {
			t.Fatalf("entity %q placed from a missing model", e.Name)
		}
	}
	if n := w.Entities().Count(); n != 21 {
		t.Errorf("entities = %d, want player plus 20 decorations", n)
	}
}

func TestBasicMoveFollowsTerrain(t *testing.T) {
	w := newWorld(t)
	start := w.Player().Position()

	press(w, input.KeyW)
	w.Step(input.Deltas{}, 0.1, 0.1)

	p := w.Player().Position()
	want := start.Z + testConfig().Player.MoveSpeed*0.1
	if math32.Abs(p.Z-want) > eps || math32.Abs(p.X-start.X) > eps {
		t.Errorf("position = %+v, want z %v", p, want)
	}
	if h := w.Terrain().HeightAt(p.X, p.Z); math32.Abs(p.Y-h) > eps {
		t.Errorf("Y = %v, ground = %v", p.Y, h)
	}

	w.HandleKey(input.KeyEvent{Key: input.KeyW, Action: input.Release})
	w.Step(input.Deltas{}, 0.1, 0.2)
	if w.Player().Position() != p {
		t.Error("vehicle kept moving after release")
	}
}

func TestCameraUpdatesBeforeEntities(t *testing.T) {
	w := newWorld(t)
	before := w.Cameras().Position()

	press(w, input.KeyW)
	w.Step(input.Deltas{}, 0.1, 0.1)
	if got := w.Cameras().Position(); got != before {
		t.Errorf("chase camera moved on the first frame: %+v -> %+v", before, got)
	}

	w.Step(input.Deltas{}, 0.1, 0.2)
	if got := w.Cameras().Position(); got.Z <= before.Z {
		t.Errorf("chase camera did not follow: z %v -> %v", before.Z, got.Z)
	}
}

func TestInactiveChaseCameraDoesNotDrift(t *testing.T) {
	w := newWorld(t)
	chase := w.Cameras().Chase()

	press(w, input.KeyU)
	if w.State().CameraMode() != camera.Static || w.Cameras().Mode() != camera.Static {
		t.Fatal("U should select the static camera")
	}
	staticBefore := w.Cameras().Static()

	press(w, input.KeyW)
	d := input.Deltas{DX: 5, DY: 5, Scroll: 1, Left: true}
	for i := 0; i < 10; i++ {
		w.Step(d, 0.05, float32(i)*0.05)
	}

	if got := w.Cameras().Chase(); got.Distance != chase.Distance || got.Pitch != chase.Pitch || got.Yaw != chase.Yaw {
		t.Errorf("chase camera drifted while inactive: %+v -> %+v", chase, got)
	}
	if w.Cameras().Static() == staticBefore {
		t.Error("static camera ignored its input")
	}

	press(w, input.KeyY)
	if w.Cameras().Mode() != camera.Chase {
		t.Error("Y should select the chase camera")
	}
	press(w, input.KeyT)
	if w.Cameras().Mode() != camera.Tracking {
		t.Error("T should select the tracking camera")
	}
}

func TestToggleKeysReachFrame(t *testing.T) {
	w := newWorld(t)
	f := w.Frame(1.5)
	if !f.Fog || !f.Phong || !f.Skybox || f.Night {
		t.Fatalf("initial frame = fog %v phong %v skybox %v night %v", f.Fog, f.Phong, f.Skybox, f.Night)
	}

	tests := []struct {
		key   input.Key
		check func(f frameFlags) bool
		desc  string
	}{
		{input.KeyF, func(f frameFlags) bool { return !f.fog }, "F turns fog off"},
		{input.KeyF, func(f frameFlags) bool { return f.fog }, "F turns fog back on"},
		{input.KeyP, func(f frameFlags) bool { return !f.phong }, "P selects Gouraud"},
		{input.KeyX, func(f frameFlags) bool { return !f.skybox }, "X hides the skybox"},
		{input.KeyC, func(f frameFlags) bool { return f.night && !f.fog && f.skybox }, "C is night without fog"},
		{input.KeyZ, func(f frameFlags) bool { return !f.night && f.fog && f.skybox }, "Z is day with fog"},
	}
	for _, tt := range tests {
		press(w, tt.key)
		f := w.Frame(1.5)
		if !tt.check(frameFlags{f.Fog, f.Phong, f.Skybox, f.Night}) {
			t.Errorf("%s: got fog %v phong %v skybox %v night %v", tt.desc, f.Fog, f.Phong, f.Skybox, f.Night)
		}
	}
}

type frameFlags struct {
	fog, phong, skybox, night bool
}

func TestSkySwapKeepsOneSkyLight(t *testing.T) {
	w := newWorld(t)
	for _, k := range []input.Key{input.KeyC, input.KeyC, input.KeyZ, input.KeyC, input.KeyZ, input.KeyZ} {
		press(w, k)
		lights := w.Frame(1).Lights
		if len(lights) != 2 {
			t.Fatalf("after %v: %d lights, want sky and headlight", k, len(lights))
		}
		var directional int
		for _, l := range lights {
			if l.Position[3] == 0 {
				directional++
			}
		}
		if directional != 1 {
			t.Errorf("after %v: %d sky lights", k, directional)
		}
	}
	if w.Lights().Night() {
		t.Error("rig should end on day")
	}
}

func TestBeaconKey(t *testing.T) {
	w := newWorld(t)
	press(w, input.KeyQ)
	w.Step(input.Deltas{}, 0.016, 1)
	if len(w.Frame(1).Lights) != 3 {
		t.Fatal("Q should add the beacon")
	}
	b, _ := w.Lights().Beacon()
	if b.Position.XYZ() != w.Player().Position() {
		t.Errorf("beacon at %+v, player at %+v", b.Position, w.Player().Position())
	}
	press(w, input.KeyQ)
	if len(w.Frame(1).Lights) != 2 {
		t.Error("second Q should remove the beacon")
	}
}

func TestHeadlightKeys(t *testing.T) {
	w := newWorld(t)
	step := testConfig().Lighting.HeadlightStep
	pitch0, yaw0 := w.Lights().HeadlightAngles()

	w.HandleKey(input.KeyEvent{Key: input.KeyI, Action: input.Press})
	w.HandleKey(input.KeyEvent{Key: input.KeyI, Action: input.Repeat})
	w.HandleKey(input.KeyEvent{Key: input.KeyI, Action: input.Release})
	w.HandleKey(input.KeyEvent{Key: input.KeyL, Action: input.Press})

	pitch, yaw := w.Lights().HeadlightAngles()
	if math32.Abs(pitch-(pitch0+2*step)) > eps {
		t.Errorf("pitch = %v, want %v", pitch, pitch0+2*step)
	}
	if math32.Abs(yaw-(yaw0+step)) > eps {
		t.Errorf("yaw = %v, want %v", yaw, yaw0+step)
	}

	w.HandleKey(input.KeyEvent{Key: input.KeyK, Action: input.Press})
	w.HandleKey(input.KeyEvent{Key: input.KeyJ, Action: input.Press})
	pitch, yaw = w.Lights().HeadlightAngles()
	if math32.Abs(pitch-(pitch0+step)) > eps || math32.Abs(yaw-yaw0) > eps {
		t.Errorf("after K/J: pitch %v yaw %v", pitch, yaw)
	}
}

func TestCommands(t *testing.T) {
	w := newWorld(t)
	tests := []struct {
		ev   input.KeyEvent
		want Command
	}{
		{input.KeyEvent{Key: input.KeyEscape, Action: input.Press}, CommandQuit},
		{input.KeyEvent{Key: input.KeyEscape, Action: input.Release}, CommandNone},
		{input.KeyEvent{Key: input.KeyF12, Action: input.Press}, CommandScreenshot},
		{input.KeyEvent{Key: input.KeyF12, Action: input.Repeat}, CommandNone},
		{input.KeyEvent{Key: input.KeyW, Action: input.Press}, CommandNone},
		{input.KeyEvent{Key: input.KeyUnknown, Action: input.Press}, CommandNone},
	}
	for _, tt := range tests {
		if got := w.HandleKey(tt.ev); got != tt.want {
			t.Errorf("HandleKey(%+v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestStaticZoomDrivesProjection(t *testing.T) {
	w := newWorld(t)
	g := testConfig().Graphics
	want := math.Perspective(math.Radians(g.FOV), 2, g.Near, g.Far)
	if w.Frame(2).Projection != want {
		t.Error("chase projection should use the configured FOV")
	}

	press(w, input.KeyU)
	w.Step(input.Deltas{Scroll: 10}, 0.016, 0.016)
	zoom := w.Cameras().Static().Zoom
	if zoom != g.FOV-10 {
		t.Fatalf("zoom = %v", zoom)
	}
	want = math.Perspective(math.Radians(zoom), 2, g.Near, g.Far)
	if w.Frame(2).Projection != want {
		t.Error("static projection should use the camera zoom")
	}
}

func TestInstances(t *testing.T) {
	w := newWorld(t)
	inst := w.Instances()
	all := w.Entities().All()
	if len(inst) != len(all) {
		t.Fatalf("instances = %d, entities = %d", len(inst), len(all))
	}
	for i, e := range all {
		if inst[i].Mesh != e.Mesh || inst[i].Model != e.ModelMatrix() {
			t.Errorf("instance %d does not match its entity", i)
		}
	}
	if again := w.Instances(); &again[0] != &inst[0] {
		t.Error("instance slice should be reused")
	}
}

func TestSpawnOffHeightmap(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"past the last column", 33, 16},
		{"past the last row", 16, 33},
		{"negative", -1, 0},
		{"default spawn on a small map", 300, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Player.SpawnX, cfg.Player.SpawnY = tt.x, tt.y
			_, err := New(cfg, slopedGround(t), testMeshes())
			if !errors.Is(err, ErrSpawnOffTerrain) {
				t.Errorf("New with spawn (%d, %d) = %v, want ErrSpawnOffTerrain", tt.x, tt.y, err)
			}
		})
	}
}

func TestBarrelOffHeightmapSkipped(t *testing.T) {
	cfg := testConfig()
	cfg.Assets.BarrelTrack = append(cfg.Assets.BarrelTrack, [2]int{300, 400}, [2]int{-3, 2})
	w, err := New(cfg, slopedGround(t), testMeshes())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var barrels int
	for _, e := range w.Entities().All() {
		if e.Name == "barrel" {
			barrels++
		}
	}
	if barrels != 3 {
		t.Errorf("barrels = %d, want the 3 on the heightmap", barrels)
	}
}

// wideGround is a 512x512 heightmap on a 400 unit square, large enough for
// the default spawn pixel.
func wideGround(t *testing.T) *terrain.Terrain {
	t.Helper()
	const n = 512
	f := &terrain.HeightField{Width: n, Height: n, Samples: make([]float32, n*n)}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			f.Samples[row*n+col] = float32(col)/(n-1)*0.5 + float32(row)/(n-1)*0.25
		}
	}
	tr, err := terrain.New(f, 400, 40)
	if err != nil {
		t.Fatalf("terrain.New: %v", err)
	}
	return tr
}

func TestSpawnAtDefaultPixel(t *testing.T) {
	cfg := testConfig()
	def := config.Default().Player
	cfg.Player.SpawnX, cfg.Player.SpawnY = def.SpawnX, def.SpawnY
	if def.SpawnX != 300 || def.SpawnY != 400 {
		t.Fatalf("default spawn = (%d, %d)", def.SpawnX, def.SpawnY)
	}

	ground := wideGround(t)
	w, err := New(cfg, ground, testMeshes())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const cell = float32(400) / 511
	p := w.Player().Position()
	wantX, wantZ := -200+300*cell, -200+400*cell
	if math32.Abs(p.X-wantX) > eps || math32.Abs(p.Z-wantZ) > eps {
		t.Fatalf("spawn = %+v, want x %v z %v", p, wantX, wantZ)
	}
	wantY := (300.0/511*0.5 + 400.0/511*0.25) * 40
	if math32.Abs(p.Y-float32(wantY)) > 1e-3 {
		t.Errorf("spawn Y = %v, want %v", p.Y, wantY)
	}

	press(w, input.KeyW)
	for i := 1; i <= 50; i++ {
		w.Step(input.Deltas{}, 0.1, float32(i)*0.1)
	}
	q := w.Player().Position()
	moved := cfg.Player.MoveSpeed * 5
	if math32.Abs(q.Z-(p.Z+moved)) > 1e-2 || math32.Abs(q.X-p.X) > 1e-3 {
		t.Errorf("after 5s at %v: %+v, want z %v", cfg.Player.MoveSpeed, q, p.Z+moved)
	}
	if h := ground.HeightAt(q.X, q.Z); math32.Abs(q.Y-h) > eps {
		t.Errorf("Y = %v, ground = %v", q.Y, h)
	}
}

// uniformProgram keeps the last integer uniforms a pass set.
type uniformProgram struct {
	ints map[string]int32
}

func newUniformProgram() *uniformProgram {
	return &uniformProgram{ints: map[string]int32{}}
}

func (p *uniformProgram) Use() {}

func (p *uniformProgram) SetInt(name string, v int32) { p.ints[name] = v }

func (p *uniformProgram) SetFloat(string, float32) {}

func (p *uniformProgram) SetVec3(string, math.Vec3) {}

func (p *uniformProgram) SetVec4(string, math.Vec4) {}

func (p *uniformProgram) SetMat4(string, math.Mat4) {}

type nopDevice struct{}

func (nopDevice) SetCulling(bool) {}

func (nopDevice) BindTexture(int, uint32) {}

func (nopDevice) BindCubemap(int, uint32) {}

func (nopDevice) DrawIndexed(uint32, int32, int) {}

func TestFogKeyReachesShaders(t *testing.T) {
	w := newWorld(t)
	phong, gouraud, ground := newUniformProgram(), newUniformProgram(), newUniformProgram()
	r := scene.Renderer{
		Entity:  scene.NewEntityPass(phong, gouraud),
		Terrain: scene.NewTerrainPass(ground, scene.TerrainMesh{Model: math.Identity()}),
	}

	for i, want := range []int32{0, 1} {
		press(w, input.KeyF)
		w.Step(input.Deltas{}, 0.016, float32(i+1)*0.016)
		f := w.Frame(1.5)
		r.Render(nopDevice{}, &f, w.Instances())

		if got := phong.ints["use_fog"]; got != want {
			t.Errorf("press %d: entity use_fog = %d, want %d", i+1, got, want)
		}
		if got := ground.ints["use_fog"]; got != want {
			t.Errorf("press %d: terrain use_fog = %d, want %d", i+1, got, want)
		}
	}
}

func TestCloseClearsEntities(t *testing.T) {
	w := newWorld(t)
	if len(w.Instances()) == 0 {
		t.Fatal("no instances before Close")
	}
	w.Close()
	if n := w.Entities().Count(); n != 0 {
		t.Errorf("entities after Close = %d", n)
	}
	if n := len(w.Instances()); n != 0 {
		t.Errorf("instances after Close = %d", n)
	}
}
