// Package config handles scene configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Player   PlayerConfig   `yaml:"player"`
	Camera   CameraConfig   `yaml:"camera"`
	Lighting LightingConfig `yaml:"lighting"`
	Audio    AudioConfig    `yaml:"audio"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	// ScreenshotScale renders F12 captures offscreen at this multiple of
	// the window size.
	ScreenshotScale int `yaml:"screenshot_scale"`
}

// SceneConfig holds the initial toggles and scene population.
type SceneConfig struct {
	SkyboxSize    float32 `yaml:"skybox_size"`
	Fog           bool    `yaml:"fog"`
	Phong         bool    `yaml:"phong"`
	SkyboxVisible bool    `yaml:"skybox_visible"`
	Decorations   int     `yaml:"decorations"`
	Seed          int64   `yaml:"seed"`
}

// TerrainConfig holds the heightmap footprint and layer textures.
type TerrainConfig struct {
	Size      float32 `yaml:"size"`
	MaxHeight float32 `yaml:"max_height"`
	Heightmap string  `yaml:"heightmap"`
	BlendMap  string  `yaml:"blend_map"`
	// Layers are the background, red, green and blue ground textures.
	Layers [4]string `yaml:"layers"`
	Tiling float32   `yaml:"tiling"`
}

// PlayerConfig holds the vehicle model and its kinematic constants.
type PlayerConfig struct {
	Model  string  `yaml:"model"`
	Scale  float32 `yaml:"scale"`
	SpawnX int     `yaml:"spawn_x"` // heightmap pixel column
	SpawnY int     `yaml:"spawn_y"` // heightmap pixel row
	// Mode is "basic" or "physics".
	Mode string `yaml:"mode"`

	MoveSpeed     float32 `yaml:"move_speed"`
	RotationSpeed float32 `yaml:"rotation_speed"` // rad/s at full steer

	EngineForce    float32 `yaml:"engine_force"`
	BrakeForce     float32 `yaml:"brake_force"`
	EBrakeForce    float32 `yaml:"ebrake_force"`
	Drag           float32 `yaml:"drag"`
	RollResistance float32 `yaml:"roll_resistance"`
	Grip           float32 `yaml:"grip"`
	WheelBase      float32 `yaml:"wheel_base"`
	MaxSteer       float32 `yaml:"max_steer"`       // radians
	SteerFrequency float32 `yaml:"steer_frequency"` // spring angular frequency
}

// CameraConfig holds pointer sensitivity and chase recentring.
type CameraConfig struct {
	Sensitivity      float32 `yaml:"sensitivity"`
	ResetSpeed       float32 `yaml:"reset_speed"` // rad/s
	ThrottleDeadzone float32 `yaml:"throttle_deadzone"`
	// Mode is the camera selected at startup: "chase", "tracking" or "static".
	Mode string `yaml:"mode"`
}

// LightingConfig holds the light rig tuning.
type LightingConfig struct {
	HeadlightStep float32 `yaml:"headlight_step"` // radians per key event
	BeaconSpeed   float32 `yaml:"beacon_speed"`   // rad/s
}

// AudioConfig holds the looping sound tracks. Audio is optional: a
// missing device or file only logs a warning.
type AudioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Volume   float64 `yaml:"volume"`
	Ambience string  `yaml:"ambience"` // WAV, relative to assets root
	Engine   string  `yaml:"engine"`   // WAV, relative to assets root
	// EngineIdle is the engine track level at rest; it rises to 1 at
	// EngineTopSpeed.
	EngineIdle     float64 `yaml:"engine_idle"`
	EngineTopSpeed float64 `yaml:"engine_top_speed"`
}

// AssetsConfig holds asset file paths relative to Root.
type AssetsConfig struct {
	Root        string             `yaml:"root"`
	DaySkybox   [6]string          `yaml:"day_skybox"`
	NightSkybox [6]string          `yaml:"night_skybox"`
	Decorations []DecorationConfig `yaml:"decorations"`
	Barrel      DecorationConfig   `yaml:"barrel"`
	// BarrelTrack lists heightmap pixels (column, row) that get a barrel.
	BarrelTrack [][2]int `yaml:"barrel_track"`
}

// DecorationConfig is one static prop kind.
type DecorationConfig struct {
	Model string  `yaml:"model"`
	Scale float32 `yaml:"scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

func skybox(dir string) [6]string {
	return [6]string{
		dir + "/right.tga",
		dir + "/left.tga",
		dir + "/top.tga",
		dir + "/bottom.tga",
		dir + "/back.tga",
		dir + "/front.tga",
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			Near:       1,
			Far:        800,

			ScreenshotScale: 1,
		},
		Scene: SceneConfig{
			SkyboxSize:    200,
			Fog:           true,
			Phong:         true,
			SkyboxVisible: true,
			Decorations:   500,
			Seed:          1,
		},
		Terrain: TerrainConfig{
			Size:      400,
			MaxHeight: 40,
			Heightmap: "terrain/heightmap.png",
			BlendMap:  "terrain/blendmap.png",
			Layers: [4]string{
				"terrain/sand.png",
				"terrain/mud.png",
				"terrain/grass.png",
				"terrain/path.png",
			},
			Tiling: 40,
		},
		Player: PlayerConfig{
			Model:          "models/stagecoach.glb",
			Scale:          0.1,
			SpawnX:         300,
			SpawnY:         400,
			Mode:           "basic",
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
		},
		Camera: CameraConfig{
			Sensitivity:      0.01,
			ResetSpeed:       1.5707964, // π/2
			ThrottleDeadzone: 0.1,
			Mode:             "chase",
		},
		Lighting: LightingConfig{
			HeadlightStep: 0.05,
			BeaconSpeed:   3,
		},
		Audio: AudioConfig{
			Enabled:        false,
			Volume:         0.8,
			Ambience:       "sounds/prairie.wav",
			Engine:         "sounds/wheels.wav",
			EngineIdle:     0.2,
			EngineTopSpeed: 10,
		},
		Assets: AssetsConfig{
			Root:        "assets",
			DaySkybox:   skybox("skybox/day"),
			NightSkybox: skybox("skybox/night"),
			Decorations: []DecorationConfig{
				{Model: "models/wagon.glb", Scale: 0.1},
				{Model: "models/barrel.glb", Scale: 0.1},
				{Model: "models/windmill.glb", Scale: 0.005},
				{Model: "models/horse.glb", Scale: 0.001},
				{Model: "models/bison.glb", Scale: 0.05},
				{Model: "models/house.glb", Scale: 0.005},
			},
			Barrel: DecorationConfig{Model: "models/barrel.glb", Scale: 0.1},
			BarrelTrack: [][2]int{
				{263, 262}, {226, 250}, {209, 273}, {213, 299},
				{342, 717}, {329, 734}, {326, 751}, {354, 755}, {372, 754},
				{750, 400}, {765, 396}, {748, 381},
				{828, 480}, {842, 476}, {854, 478}, {852, 500}, {852, 521}, {842, 547},
				{772, 402},
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
