package invaders

import (
	"fmt"
	"image/color"
	"os"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	ss "github.com/bjorn2code64/shapeshifter"
)

// Config holds every tunable of a round. DefaultConfig returns the classic
// values; LoadConfig overlays YAML onto them.
type Config struct {
	Screen  ScreenConfig  `yaml:"screen"`
	Player  PlayerConfig  `yaml:"player"`
	Bullet  BulletConfig  `yaml:"bullet"`
	Barrier BarrierConfig `yaml:"barrier"`
	Invader InvaderConfig `yaml:"invader"`
	Ship    ShipConfig    `yaml:"ship"`
	Colors  ColorConfig   `yaml:"colors"`
	Assets  AssetConfig   `yaml:"assets"`
}

// ScreenConfig describes the fixed logical resolution and the HUD strip.
type ScreenConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	TextHeight float64 `yaml:"text_height"`
	// ShipLane is the height of the strip below the score the bonus ship flies in.
	ShipLane float64 `yaml:"ship_lane"`
}

// PlayerConfig describes the player's cannon and lives.
type PlayerConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	StartX         float64 `yaml:"start_x"`
	StartY         float64 `yaml:"start_y"`
	Speed          float64 `yaml:"speed"`
	BulletSpeed    float64 `yaml:"bullet_speed"`
	RespawnDelayMs uint64  `yaml:"respawn_delay_ms"`
	Lives          int     `yaml:"lives"`
	LivesX         float64 `yaml:"lives_x"`
	LivesY         float64 `yaml:"lives_y"`
	IndicatorScale float64 `yaml:"indicator_scale"`
	IndicatorGap   float64 `yaml:"indicator_gap"`
}

// BulletConfig is the size shared by player and invader bullets.
type BulletConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BarrierConfig lays out the destructible shields.
type BarrierConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Count  int     `yaml:"count"`
	Y      float64 `yaml:"y"`
	// Cells per barrier along each axis.
	DividerX int `yaml:"divider_x"`
	DividerY int `yaml:"divider_y"`
}

// InvaderConfig describes the formation.
type InvaderConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Border      float64 `yaml:"border"`
	Cols        int     `yaml:"cols"`
	Rows        int     `yaml:"rows"`
	Speed       float64 `yaml:"speed"`
	MoveDelayMs uint64  `yaml:"move_delay_ms"`
	// SpeedUpMs is removed from the move delay on every kill.
	SpeedUpMs  int64   `yaml:"speed_up_ms"`
	Drop       float64 `yaml:"drop"`
	BulletSpeed float64 `yaml:"bullet_speed"`
	// FireChance is the starting fire-chance denominator.
	FireChance int `yaml:"fire_chance"`
	// Scores is indexed by Species.
	Scores [speciesCount]int `yaml:"scores"`
}

// ShipConfig describes the bonus ship.
type ShipConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`
	SpawnMs        uint64  `yaml:"spawn_ms"`
	Score          int     `yaml:"score"`
	ScoreDisplayMs uint64  `yaml:"score_display_ms"`
	// ScoreRise is how far the floating score label drifts up while shown.
	ScoreRise float64 `yaml:"score_rise"`
}

// ColorConfig is the palette.
type ColorConfig struct {
	Text     ss.Color `yaml:"text"`
	Bullet   ss.Color `yaml:"bullet"`
	Player   ss.Color `yaml:"player"`
	Barrier  ss.Color `yaml:"barrier"`
	Invader  ss.Color `yaml:"invader"`
	Ship     ss.Color `yaml:"ship"`
	GameOver ss.Color `yaml:"game_over"`
}

// AssetConfig names the sprite images. Paths are relative to Dir.
type AssetConfig struct {
	Dir         string `yaml:"dir"`
	SquidClosed string `yaml:"squid_closed"`
	SquidOpen   string `yaml:"squid_open"`
	CrabClosed  string `yaml:"crab_closed"`
	CrabOpen    string `yaml:"crab_open"`
	OctoClosed  string `yaml:"octopus_closed"`
	OctoOpen    string `yaml:"octopus_open"`
	Ship        string `yaml:"ship"`
}

// fromRGBA converts a palette entry to an engine color.
func fromRGBA(c color.RGBA) ss.Color {
	return ss.RGB(c.R, c.G, c.B)
}

// DefaultConfig returns the classic round: a 10x5 formation, 3 lives, four
// barriers and a fire-chance denominator of 60.
func DefaultConfig() Config {
	return Config{
		Screen: ScreenConfig{
			Width:      1000,
			Height:     1080,
			TextHeight: 18,
			ShipLane:   50,
		},
		Player: PlayerConfig{
			Width:          80,
			Height:         30,
			StartX:         0,
			StartY:         1000,
			Speed:          10,
			BulletSpeed:    20,
			RespawnDelayMs: 5000,
			Lives:          3,
			LivesX:         20,
			LivesY:         1050,
			IndicatorScale: 0.6,
			IndicatorGap:   10,
		},
		Bullet: BulletConfig{Width: 5, Height: 30},
		Barrier: BarrierConfig{
			Width:    100,
			Height:   50,
			Count:    4,
			Y:        900,
			DividerX: 8,
			DividerY: 6,
		},
		Invader: InvaderConfig{
			Width:       60,
			Height:      40,
			Border:      10,
			Cols:        10,
			Rows:        5,
			Speed:       25,
			MoveDelayMs: 1000,
			SpeedUpMs:   15,
			Drop:        60,
			BulletSpeed: 15,
			FireChance:  60,
			Scores:      [speciesCount]int{30, 20, 10},
		},
		Ship: ShipConfig{
			Width:          70,
			Height:         20,
			Speed:          4,
			SpawnMs:        10000,
			Score:          100,
			ScoreDisplayMs: 2000,
			ScoreRise:      30,
		},
		Colors: ColorConfig{
			Text:     fromRGBA(colornames.Lime),
			Bullet:   fromRGBA(colornames.White),
			Player:   fromRGBA(colornames.White),
			Barrier:  fromRGBA(colornames.Lime),
			Invader:  fromRGBA(colornames.Lime),
			Ship:     fromRGBA(colornames.Fuchsia),
			GameOver: fromRGBA(colornames.White),
		},
		Assets: AssetConfig{
			Dir:         "assets",
			SquidClosed: "squidClosed.png",
			SquidOpen:   "squidOpen.png",
			CrabClosed:  "crabClosed.png",
			CrabOpen:    "crabOpen.png",
			OctoClosed:  "octopusClosed.png",
			OctoOpen:    "octopusOpen.png",
			Ship:        "UFO.png",
		},
	}
}

// LoadConfig overlays YAML data onto DefaultConfig and validates the result.
// Keys missing from data keep their default values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Validate rejects configurations a round cannot be built from.
func (c Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("invalid config: screen size %dx%d", c.Screen.Width, c.Screen.Height)
	case c.Invader.Cols <= 0 || c.Invader.Rows <= 0:
		return fmt.Errorf("invalid config: formation %dx%d", c.Invader.Cols, c.Invader.Rows)
	case c.Player.Lives < 1:
		return fmt.Errorf("invalid config: lives %d", c.Player.Lives)
	case c.Invader.FireChance < 1:
		return fmt.Errorf("invalid config: fire chance %d", c.Invader.FireChance)
	case c.Barrier.Count < 0 || c.Barrier.DividerX < 1 || c.Barrier.DividerY < 1:
		return fmt.Errorf("invalid config: barrier layout %d x (%dx%d)",
			c.Barrier.Count, c.Barrier.DividerX, c.Barrier.DividerY)
	}
	return nil
}
