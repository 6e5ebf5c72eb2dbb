package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "20:30"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Tue",...]
	Holidays []string `mapstructure:"holidays"` // ["2025-01-26"]
	Timezone string   `mapstructure:"timezone"` // e.g. "Asia/Kolkata" (optional)
}

// AnalysisConfig tunes the keyword/emotion extractor.
type AnalysisConfig struct {
	MaxActions    int     `mapstructure:"max_actions"`
	MaxSubjects   int     `mapstructure:"max_subjects"`
	ContextBoost  float64 `mapstructure:"context_boost"`
	MinRepeat     int     `mapstructure:"min_repeat"`
	Relationships int     `mapstructure:"relationships"` // precomputed per point
}

type PaletteConfig struct {
	Seed int64 `mapstructure:"seed"`
}

type SceneConfig struct {
	PickThreshold      float64       `mapstructure:"pick_threshold"`
	ZoomInFactor       float64       `mapstructure:"zoom_in_factor"`
	ZoomOutFactor      float64       `mapstructure:"zoom_out_factor"`
	ResetDuration      time.Duration `mapstructure:"reset_duration"`
	VisibleClusters    int           `mapstructure:"visible_clusters"`
	Connections        int           `mapstructure:"connections"`
	SpatialNorm        float64       `mapstructure:"spatial_norm"`
	FPS                int           `mapstructure:"fps"`
	DimOpacity         float64       `mapstructure:"dim_opacity"`
	FilteredSelectable bool          `mapstructure:"filtered_selectable"`
}

type LayoutConfig struct {
	Radius float64 `mapstructure:"radius"`
	Jitter float64 `mapstructure:"jitter"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
	Output string `mapstructure:"output"` // stderr | stdout | file path; empty = data dir file
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // e.g. ":9464"; empty disables the endpoint
}

type Config struct {
	Theme    string         `mapstructure:"theme"`
	DataDir  string         `mapstructure:"data_dir"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Palette  PaletteConfig  `mapstructure:"palette"`
	Scene    SceneConfig    `mapstructure:"scene"`
	Layout   LayoutConfig   `mapstructure:"layout"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

func Default() Config {
	return Config{
		Theme: "default",
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "20:30",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Holidays: []string{},
		},
		Analysis: AnalysisConfig{
			MaxActions:    10,
			MaxSubjects:   8,
			ContextBoost:  0.5,
			MinRepeat:     2,
			Relationships: 5,
		},
		Palette: PaletteConfig{Seed: 42},
		Scene: SceneConfig{
			PickThreshold:   2,
			ZoomInFactor:    0.8,
			ZoomOutFactor:   1.2,
			ResetDuration:   800 * time.Millisecond,
			VisibleClusters: 12,
			Connections:     3,
			SpatialNorm:     20,
			FPS:             20,
			DimOpacity:      0.25,
		},
		Layout: LayoutConfig{Radius: 10, Jitter: 2.5},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mindcloud", "config.yaml"), nil
}

// Load reads the config from the default XDG location.
func Load() (Config, error) {
	path, err := xdgConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields the defaults.
func LoadFrom(path string) (Config, error) {
	// decode into a zero value: viper holds the defaults, and decoding over
	// filled slices would keep default elements past the configured ones
	var cfg Config

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("MINDCLOUD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, Default())

	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("data_dir", cfg.DataDir)

	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.workdays", cfg.Reminder.Workdays)
	v.SetDefault("reminder.holidays", cfg.Reminder.Holidays)
	v.SetDefault("reminder.timezone", cfg.Reminder.Timezone)

	v.SetDefault("analysis.max_actions", cfg.Analysis.MaxActions)
	v.SetDefault("analysis.max_subjects", cfg.Analysis.MaxSubjects)
	v.SetDefault("analysis.context_boost", cfg.Analysis.ContextBoost)
	v.SetDefault("analysis.min_repeat", cfg.Analysis.MinRepeat)
	v.SetDefault("analysis.relationships", cfg.Analysis.Relationships)

	v.SetDefault("palette.seed", cfg.Palette.Seed)

	v.SetDefault("scene.pick_threshold", cfg.Scene.PickThreshold)
	v.SetDefault("scene.zoom_in_factor", cfg.Scene.ZoomInFactor)
	v.SetDefault("scene.zoom_out_factor", cfg.Scene.ZoomOutFactor)
	v.SetDefault("scene.reset_duration", cfg.Scene.ResetDuration)
	v.SetDefault("scene.visible_clusters", cfg.Scene.VisibleClusters)
	v.SetDefault("scene.connections", cfg.Scene.Connections)
	v.SetDefault("scene.spatial_norm", cfg.Scene.SpatialNorm)
	v.SetDefault("scene.fps", cfg.Scene.FPS)
	v.SetDefault("scene.dim_opacity", cfg.Scene.DimOpacity)
	v.SetDefault("scene.filtered_selectable", cfg.Scene.FilteredSelectable)

	v.SetDefault("layout.radius", cfg.Layout.Radius)
	v.SetDefault("layout.jitter", cfg.Layout.Jitter)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.output", cfg.Log.Output)

	v.SetDefault("metrics.addr", cfg.Metrics.Addr)
}

func (c *Config) normalize() {
	for i, d := range c.Reminder.Workdays {
		d = strings.ToLower(strings.TrimSpace(d))
		if len(d) >= 3 {
			d = d[:3]
		}
		if d != "" {
			d = strings.ToUpper(d[:1]) + d[1:]
		}
		c.Reminder.Workdays[i] = d
	}

	def := Default()
	if c.Analysis.MaxActions <= 0 {
		c.Analysis.MaxActions = def.Analysis.MaxActions
	}
	if c.Analysis.MaxSubjects <= 0 {
		c.Analysis.MaxSubjects = def.Analysis.MaxSubjects
	}
	if c.Analysis.MinRepeat < 2 {
		c.Analysis.MinRepeat = def.Analysis.MinRepeat
	}
	if c.Analysis.ContextBoost < 0 {
		c.Analysis.ContextBoost = 0
	}
	if c.Scene.VisibleClusters < 1 {
		c.Scene.VisibleClusters = 1
	}
	if c.Scene.VisibleClusters > 12 {
		c.Scene.VisibleClusters = 12
	}
	if c.Scene.PickThreshold <= 0 {
		c.Scene.PickThreshold = def.Scene.PickThreshold
	}
	if c.Scene.ZoomInFactor <= 0 || c.Scene.ZoomInFactor >= 1 {
		c.Scene.ZoomInFactor = def.Scene.ZoomInFactor
	}
	if c.Scene.ZoomOutFactor <= 1 {
		c.Scene.ZoomOutFactor = def.Scene.ZoomOutFactor
	}
	if c.Scene.FPS <= 0 {
		c.Scene.FPS = def.Scene.FPS
	}
	if c.Scene.SpatialNorm <= 0 {
		c.Scene.SpatialNorm = def.Scene.SpatialNorm
	}
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// DataPath returns a file path inside the data directory, creating the directory.
func (c Config) DataPath(name string) (string, error) {
	dir := strings.TrimSpace(c.DataDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".local", "share", "mindcloud")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
