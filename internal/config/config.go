package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type SegmentationConfig struct {
	BaseURL        string  `toml:"base_url"`
	Threshold      float64 `toml:"threshold"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// BuilderConfig overrides the spatial inference thresholds. Zero values
// fall back to the calibrated defaults.
type BuilderConfig struct {
	OverlapIoU      float64 `toml:"overlap_iou"`
	ProximityFactor float64 `toml:"proximity_factor"`
	NearFactor      float64 `toml:"near_factor"`
	AdjacencyGap    float64 `toml:"adjacency_gap"`
}

// Prompts are fmt templates; empty strings fall back to the built-in
// defaults in the consuming packages.
type Prompts struct {
	Analysis string `toml:"analysis"`
	Report   string `toml:"report"`
}

type LoggerConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	LogFile    string `toml:"log_file"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
	Compress   bool   `toml:"compress"`
}

type Config struct {
	Server       ServerConfig       `toml:"server"`
	Memgraph     MemgraphConfig     `toml:"memgraph"`
	LLM          LLMConfig          `toml:"llm"`
	Segmentation SegmentationConfig `toml:"segmentation"`
	Builder      BuilderConfig      `toml:"builder"`
	Prompts      Prompts            `toml:"prompts"`
	Logger       LoggerConfig       `toml:"logger"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}
