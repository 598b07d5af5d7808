// Package config resolves a search run's settings into a config.Run
// value, layering an optional config file,
// environment variables, and CLI flags via github.com/spf13/viper:
// defaults via SetDefault, then an optional file, then HELSING_-prefixed
// environment variables, then explicit CLI overrides, in ascending
// priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/jaskij/helsing/helserr"
	"github.com/jaskij/helsing/tile"
)

const (
	configName = ".helsing"
	configType = "yaml"
	envPrefix  = "HELSING"
)

// Run is the fully resolved configuration for one search.
type Run struct {
	Min, Max uint64

	Threads      int
	Mode         string // count-pairs | dump-pairs | count-vampires | print-vampires
	Format       string // text | json
	MinFangPairs uint8
	TileSize     string // auto | single
	MaxTileSize  uint64

	CheckpointPath string
	Checksum       bool

	// ElementBits selects the fingerprint encoding: 64 (wide, default,
	// sound to 20 digits) or 32 (narrow, sound only to 10 digits).
	ElementBits int
}

// TileSizePolicy translates cfg.TileSize into the tile package's enum.
func (r Run) TileSizePolicy() tile.TileSizePolicy {
	if strings.EqualFold(r.TileSize, "single") {
		return tile.SingleTile
	}
	return tile.AutoTileSize
}

// UseNarrow reports whether the 32-bit narrow fingerprint encoding was
// selected.
func (r Run) UseNarrow() bool {
	return r.ElementBits == 32
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("threads", 4)
	v.SetDefault("mode", "print-vampires")
	v.SetDefault("format", "text")
	v.SetDefault("min_fang_pairs", 1)
	v.SetDefault("tile_size", "auto")
	v.SetDefault("max_tile_size", tile.DefaultMaxTileSize)
	v.SetDefault("checksum", false)
	v.SetDefault("element_bits", 64)
}

// Load resolves a Run from, in ascending priority: built-in defaults, an
// optional config file at configPath (or ./.helsing.yaml / $HOME/.helsing.yaml
// if configPath is empty), HELSING_-prefixed environment variables, and
// finally the already-parsed CLI overrides in cliOverrides.
func Load(configPath string, cliOverrides map[string]any) (Run, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Run{}, fmt.Errorf("read config: %w", err)
		}
	}

	for key, val := range cliOverrides {
		v.Set(key, val)
	}

	cfg := Run{
		Threads:        v.GetInt("threads"),
		Mode:           v.GetString("mode"),
		Format:         v.GetString("format"),
		MinFangPairs:   uint8(v.GetUint32("min_fang_pairs")),
		TileSize:       v.GetString("tile_size"),
		MaxTileSize:    v.GetUint64("max_tile_size"),
		CheckpointPath: v.GetString("checkpoint"),
		Checksum:       v.GetBool("checksum"),
		ElementBits:    v.GetInt("element_bits"),
	}

	if err := cfg.validate(); err != nil {
		return Run{}, err
	}
	return cfg, nil
}

func (r Run) validate() error {
	switch r.Mode {
	case "count-pairs", "dump-pairs", "count-vampires", "print-vampires":
	default:
		return fmt.Errorf("mode %q: %w", r.Mode, helserr.ErrInputParse)
	}
	switch r.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format %q: %w", r.Format, helserr.ErrInputParse)
	}
	if r.ElementBits != 32 && r.ElementBits != 64 {
		return fmt.Errorf("element-bits %d: %w", r.ElementBits, helserr.ErrInputParse)
	}
	if r.Threads < 1 {
		return fmt.Errorf("threads %d: %w", r.Threads, helserr.ErrInputParse)
	}
	return nil
}

// CapacityLimit returns the largest MAX value permitted for the
// configured element width: 10 digits for the narrow encoding, 20 digits
// (the full uint64 range) for the wide one.
func (r Run) CapacityLimit() uint64 {
	if r.UseNarrow() {
		return 9_999_999_999
	}
	return 18_446_744_073_709_551_615
}
