package emu

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"snestor/cart"
	"snestor/emu/log"
)

type Config struct {
	// Mapping forces the cartridge layout, bypassing header detection.
	Mapping   cart.Mapping    `toml:"mapping"`
	Emulation EmulationConfig `toml:"emulation"`
	Log       LogConfig       `toml:"log"`

	TraceOut io.WriteCloser `toml:"-"`
}

type EmulationConfig struct {
	// CPU cycles per frame and per scanline, and first vblank line.
	CyclesPerFrame int64 `toml:"cycles_per_frame"`
	Scanlines      int   `toml:"scanlines"`
	VBlankLine     int   `toml:"vblank_line"`

	// Serialize register space accesses, allowing other goroutines to poke
	// at registers during emulation.
	SharedBus bool `toml:"shared_bus"`
}

type LogConfig struct {
	Modules []string `toml:"modules"`
}

const DefaultFileMode = os.FileMode(0755)

var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.FatalZ("failed to get user config directory").Error("err", err).End()
	}

	dir := filepath.Join(cfgdir, "snestor")
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		log.ModEmu.FatalZ("failed to create config directory").String("dir", dir).Error("err", err).End()
	}
	return dir
})

// NTSC timings: 1364 master cycles per line, 262 lines, 8 master cycles per
// slow memory access.
var defaultConfig = Config{
	Mapping: cart.Auto,
	Emulation: EmulationConfig{
		CyclesPerFrame: 1364 * 262 / 8,
		Scanlines:      262,
		VBlankLine:     225,
	},
}

func DefaultConfig() Config { return defaultConfig }

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the snestor config
// directory, or provide a default one.
func LoadConfigOrDefault() Config {
	cfg, err := LoadConfig(filepath.Join(ConfigDir(), cfgFilename))
	if err != nil {
		return defaultConfig
	}
	return cfg
}

// LoadConfig loads the configuration at path. Missing values are taken from
// the default configuration.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return defaultConfig, err
	}
	cfg.Emulation.check()
	return cfg, nil
}

func (ecfg *EmulationConfig) check() {
	def := defaultConfig.Emulation
	if ecfg.CyclesPerFrame <= 0 {
		log.ModEmu.WarnZ("Invalid cycles per frame, using default").Int64("val", ecfg.CyclesPerFrame).End()
		ecfg.CyclesPerFrame = def.CyclesPerFrame
	}
	if ecfg.Scanlines <= 0 || ecfg.VBlankLine <= 0 || ecfg.VBlankLine >= ecfg.Scanlines {
		log.ModEmu.WarnZ("Invalid scanline timings, using default").
			Int("scanlines", ecfg.Scanlines).
			Int("vblank", ecfg.VBlankLine).
			End()
		ecfg.Scanlines = def.Scanlines
		ecfg.VBlankLine = def.VBlankLine
	}
}

// SaveConfig into snestor config directory.
func SaveConfig(cfg Config) error {
	return SaveConfigTo(filepath.Join(ConfigDir(), cfgFilename), cfg)
}

func SaveConfigTo(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
