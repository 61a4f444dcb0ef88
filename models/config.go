package models

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"gopkg.in/yaml.v2"
)

const ConfigFile = "config.yml"

type Config struct {
	SymbolFile string `yaml:"symbols"`

	// seeded into the first argument register, so this+offset math lands on recognizable addresses
	StructBase uint64 `yaml:"struct_base"`
	StackBase  uint64 `yaml:"stack_base"`
	StackSize  uint64 `yaml:"stack_size"`

	MaxInstructions int    `yaml:"max_instructions"`
	MaxFuncSize     uint64 `yaml:"max_func_size"`

	Color   bool `yaml:"color"`
	Verbose bool `yaml:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		StructBase:      0x1000000,
		StackBase:       0x7ff00000,
		StackSize:       0x10000,
		MaxInstructions: 100000,
		MaxFuncSize:     0x4000,
	}
}

// ParseConfig overlays yaml data onto the defaults.
func ParseConfig(data []byte) (*Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	return c, nil
}

// LoadConfig reads path, or config.yml from the user/system config folders if path is empty.
// A missing default config is not an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		dirs := configdir.New("smkm", "stlocate")
		folder := dirs.QueryFolderContainsFile(ConfigFile)
		if folder == nil {
			return DefaultConfig(), nil
		}
		data, err := folder.ReadFile(ConfigFile)
		if err != nil {
			return nil, errors.Wrap(err, "reading config")
		}
		return ParseConfig(data)
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	return ParseConfig(data)
}
