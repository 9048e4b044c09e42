package app

import (
	"os"
	"path/filepath"

	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Config struct {
	API      api.Config `yaml:"api"`
	Language string     `yaml:"language"`
	Log      LogConfig  `yaml:"log"`
	StateDir string     `yaml:"state_dir"`
}

func DefaultConfig() Config {
	stateDir := ".screenctl"
	if home, err := os.UserHomeDir(); err == nil {
		stateDir = filepath.Join(home, ".screenctl")
	}
	return Config{
		API:      api.DefaultConfig(),
		Language: "en",
		Log:      LogConfig{Level: "info"},
		StateDir: stateDir,
	}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/screenctl/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "screenctl", "config.yaml")
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// BindFlags registers overrides for the config on fs. Values are only applied
// for flags the user actually set; call ApplyFlags after parsing.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("base-url", "", "API base URL")
	fs.Bool("mocks", true, "answer API calls from mock maps")
	fs.Duration("mock-delay", 0, "artificial latency for mock responses")
	fs.String("mock-scripts", "", "YAML file with scripted mocks")
	fs.String("lang", "", "UI language (BCP-47)")
	fs.String("log-level", "", "log level (trace|debug|info|warn|error)")
	fs.String("log-file", "", "write logs to this file")
}

func ApplyFlags(fs *pflag.FlagSet, cfg *Config) error {
	var err error
	set := func(name string, fn func() error) {
		if err == nil && fs.Changed(name) {
			err = fn()
		}
	}
	set("base-url", func() (e error) { cfg.API.BaseURL, e = fs.GetString("base-url"); return })
	set("mocks", func() (e error) { cfg.API.UseMocks, e = fs.GetBool("mocks"); return })
	set("mock-delay", func() (e error) { cfg.API.MockDelay, e = fs.GetDuration("mock-delay"); return })
	set("mock-scripts", func() (e error) { cfg.API.MockScripts, e = fs.GetString("mock-scripts"); return })
	set("lang", func() (e error) { cfg.Language, e = fs.GetString("lang"); return })
	set("log-level", func() (e error) { cfg.Log.Level, e = fs.GetString("log-level"); return })
	set("log-file", func() (e error) { cfg.Log.File, e = fs.GetString("log-file"); return })
	return errors.Wrap(err, "apply flags")
}
