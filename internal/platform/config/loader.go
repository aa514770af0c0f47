package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	platformerrors "wavecast-server-go/internal/platform/errors"
)

// Loader reads configuration from a yaml file with environment overrides.
type Loader struct {
	path      string
	useDotEnv bool
}

// NewLoader creates a loader. An empty path falls back to the WAVECAST_CONFIG
// environment variable and then ./config.yaml.
func NewLoader(path string) *Loader {
	return &Loader{
		path:      path,
		useDotEnv: true,
	}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// Result captures the loaded configuration and its origin path.
type Result struct {
	Config *Config
	Path   string
}

// Load resolves the config file, parses it and applies environment overrides.
// A missing file is not an error; defaults are used instead.
func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file found, using system environment")
		}
	}

	path := l.path
	if path == "" {
		path = os.Getenv("WAVECAST_CONFIG")
	}
	if path == "" {
		path = "config.yaml"
	}

	cfg := DefaultConfig()
	origin := "defaults"

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, platformerrors.Wrap(platformerrors.KindConfig, "config.load",
				"failed to parse config file", err)
		}
		origin = path
	case os.IsNotExist(err):
		// keep defaults
	default:
		return nil, platformerrors.Wrap(platformerrors.KindConfig, "config.load",
			"failed to read config file", err)
	}

	applyEnvOverrides(cfg)

	return &Result{
		Config: cfg,
		Path:   origin,
	}, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WAVECAST_AUTH_SECRET"); v != "" {
		cfg.Server.AuthSecret = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.TTS.OpenAI.APIKey = v
	}
	if v := os.Getenv("WAVECAST_REDIS_ADDR"); v != "" {
		cfg.Tasks.ResultStore.Redis.Addr = v
	}
}
