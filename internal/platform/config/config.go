package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so yaml values can use "90s" or "24h" syntax.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Web     WebConfig     `yaml:"web"`
	Storage StorageConfig `yaml:"storage"`
	Tasks   TasksConfig   `yaml:"tasks"`
	TTS     TTSConfig     `yaml:"tts"`
}

type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	AuthSecret string `yaml:"auth_secret"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type WebConfig struct {
	Enabled   bool   `yaml:"enabled"`
	StaticDir string `yaml:"static_dir"`
}

type StorageConfig struct {
	DataDir  string `yaml:"data_dir"`
	AudioDir string `yaml:"audio_dir"`
}

type TasksConfig struct {
	Workers     int               `yaml:"workers"`
	QueueSize   int               `yaml:"queue_size"`
	ResultStore ResultStoreConfig `yaml:"result_store"`
}

type ResultStoreConfig struct {
	Driver string      `yaml:"driver"`
	TTL    Duration    `yaml:"ttl"`
	Redis  RedisConfig `yaml:"redis,omitempty"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

type TTSConfig struct {
	DefaultProvider string          `yaml:"default_provider"`
	OpenAI          OpenAITTSConfig `yaml:"openai"`
	Edge            EdgeTTSConfig   `yaml:"edge"`
}

type OpenAITTSConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"url,omitempty"`
	Model   string `yaml:"model"`
}

type EdgeTTSConfig struct {
	Rate   string `yaml:"rate,omitempty"`
	Volume string `yaml:"volume,omitempty"`
	Pitch  string `yaml:"pitch,omitempty"`
}
