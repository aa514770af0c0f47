package config

import "time"

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:       "0.0.0.0",
			Port:       8000,
			AuthSecret: "change_me",
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "data/logs",
			File:  "server.log",
		},
		Web: WebConfig{
			Enabled:   true,
			StaticDir: "./web",
		},
		Storage: StorageConfig{
			DataDir:  "./data",
			AudioDir: "./data/podcasts",
		},
		Tasks: TasksConfig{
			Workers:   4,
			QueueSize: 64,
			ResultStore: ResultStoreConfig{
				Driver: "memory",
				TTL:    Duration(24 * time.Hour),
			},
		},
		TTS: TTSConfig{
			DefaultProvider: "local/edge",
			OpenAI: OpenAITTSConfig{
				Model: "tts-1",
			},
		},
	}
}
