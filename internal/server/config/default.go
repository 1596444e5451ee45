// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:3000"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultRateLimitRPS   = 20.0
	DefaultRateLimitBurst = 40

	DefaultDataDir      = "./data"
	DefaultSaveInterval = 5 * time.Minute

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:            DefaultHTTPAddr,
				ReadTimeout:     DefaultReadTimeout,
				WriteTimeout:    DefaultWriteTimeout,
				ShutdownTimeout: DefaultShutdownTimeout,
				RateLimit: RateLimitConfig{
					Enabled: true,
					RPS:     DefaultRateLimitRPS,
					Burst:   DefaultRateLimitBurst,
				},
			},
		},
		Storage: StorageSection{
			DataDir:      DefaultDataDir,
			SaveInterval: DefaultSaveInterval,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
