// Package config defines the server configuration structure.
package config

import (
	"errors"
	"os"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}
	if cfg.HTTP.RateLimit.Enabled {
		if cfg.HTTP.RateLimit.RPS <= 0 {
			return errors.New("server.http.rate_limit.rps must be positive")
		}
		if cfg.HTTP.RateLimit.Burst < 1 {
			return errors.New("server.http.rate_limit.burst must be at least 1")
		}
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return errors.New("cannot create data directory: " + err.Error())
	}
	if cfg.SaveInterval <= 0 {
		return errors.New("storage.save_interval must be positive")
	}
	return nil
}
