// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the invariants shared by both binaries. Binary-specific
// requirements are checked by [ServerConfig.validate] and
// [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	durations := map[string]int64{
		"app.token_duration":         int64(cfg.App.TokenDuration),
		"server.request_timeout":     int64(cfg.Server.RequestTimeout),
		"server.shutdown_timeout":    int64(cfg.Server.ShutdownTimeout),
		"adapter.request_timeout":    int64(cfg.Adapter.RequestTimeout),
		"adapter.heartbeat_interval": int64(cfg.Adapter.HeartbeatInterval),
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeDuration, name)
		}
	}

	if cfg.Client.PreviewSize < 0 {
		return fmt.Errorf("%w: negative preview size", ErrInvalidAppConfigs)
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration == 0 {
		return fmt.Errorf("%w: token settings are incomplete", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DSN == "" {
		return fmt.Errorf("%w: empty local DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
