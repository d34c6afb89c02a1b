// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the backend address used for REST and realtime calls.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound REST requests.
	RequestTimeout time.Duration
	// HeartbeatInterval is the realtime heartbeat period.
	HeartbeatInterval time.Duration
}

// ClientStorage holds the local session database settings.
type ClientStorage struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientUI holds presentation settings.
type ClientUI struct {
	// LogFile is the client log destination.
	LogFile string
	// PreviewSize is the number of rows in dashboard preview lists.
	PreviewSize int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	UI      ClientUI
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return clientConfigFrom(cfg)
}

func clientConfigFrom(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:       cfg.Adapter.HTTPAddress,
			RequestTimeout:    cfg.Adapter.RequestTimeout,
			HeartbeatInterval: cfg.Adapter.HeartbeatInterval,
		},
		Storage: ClientStorage{DSN: cfg.Storage.Local.DSN},
		UI: ClientUI{
			LogFile:     cfg.Client.LogFile,
			PreviewSize: cfg.Client.PreviewSize,
		},
	}

	return clientCfg, clientCfg.validate()
}
