// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Built-in values applied to fields that no source has set.
const (
	DefaultTokenIssuer       = "bizdesk"
	DefaultTokenDuration     = 24 * time.Hour
	DefaultHTTPAddress       = "localhost:8080"
	DefaultRequestTimeout    = 15 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultHeartbeatInterval = 30 * time.Second
	DefaultChannelPrefix     = "bizdesk"
	DefaultLocalDSN          = "bizdesk.db"
	DefaultPreviewSize       = 5
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
		},
		Storage: Storage{
			Local: Local{DSN: DefaultLocalDSN},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Broker: Broker{ChannelPrefix: DefaultChannelPrefix},
		Adapter: Adapter{
			HTTPAddress:       DefaultHTTPAddress,
			RequestTimeout:    DefaultRequestTimeout,
			HeartbeatInterval: DefaultHeartbeatInterval,
		},
		Client: Client{PreviewSize: DefaultPreviewSize},
	}
}
