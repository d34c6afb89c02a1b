// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// ServerConfig is the server view of [StructuredConfig]. The server reads
// the shared groups as they are; only validation differs from the client.
type ServerConfig struct {
	App     App
	Storage Storage
	Server  Server
	Broker  Broker
}

// GetServerConfig builds and validates the server configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return serverConfigFrom(cfg)
}

func serverConfigFrom(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Server:  cfg.Server,
		Broker:  cfg.Broker,
	}

	return serverCfg, serverCfg.validate()
}
