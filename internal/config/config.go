// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// server and the client binaries. It is populated by merging values from a
// .env file, environment variables, command-line flags, and an optional JSON
// file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters, password hashing cost and the version.
	App App `envPrefix:"APP_"`

	// Storage holds the server database and the client session database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and timeouts of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Broker selects how row changes are fanned out to realtime clients.
	Broker Broker `envPrefix:"BROKER_"`

	// Adapter holds the backend address the client talks to.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Client holds terminal client settings.
	Client Client `envPrefix:"CLIENT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// PasswordCost is the bcrypt cost used for new password hashes.
	// Zero selects bcrypt.DefaultCost.
	// Env: APP_PASSWORD_COST
	PasswordCost int `env:"PASSWORD_COST"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the server PostgreSQL connection settings.
	DB DB `envPrefix:"DB_"`

	// Local holds the client SQLite settings.
	Local Local `envPrefix:"LOCAL_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local holds the client-side session database location.
type Local struct {
	// DSN is the SQLite file path.
	// Env: STORAGE_LOCAL_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds REST handlers. Realtime connections are exempt.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Broker configures change fan-out. With an empty RedisAddress an in-process
// broker is used, which is enough for a single server instance.
type Broker struct {
	// RedisAddress is host:port of the Redis server.
	// Env: BROKER_REDIS_ADDRESS
	RedisAddress string `env:"REDIS_ADDRESS"`

	// RedisPassword authenticates against Redis.
	// Env: BROKER_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`

	// RedisDB selects the Redis logical database.
	// Env: BROKER_REDIS_DB
	RedisDB int `env:"REDIS_DB"`

	// ChannelPrefix prefixes every pub/sub channel name.
	// Env: BROKER_CHANNEL_PREFIX
	ChannelPrefix string `env:"CHANNEL_PREFIX"`
}

// Adapter holds the client's view of the backend.
type Adapter struct {
	// HTTPAddress is the backend base address, with or without scheme.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every REST call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// HeartbeatInterval is how often realtime connections send a heartbeat.
	// Env: ADAPTER_HEARTBEAT_INTERVAL
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL"`
}

// Client holds terminal client settings.
type Client struct {
	// LogFile is where the client writes its logs.
	// Env: CLIENT_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// PreviewSize is the number of rows shown in dashboard previews.
	// Env: CLIENT_PREVIEW_SIZE
	PreviewSize int `env:"PREVIEW_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources fill fields left empty by earlier ones):
//  1. .env file (only sets variables that are not already set)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
//  5. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(os.Args[1:]).
		withDotEnv().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
