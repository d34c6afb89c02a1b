// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the bizdesk server and client.
//
// Configuration is assembled from multiple sources; a field keeps the value
// of the first source that sets it:
//  1. Environment variables (after exporting a .env file, if any)
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetServerConfig] and [GetClientConfig].
package config
