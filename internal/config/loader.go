// Copyright 2025 CineGenie Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides hierarchical configuration loading. A base
// configuration file is read first and an environment-specific file
// (e.g., .env.local.toml, .env.test.toml) then overwrites its values.
// The config directory and runtime environment are taken from environment
// variables.
//
// Functions:
//   - fileExists: A simple helper to check if a file exists.
//   - Load: Implements the hierarchical configuration loader.
//   - MustLoad: Load variant that terminates the process on failure.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Configuration loading constants, primarily file-name conventions and the
// environment variables that control where files are read from.
const (
	ConfigFileBaseName  = ".env"               // The base name for configuration files (e.g., ".env.toml").
	ConfigFileExtension = ".toml"              // The file extension for configuration files.
	ConfigSeparator     = "."                  // The separator used in config file names (e.g., ".env.local.toml").
	EnvConfigFilePrefix = "CINE_CONFIG_PREFIX" // The environment variable for specifying the config directory.
	EnvConfigRuntime    = "CINE_RUNTIME"       // The environment variable for specifying the runtime context (e.g., "local", "test", "prod").
)

// fileExists checks if a file or directory exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// Load populates the given Config from the base configuration file and then
// overwrites values with the environment-specific file when one exists. A
// missing file is not an error: the struct keeps its zero (or previously
// loaded) values for anything the present files do not set.
func Load(cfg *Config) error {
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	// Default to the "test" runtime when none is configured so local tooling
	// never picks up production settings by accident.
	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "test"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		if _, err := toml.DecodeFile(baseConfigFileName, cfg); err != nil {
			return fmt.Errorf("failed to decode base configuration file %s: %w", baseConfigFileName, err)
		}
	}

	if fileExists(envConfigFileName) {
		if _, err := toml.DecodeFile(envConfigFileName, cfg); err != nil {
			return fmt.Errorf("failed to decode environment configuration file %s: %w", envConfigFileName, err)
		}
	}

	return nil
}

// MustLoad creates, loads, and returns the application configuration,
// terminating the process if a present configuration file cannot be decoded.
func MustLoad() *Config {
	cfg := NewConfig()
	if err := Load(cfg); err != nil {
		log.Fatalf("configuration error: %s", err)
	}
	return cfg
}
