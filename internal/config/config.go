// Copyright (c) 2026 The lazycats Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package config loads the service configuration.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes the environment variables that override configuration
// keys. A double underscore separates levels of the hierarchy, so
// LAZYCATS__SERVER__PORT overrides server.port.
const EnvPrefix = "LAZYCATS__"

// Config is the top-level service configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`
	Cats   CatsConfig   `koanf:"cats"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	// Port 0 picks an ephemeral port.
	Port            int           `koanf:"port"`
	Mode            string        `koanf:"mode"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port the server listens on.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// CatsConfig configures the lazily loaded cats module.
type CatsConfig struct {
	Names []string `koanf:"names"`
}

// Defaults returns the values used for keys that neither the config file
// nor the environment set.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.host":             "0.0.0.0",
		"server.port":             3000,
		"server.mode":             gin.ReleaseMode,
		"server.shutdown_timeout": "10s",
		"log.level":               "info",
		"log.format":              "json",
		"cats.names":              []string{"cat1", "cat2"},
	}
}

// Load builds the configuration from the defaults, then the YAML file at
// path (skipped if path is empty), then environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// LAZYCATS__SERVER__PORT -> server.port
	// LAZYCATS__SERVER__SHUTDOWN_TIMEOUT -> server.shutdown_timeout
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.TrimPrefix(s, EnvPrefix)
		key = strings.ToLower(key)
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks and normalizes the configuration.
func (c *Config) Validate() error {
	mode := strings.TrimSpace(c.Server.Mode)
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		c.Server.Mode = mode
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", c.Server.Mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 0 and 65535", c.Server.Port)
	}
	c.Server.Host = strings.TrimSpace(c.Server.Host)

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid server.shutdown_timeout %v: must be greater than 0", c.Server.ShutdownTimeout)
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch level {
	case "debug", "info", "warn", "error":
		c.Log.Level = level
	default:
		return fmt.Errorf("invalid log.level %q: must be one of %q, %q, %q, %q", c.Log.Level, "debug", "info", "warn", "error")
	}

	format := strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch format {
	case "json", "console":
		c.Log.Format = format
	default:
		return fmt.Errorf("invalid log.format %q: must be one of %q, %q", c.Log.Format, "json", "console")
	}

	names := make([]string, 0, len(c.Cats.Names))
	for i, name := range c.Cats.Names {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("cats.names[%d] cannot be empty", i)
		}
		names = append(names, name)
	}
	c.Cats.Names = names

	return nil
}
