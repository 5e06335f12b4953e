/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config provides structures and functions for loading and managing runtime configurations.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/asgardeo/conduit/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

const (
	defaultHostname                 = "localhost"
	defaultPort                     = 8090
	defaultHTTPClientTimeout        = 30
	defaultMaxRequestsPerInvocation = 50
	defaultRefreshTimeout           = 10
	defaultTokenValidity            = 3600
	defaultExpiryLeeway             = 10
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
}

// HTTPClientConfig holds the outbound HTTP client configuration.
type HTTPClientConfig struct {
	Timeout   int    `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

// ActionConfig holds the limits applied to a single action invocation.
type ActionConfig struct {
	MaxRequestsPerInvocation int `yaml:"max_requests_per_invocation"`
}

// OAuthConfig holds the OAuth2 session configuration details.
type OAuthConfig struct {
	RefreshTimeout       int `yaml:"refresh_timeout"`
	DefaultTokenValidity int `yaml:"default_token_validity"`
	ExpiryLeeway         int `yaml:"expiry_leeway"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type     string `yaml:"type"`
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
	Options  string `yaml:"options"`

	MaxOpenConns    int `yaml:"max_open_conns"`
	MaxIdleConns    int `yaml:"max_idle_conns"`
	ConnMaxLifetime int `yaml:"conn_max_lifetime"`
}

// DeliveryConfig holds the delivery journal configuration.
type DeliveryConfig struct {
	Enabled    bool       `yaml:"enabled"`
	DataSource DataSource `yaml:"data_source"`
}

// SecurityConfig holds the TLS certificate of the server. TLS is disabled when both files are empty.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// CORSConfig holds the configuration details for cross-origin requests.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Config holds the complete configuration details of the runtime.
type Config struct {
	Server       ServerConfig     `yaml:"server"`
	Security     SecurityConfig   `yaml:"security"`
	HTTPClient   HTTPClientConfig `yaml:"http_client"`
	Action       ActionConfig     `yaml:"action"`
	OAuth        OAuthConfig      `yaml:"oauth"`
	Delivery     DeliveryConfig   `yaml:"delivery"`
	CORS         CORSConfig       `yaml:"cors"`
	Destinations []string         `yaml:"destinations"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero valued settings with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Server.Hostname == "" {
		c.Server.Hostname = defaultHostname
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.HTTPClient.Timeout <= 0 {
		c.HTTPClient.Timeout = defaultHTTPClientTimeout
	}
	if c.Action.MaxRequestsPerInvocation <= 0 {
		c.Action.MaxRequestsPerInvocation = defaultMaxRequestsPerInvocation
	}
	if c.OAuth.RefreshTimeout <= 0 {
		c.OAuth.RefreshTimeout = defaultRefreshTimeout
	}
	if c.OAuth.DefaultTokenValidity <= 0 {
		c.OAuth.DefaultTokenValidity = defaultTokenValidity
	}
	if c.OAuth.ExpiryLeeway < 0 {
		c.OAuth.ExpiryLeeway = 0
	} else if c.OAuth.ExpiryLeeway == 0 {
		c.OAuth.ExpiryLeeway = defaultExpiryLeeway
	}
}

// Default returns a configuration with every setting at its default value.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// HTTPClientTimeout returns the outbound HTTP client timeout.
func (c *Config) HTTPClientTimeout() time.Duration {
	return time.Duration(c.HTTPClient.Timeout) * time.Second
}

// RefreshTimeout returns the upper bound for a single OAuth2 token refresh.
func (c *Config) RefreshTimeout() time.Duration {
	return time.Duration(c.OAuth.RefreshTimeout) * time.Second
}

// DefaultTokenValidity returns the validity assumed for tokens issued without an expiry.
func (c *Config) DefaultTokenValidity() time.Duration {
	return time.Duration(c.OAuth.DefaultTokenValidity) * time.Second
}

// ExpiryLeeway returns how long before its expiry a cached token is treated as expired.
func (c *Config) ExpiryLeeway() time.Duration {
	return time.Duration(c.OAuth.ExpiryLeeway) * time.Second
}
