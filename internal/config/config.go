// Package config loads optional connprof defaults from a YAML file and the
// environment.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is looked up in the given directory.
const ConfigFileName = "connprof.yaml"

// FileConfig is the on-disk document shape.
type FileConfig struct {
	Defaults struct {
		ProfileName string `yaml:"profile_name,omitempty"`
		Server      string `yaml:"server,omitempty"`
		Database    string `yaml:"database,omitempty"`
		User        string `yaml:"user,omitempty"`
		AuthType    string `yaml:"auth_type,omitempty"`
	} `yaml:"defaults"`

	Azure struct {
		TenantID string `yaml:"tenant_id,omitempty"`
		ClientID string `yaml:"client_id,omitempty"`
	} `yaml:"azure"`
}

// Load reads connprof.yaml from dir.
func Load(dir string) (*FileConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults merges the file config with environment overrides into the
// defaults consumed by the question builder. Environment wins.
//
// Recognized variables: CONNPROF_SERVER, CONNPROF_DATABASE, CONNPROF_USER,
// CONNPROF_AUTH_TYPE, AZURE_TENANT_ID, AZURE_CLIENT_ID.
func Defaults(cfg *FileConfig) *connprof.Defaults {
	d := &connprof.Defaults{}
	if cfg != nil {
		d.ProfileName = cfg.Defaults.ProfileName
		d.Server = cfg.Defaults.Server
		d.Database = cfg.Defaults.Database
		d.User = cfg.Defaults.User
		d.AuthType = connprof.ParseAuthType(cfg.Defaults.AuthType)
		d.AzureTenantID = cfg.Azure.TenantID
		d.AzureClientID = cfg.Azure.ClientID
	}

	if v := os.Getenv("CONNPROF_SERVER"); v != "" {
		d.Server = v
	}
	if v := os.Getenv("CONNPROF_DATABASE"); v != "" {
		d.Database = v
	}
	if v := os.Getenv("CONNPROF_USER"); v != "" {
		d.User = v
	}
	if v := os.Getenv("CONNPROF_AUTH_TYPE"); v != "" {
		d.AuthType = connprof.ParseAuthType(v)
	}
	if v := os.Getenv("AZURE_TENANT_ID"); v != "" {
		d.AzureTenantID = v
	}
	if v := os.Getenv("AZURE_CLIENT_ID"); v != "" {
		d.AzureClientID = v
	}

	return d
}
