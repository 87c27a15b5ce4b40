package sqlcmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Konsultn-Engineering/sqlcmd/connector"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk configuration: a server section naming the
// provider and connection settings, and a flat commands section mapping
// identifiers to templates.
type FileConfig struct {
	Server   ServerConfig      `yaml:"server"`
	Commands map[string]string `yaml:"commands"`
}

// ServerConfig names the provider and carries its connection settings.
type ServerConfig struct {
	Provider         string `yaml:"provider"`
	connector.Config `yaml:",inline"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Server.Provider == "" {
		return nil, fmt.Errorf("config %s: server.provider is required", path)
	}
	return &cfg, nil
}

// FromConfigFile opens a connection as described by a YAML config file and
// pre-populates the command registry from its commands section.
func FromConfigFile(ctx context.Context, path string) (*Conn, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	conn, err := Connect(ctx, cfg.Server.Provider, cfg.Server.Config)
	if err != nil {
		return nil, err
	}
	return conn.WithCommands(cfg.Commands), nil
}
