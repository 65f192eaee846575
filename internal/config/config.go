// Package config loads named connection profiles so the console can be
// pointed at a server by profile name instead of repeating transport
// parameters on every run.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mcpconsole/mcp-console/internal/clienterr"
	"github.com/mcpconsole/mcp-console/internal/model"
)

// Profile declares how to reach one MCP server.
type Profile struct {
	ConnectionType string         `mapstructure:"connection_type"`
	Parameters     map[string]any `mapstructure:"parameters"`
}

// File is a parsed profiles file.
type File struct {
	DefaultProfile string             `mapstructure:"default_profile"`
	Profiles       map[string]Profile `mapstructure:"profiles"`
}

// Load reads a profiles file (YAML or JSON). With an empty path it searches
// the working directory and ~/.config/mcp-console for mcp-console.yaml.
// Values can be overridden through MCPCONSOLE_-prefixed environment
// variables.
func Load(path string) (*File, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mcp-console")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mcp-console")
	}

	v.SetEnvPrefix("MCPCONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file File
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &file, nil
}

// Connection resolves a profile into a connection configuration. An empty
// name selects the file's default profile.
func (f *File) Connection(name string) (model.ConnectionConfig, error) {
	if name == "" {
		name = f.DefaultProfile
	}
	if name == "" {
		return model.ConnectionConfig{}, &clienterr.ConfigurationError{
			Message: "no profile selected and the config file sets no default_profile",
			Field:   "default_profile",
		}
	}
	profile, ok := f.Profiles[name]
	if !ok {
		return model.ConnectionConfig{}, &clienterr.ConfigurationError{
			Message: fmt.Sprintf("unknown profile: %s", name),
			Field:   "profile",
		}
	}
	return model.NewConnectionConfig(profile.ConnectionType, profile.Parameters), nil
}
