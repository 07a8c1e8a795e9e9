// Copyright (C) 2025 Specter Ops, Inc.
//
// This file is part of ScopeHound.
//
// ScopeHound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ScopeHound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bloodhoundad/scopehound/constants"
)

// Config declares one setting: its flag, its environment variable and its
// config file key all derive from Name. Values resolve in the usual viper
// precedence: explicit flag, then environment, then config file, then
// Default.
type Config struct {
	Name       string
	Shorthand  string
	Usage      string
	Default    interface{}
	Persistent bool
	Required   bool
}

func (s *Config) Value() interface{} {
	switch s.Default.(type) {
	case bool:
		return viper.GetBool(s.Name)
	case int:
		return viper.GetInt(s.Name)
	case string:
		return viper.GetString(s.Name)
	case []string:
		return viper.GetStringSlice(s.Name)
	default:
		return viper.Get(s.Name)
	}
}

func (s *Config) Set(value interface{}) {
	viper.Set(s.Name, value)
}

// Init registers the given settings as flags on cmd and binds them into
// viper. Must run during command construction, before Execute.
func Init(cmd *cobra.Command, configs []*Config) error {
	for _, config := range configs {
		var flags *pflag.FlagSet
		if config.Persistent {
			flags = cmd.PersistentFlags()
		} else {
			flags = cmd.Flags()
		}

		switch typed := config.Default.(type) {
		case bool:
			flags.BoolP(config.Name, config.Shorthand, typed, config.Usage)
		case int:
			flags.IntP(config.Name, config.Shorthand, typed, config.Usage)
		case string:
			flags.StringP(config.Name, config.Shorthand, typed, config.Usage)
		case []string:
			flags.StringSliceP(config.Name, config.Shorthand, typed, config.Usage)
		default:
			return fmt.Errorf("unsupported default type for setting %s", config.Name)
		}

		if config.Required {
			if err := cmd.MarkFlagRequired(config.Name); err != nil {
				return err
			}
		}

		if err := viper.BindPFlag(config.Name, flags.Lookup(config.Name)); err != nil {
			return err
		}
	}
	return nil
}

// LoadValues reads the environment and the config file into viper. Called
// from the root command's PersistentPreRunE so every subcommand sees fully
// resolved settings.
func LoadValues(cmd *cobra.Command, configs []*Config) error {
	// several commands register the same settings; rebind the invoked
	// command's flags so its values win
	if cmd != nil {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
			return err
		}
	}

	viper.SetEnvPrefix(strings.ToUpper(constants.Name))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if configFile, ok := ConfigFile.Value().(string); ok && configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigFile(DefaultConfigFile())
	}

	if err := viper.ReadInConfig(); err != nil {
		// a missing config file is fine; flags and env carry the run
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	return nil
}

func DefaultConfigFile() string {
	if home, err := os.UserHomeDir(); err != nil {
		return fmt.Sprintf(".%s.json", constants.Name)
	} else {
		return filepath.Join(home, ".config", fmt.Sprintf("%s.json", constants.Name))
	}
}

// WriteConfig persists the current non-default settings to the config
// file, creating the parent directory when needed.
func WriteConfig() error {
	configFile, _ := ConfigFile.Value().(string)
	if configFile == "" {
		configFile = DefaultConfigFile()
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}
	return viper.WriteConfigAs(configFile)
}
