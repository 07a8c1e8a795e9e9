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

package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/bloodhoundad/scopehound/config"
)

func init() {
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:          "configure",
	Short:        "Configure ScopeHound",
	Run:          configureCmdImpl,
	SilenceUsage: true,
}

func configureCmdImpl(cmd *cobra.Command, args []string) {
	if err := configure(); err != nil {
		exit(err)
	}
}

func configure() error {
	settings := []struct {
		setting *config.Config
		prompt  string
		mask    bool
	}{
		{&config.AzTenant, "Directory tenant id or domain name", false},
		{&config.AzAppId, "Application id", false},
		{&config.AzSecret, "Application secret", true},
		{&config.IngestUrl, "Ingest service url (leave blank to skip)", false},
		{&config.IngestTokenId, "Ingest token id", false},
		{&config.IngestToken, "Ingest token", true},
	}

	for _, item := range settings {
		prompt := promptui.Prompt{
			Label:   item.prompt,
			Default: fmt.Sprintf("%v", item.setting.Value()),
		}
		if item.mask {
			prompt.Mask = '*'
			prompt.Default = ""
		}

		if value, err := prompt.Run(); err != nil {
			return fmt.Errorf("configuration aborted: %w", err)
		} else if value != "" {
			item.setting.Set(value)
		}
	}

	if err := config.WriteConfig(); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}

	fmt.Printf("Configuration written to %s\n", config.DefaultConfigFile())
	return nil
}
