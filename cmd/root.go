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
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/bloodhoundad/scopehound/config"
	"github.com/bloodhoundad/scopehound/constants"
)

var log logr.Logger

func init() {
	if err := config.Init(rootCmd, config.GlobalConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:               constants.Name,
	Short:             constants.Description,
	PersistentPreRunE: persistentPreRunE,
	SilenceUsage:      true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: fmt.Sprintf("Print the %s version", constants.DisplayName),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", constants.DisplayName, constants.Version)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

func Execute() error {
	return rootCmd.Execute()
}
