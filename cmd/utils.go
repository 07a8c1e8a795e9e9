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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/proxy"

	"github.com/bloodhoundad/scopehound/client"
	client_config "github.com/bloodhoundad/scopehound/client/config"
	"github.com/bloodhoundad/scopehound/client/rest"
	"github.com/bloodhoundad/scopehound/config"
	"github.com/bloodhoundad/scopehound/enums"
	"github.com/bloodhoundad/scopehound/logger"
	"github.com/bloodhoundad/scopehound/pipeline"
	"github.com/bloodhoundad/scopehound/sinks"
)

func init() {
	proxy.RegisterDialerType("http", rest.NewProxyDialer)
	proxy.RegisterDialerType("https", rest.NewProxyDialer)
}

func exit(err error) {
	log.Error(err, "encountered unrecoverable error")
	os.Exit(1)
}

func persistentPreRunE(cmd *cobra.Command, args []string) error {
	// need to set config flag value explicitly
	if cmd != nil {
		if configFlag := cmd.Flag(config.ConfigFile.Name).Value.String(); configFlag != "" {
			config.ConfigFile.Set(configFlag)
		}
	}

	if err := config.LoadValues(cmd, config.GlobalConfig); err != nil {
		return err
	}

	if logr, err := logger.GetLogger(); err != nil {
		return err
	} else {
		log = *logr

		if logFile, ok := config.LogFile.Value().(string); ok && logFile != "" {
			log.V(1).Info(fmt.Sprintf("Log File: %v", logFile))
		}

		return nil
	}
}

func gracefulShutdown(stop context.CancelFunc) {
	stop()
	fmt.Fprintln(os.Stderr, "\nshutting down gracefully, press ctrl+c again to force")
}

func testConnections() error {
	proxyUrl := config.Proxy.Value().(string)
	if _, err := rest.Dial(log, proxyUrl, config.AzAuthUrl.Value().(string)); err != nil {
		return fmt.Errorf("unable to connect to %s: %w", config.AzAuthUrl.Value(), err)
	} else if _, err := rest.Dial(log, proxyUrl, config.AzMgmtUrl.Value().(string)); err != nil {
		return fmt.Errorf("unable to connect to %s: %w", config.AzMgmtUrl.Value(), err)
	} else {
		return nil
	}
}

func newAzureClient() (client.AzureClient, error) {
	var (
		certFile   = config.AzCert.Value()
		keyFile    = config.AzKey.Value()
		clientCert string
		clientKey  string
	)

	if file, ok := certFile.(string); ok && file != "" {
		if content, err := os.ReadFile(file); err != nil {
			return nil, fmt.Errorf("unable to read provided certificate: %w", err)
		} else {
			clientCert = string(content)
		}
	}

	if file, ok := keyFile.(string); ok && file != "" {
		if content, err := os.ReadFile(file); err != nil {
			return nil, fmt.Errorf("unable to read provided key file: %w", err)
		} else {
			clientKey = string(content)
		}
	}

	config := client_config.Config{
		ApplicationId: config.AzAppId.Value().(string),
		Authority:     config.AzAuthUrl.Value().(string),
		ClientSecret:  config.AzSecret.Value().(string),
		ClientCert:    clientCert,
		ClientKey:     clientKey,
		ClientKeyPass: config.AzKeyPass.Value().(string),
		JWT:           config.JWT.Value().(string),
		Management:    config.AzMgmtUrl.Value().(string),
		Password:      config.AzPassword.Value().(string),
		ProxyUrl:      config.Proxy.Value().(string),
		RefreshToken:  config.AzRefreshToken.Value().(string),
		Tenant:        config.AzTenant.Value().(string),
		Username:      config.AzUsername.Value().(string),
	}
	return client.NewClient(config)
}

func connectAndCreateClient() client.AzureClient {
	log.V(1).Info("testing connections")
	if err := testConnections(); err != nil {
		exit(fmt.Errorf("failed to test connections: %w", err))
	} else if azClient, err := newAzureClient(); err != nil {
		exit(fmt.Errorf("failed to create new Azure client: %w", err))
	} else {
		return azClient
	}

	panic("unexpectedly failed to create azClient without error")
}

type azureWrapper[T any] struct {
	Kind enums.Kind `json:"kind"`
	Data T          `json:"data"`
}

func NewAzureWrapper[T any](kind enums.Kind, data T) azureWrapper[T] {
	return azureWrapper[T]{
		Kind: kind,
		Data: data,
	}
}

func outputStream[T any](ctx context.Context, stream <-chan T) {
	formatted := pipeline.FormatJson(ctx.Done(), stream)
	if path := config.OutputFile.Value().(string); path != "" {
		if err := sinks.WriteToFile(ctx, path, formatted); err != nil {
			exit(fmt.Errorf("failed to write stream to file: %w", err))
		}
	} else {
		sinks.WriteToConsole(ctx, formatted)
	}
}

func unique(collection []string) []string {
	keys := make(map[string]bool)
	list := []string{}
	for _, item := range collection {
		if _, found := keys[item]; !found {
			keys[item] = true
			list = append(list, item)
		}
	}
	return list
}
