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
	"net/url"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/bloodhoundad/scopehound/audit"
	"github.com/bloodhoundad/scopehound/config"
	"github.com/bloodhoundad/scopehound/ingest"
	"github.com/bloodhoundad/scopehound/panicrecovery"
	"github.com/bloodhoundad/scopehound/pipeline"
)

const ingestMaxRetries = 3

func init() {
	configs := append([]*config.Config{}, config.AzureConfig...)
	configs = append(configs, config.CollectionConfig...)
	configs = append(configs, config.IngestConfig...)
	configs = append(configs, config.ServiceConfig...)
	if err := config.Init(startCmd, configs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:               "start",
	Short:             "Start the periodic audit service and ship reports to an ingest endpoint",
	Run:               startCmdImpl,
	PersistentPreRunE: persistentPreRunE,
	SilenceUsage:      true,
}

func startCmdImpl(cmd *cobra.Command, args []string) {
	start(cmd.Context())
}

func start(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)

	if azClient := connectAndCreateClient(); azClient == nil {
		exit(fmt.Errorf("azClient is unexpectedly nil"))
	} else if ingestInstance, err := url.Parse(config.IngestUrl.Value().(string)); err != nil {
		exit(fmt.Errorf("unable to parse ingest url: %w", err))
	} else if ingestClient, err := ingest.NewIngestClient(*ingestInstance, config.IngestTokenId.Value().(string), config.IngestToken.Value().(string), config.Proxy.Value().(string), 0, ingestMaxRetries, log); err != nil {
		exit(fmt.Errorf("failed to create new signing HTTP client: %w", err))
	} else {
		interval := time.Duration(config.StartInterval.Value().(int)) * time.Minute
		log.Info("connected successfully! running on an interval", "interval", interval.String())

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var runInProgress sync.Mutex

		runOnce := func() {
			if !runInProgress.TryLock() {
				log.V(1).Info("previous audit run still in progress, skipping this interval")
				return
			}

			go func() {
				defer panicrecovery.PanicRecovery()
				defer runInProgress.Unlock()
				defer ingestClient.CloseIdleConnections()
				defer azClient.CloseIdleConnections()

				ctx, stop := context.WithCancel(ctx)
				defer stop()
				panicrecovery.HandleBubbledPanic(ctx, stop, log)

				started := time.Now()
				engine := audit.NewEngine(azClient, log, auditOptions())
				if report, err := engine.Run(ctx); err != nil {
					log.Error(err, "audit run failed")
				} else {
					stream := reportStream(ctx, report)
					batches := pipeline.Batch(ctx.Done(), stream, config.BatchSize.Value().(int), 10*time.Second)
					if hasErrors := ingestClient.Ingest(ctx, batches); hasErrors {
						log.Error(ingest.ErrExceededRetryLimit, "run completed with errors during ingest", "runId", report.RunId)
					} else {
						log.Info("run completed successfully", "runId", report.RunId, "duration", time.Since(started).String())
					}
				}
			}()
		}

		runOnce()
		for {
			select {
			case <-ticker.C:
				runOnce()
			case <-ctx.Done():
				return
			}
		}
	}
}
