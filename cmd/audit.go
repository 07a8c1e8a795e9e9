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
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/bloodhoundad/scopehound/audit"
	"github.com/bloodhoundad/scopehound/config"
	"github.com/bloodhoundad/scopehound/enums"
	"github.com/bloodhoundad/scopehound/models"
	"github.com/bloodhoundad/scopehound/panicrecovery"
	"github.com/bloodhoundad/scopehound/pipeline"
)

func init() {
	configs := append([]*config.Config{}, config.AzureConfig...)
	configs = append(configs, config.CollectionConfig...)
	if err := config.Init(auditCmd, configs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddCommand(auditCmd)
}

var auditCmd = &cobra.Command{
	Use:          "audit",
	Short:        "Enumerate the scope hierarchy and report role and policy assignments",
	Run:          auditCmdImpl,
	SilenceUsage: true,
}

func auditCmdImpl(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)

	azClient := connectAndCreateClient()
	defer azClient.CloseIdleConnections()
	panicrecovery.HandleBubbledPanic(ctx, stop, log)

	log.V(1).Info("collecting scope hierarchy and assignments")
	start := time.Now()

	engine := audit.NewEngine(azClient, log, auditOptions())
	if report, err := engine.Run(ctx); err != nil {
		exit(fmt.Errorf("audit run failed: %w", err))
	} else {
		outputStream(ctx, reportStream(ctx, report))
		log.V(1).Info("collection completed", "duration", time.Since(start).String(), "incomplete", report.Incomplete)
	}
}

func auditOptions() audit.Options {
	includeResourceGroups := config.IncludeResourceGroups.Value().(bool)
	return audit.Options{
		Roots:                 unique(config.AuditRoots.Value().([]string)),
		IncludeSubscriptions:  config.IncludeSubscriptions.Value().(bool) || includeResourceGroups,
		IncludeResourceGroups: includeResourceGroups,
		IncludeEligibleGrants: config.IncludeEligible.Value().(bool),
		IncludePolicyDomain:   config.IncludePolicy.Value().(bool),
		Workers:               config.Workers.Value().(int),
	}
}

// reportStream flattens a report into the output stream: every node, then
// every record, then one trailing summary item.
func reportStream(ctx context.Context, report *models.Report) <-chan interface{} {
	out := make(chan interface{})

	go func() {
		defer panicrecovery.PanicRecovery()
		defer close(out)

		for _, node := range report.Nodes {
			if ok := pipeline.SendAny(ctx.Done(), out, NewAzureWrapper(enums.KindScopeNode, node)); !ok {
				return
			}
		}
		for _, record := range report.Records {
			if ok := pipeline.SendAny(ctx.Done(), out, NewAzureWrapper(enums.KindAssignmentRecord, record)); !ok {
				return
			}
		}
		pipeline.SendAny(ctx.Done(), out, NewAzureWrapper(enums.KindAuditSummary, report.Summary()))
	}()

	return out
}
