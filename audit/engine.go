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

package audit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/gofrs/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/bloodhoundad/scopehound/client"
	"github.com/bloodhoundad/scopehound/enums"
	"github.com/bloodhoundad/scopehound/models"
	"github.com/bloodhoundad/scopehound/panicrecovery"
	"github.com/bloodhoundad/scopehound/pipeline"
)

const DefaultWorkers = 4

// Options are the caller-facing knobs of a run.
type Options struct {
	// Roots are the management group names or scope paths to start from.
	Roots []string

	// IncludeSubscriptions expands subscription nodes into their resource
	// groups instead of treating them as leaves.
	IncludeSubscriptions bool

	// IncludeResourceGroups expands resource group nodes into their
	// resources; requires IncludeSubscriptions.
	IncludeResourceGroups bool

	// IncludeEligibleGrants also collects the time-bound PIM category.
	IncludeEligibleGrants bool

	// IncludePolicyDomain also collects policy assignments.
	IncludePolicyDomain bool

	// Workers bounds the number of scopes collected concurrently.
	Workers int
}

func (s Options) Validate() error {
	if len(s.Roots) == 0 {
		return ConfigurationError{Reason: "at least one root scope is required"}
	}
	for _, root := range s.Roots {
		if strings.TrimSpace(root) == "" {
			return ConfigurationError{Reason: "root scope ids must not be empty"}
		}
	}
	if s.IncludeResourceGroups && !s.IncludeSubscriptions {
		return ConfigurationError{Reason: "resource group expansion requires subscription expansion"}
	}
	if s.Workers < 0 {
		return ConfigurationError{Reason: "worker count must not be negative"}
	}
	return nil
}

func (s Options) categories() []enums.Category {
	categories := []enums.Category{enums.CategoryStandingGrant}
	if s.IncludeEligibleGrants {
		categories = append(categories, enums.CategoryEligibleGrant)
	}
	if s.IncludePolicyDomain {
		categories = append(categories, enums.CategoryPolicyAssignment)
	}
	return categories
}

// Engine runs one audit: walk the hierarchy, collect and classify every
// discovered scope on a bounded worker pool, then aggregate.
type Engine struct {
	azClient client.AzureClient
	log      logr.Logger
	clock    clockwork.Clock
	opts     Options
}

func NewEngine(azClient client.AzureClient, log logr.Logger, opts Options) *Engine {
	return &Engine{
		azClient: azClient,
		log:      log,
		clock:    clockwork.NewRealClock(),
		opts:     opts,
	}
}

// scopeResult is one worker's output for one scope.
type scopeResult struct {
	records []models.AssignmentRecord
	skipped []models.SkippedScope
}

// Run executes the audit. Cancelling ctx stops new remote calls and
// flushes whatever has been aggregated so far; the returned report is then
// marked incomplete rather than discarded.
func (s *Engine) Run(ctx context.Context) (*models.Report, error) {
	if err := s.opts.Validate(); err != nil {
		return nil, err
	}

	runId, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("unable to generate run id: %w", err)
	}

	walkOpts := WalkOptions{
		IncludeSubscriptions:  s.opts.IncludeSubscriptions,
		IncludeResourceGroups: s.opts.IncludeResourceGroups,
	}

	var (
		started    = s.clock.Now().UTC()
		walker     = NewWalker(s.azClient, s.log, walkOpts)
		collector  = NewCollector(s.azClient, s.log)
		classifier = NewClassifier(s.clock)
		categories = s.opts.categories()
	)

	s.log.V(1).Info("starting audit run", "runId", runId.String(), "roots", s.opts.Roots)

	nodes, walkSkipped := walker.Walk(ctx, s.opts.Roots)
	s.log.V(1).Info("hierarchy walk complete", "scopes", len(nodes), "skippedBranches", len(walkSkipped))

	var (
		records   []models.AssignmentRecord
		skipped   = walkSkipped
		collected int
	)

	for result := range s.collectAll(ctx, nodes, collector, classifier, categories) {
		records = append(records, result.records...)
		skipped = append(skipped, result.skipped...)
		collected++
	}

	incomplete := ctx.Err() != nil || collected < len(nodes)
	if incomplete {
		s.log.Info("run ended before all scopes were collected", "collected", collected, "discovered", len(nodes))
	}

	report := Aggregate(nodes, records, skipped)
	report.RunId = runId.String()
	report.TenantId = s.azClient.TenantInfo().TenantId
	report.StartedAt = started
	report.FinishedAt = s.clock.Now().UTC()
	report.Incomplete = incomplete

	return &report, nil
}

// collectAll fans the scope set out to a bounded worker pool; each worker
// collects and classifies its scopes independently and the joined stream
// is the only shared output.
func (s *Engine) collectAll(ctx context.Context, nodes []models.ScopeNode, collector *Collector, classifier *Classifier, categories []enums.Category) <-chan scopeResult {
	workers := s.opts.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}

	scopes := make(chan models.ScopeNode)
	go func() {
		defer close(scopes)
		for _, node := range nodes {
			if !pipeline.Send(ctx.Done(), scopes, node) {
				return
			}
		}
	}()

	var (
		wg  sync.WaitGroup
		out = make(chan scopeResult)
	)

	for _, lane := range pipeline.Demux(ctx.Done(), scopes, workers) {
		wg.Add(1)
		go func(lane <-chan models.ScopeNode) {
			defer panicrecovery.PanicRecovery()
			defer wg.Done()
			for scope := range lane {
				raws, skips := collector.Collect(ctx, scope, categories)

				result := scopeResult{skipped: skips}
				for _, raw := range raws {
					result.records = append(result.records, classifier.Classify(raw, scope))
				}

				if !pipeline.Send(ctx.Done(), out, result) {
					return
				}
			}
		}(lane)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
