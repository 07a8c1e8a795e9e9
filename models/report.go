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

package models

import "time"

// SkippedScope records a branch or scope the run had to leave out, so
// consumers can judge how complete the report is.
type SkippedScope struct {
	ScopeId string `json:"scopeId"`

	// Stage is "walk" when expansion of the node failed, otherwise the
	// assignment category whose collection failed.
	Stage string `json:"stage"`

	Reason string `json:"reason"`
}

// Report is the merged output of one audit run.
type Report struct {
	RunId      string    `json:"runId"`
	TenantId   string    `json:"tenantId,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	// Incomplete is set when the run was cancelled before every
	// discovered scope was collected.
	Incomplete bool `json:"incomplete"`

	Nodes   []ScopeNode        `json:"nodes"`
	Records []AssignmentRecord `json:"records"`
	Skipped []SkippedScope     `json:"skipped,omitempty"`

	// Summaries holds grouped counts over Records keyed by dimension
	// name ("root", "scopeKind", "category", "lifecycleState",
	// "principalKind"), derived after deduplication.
	Summaries map[string]map[string]int `json:"summaries"`
}

// AuditSummary is the trailing item of an output stream: the run metadata
// and grouped counts without the node and record bodies.
type AuditSummary struct {
	RunId      string                    `json:"runId"`
	TenantId   string                    `json:"tenantId,omitempty"`
	StartedAt  time.Time                 `json:"startedAt"`
	FinishedAt time.Time                 `json:"finishedAt"`
	Incomplete bool                      `json:"incomplete"`
	Skipped    []SkippedScope            `json:"skipped,omitempty"`
	Summaries  map[string]map[string]int `json:"summaries"`
}

func (s Report) Summary() AuditSummary {
	return AuditSummary{
		RunId:      s.RunId,
		TenantId:   s.TenantId,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		Incomplete: s.Incomplete,
		Skipped:    s.Skipped,
		Summaries:  s.Summaries,
	}
}
