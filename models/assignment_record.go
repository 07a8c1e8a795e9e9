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

import (
	"time"

	"github.com/bloodhoundad/scopehound/enums"
)

// RawAssignment is the provider-shape-independent form of a grant as the
// collector normalized it, before classification. Timestamps are kept as the
// provider returned them; the classifier owns parsing so malformed values can
// degrade instead of failing collection.
type RawAssignment struct {
	Id            string         `json:"id"`
	Category      enums.Category `json:"category"`
	ScopePath     string         `json:"scopePath"`
	PrincipalId   string         `json:"principalId"`
	PrincipalType string         `json:"principalType,omitempty"`
	PrincipalName string         `json:"principalName,omitempty"`
	RefId         string         `json:"refId"`
	RefName       string         `json:"refName,omitempty"`
	StartTime     string         `json:"startTime,omitempty"`
	EndTime       string         `json:"endTime,omitempty"`
	CreatedOn     string         `json:"createdOn,omitempty"`
	Condition     string         `json:"condition,omitempty"`
}

type Principal struct {
	Id          string              `json:"id"`
	DisplayName string              `json:"displayName,omitempty"`
	Kind        enums.PrincipalKind `json:"kind"`
}

type RoleRef struct {
	Id          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
}

// Temporal is absent on standing grants.
type Temporal struct {
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	CreatedOn *time.Time `json:"createdOn,omitempty"`
}

// AssignmentRecord is a fully classified grant, owned by the scope it was
// collected for and never mutated after classification.
type AssignmentRecord struct {
	ScopeId string `json:"scopeId"`

	// ScopePath is the literal scope string the grant is bound to; it
	// differs from ScopeId when the grant is inherited from an ancestor.
	ScopePath string `json:"scopePath"`

	Category enums.Category `json:"category"`

	Principal Principal `json:"principal"`

	RoleOrPolicyRef RoleRef `json:"roleOrPolicyRef"`

	Temporal *Temporal `json:"temporal,omitempty"`

	Conditional bool   `json:"conditional"`
	Condition   string `json:"condition,omitempty"`

	Inheritance enums.Inheritance `json:"inheritance"`

	// LifecycleState is the single human-readable state label; a
	// conditional qualifier is appended to the base state rather than
	// reported as a separate field, e.g. "Expired (Conditional)".
	LifecycleState string `json:"lifecycleState"`
}
