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
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bloodhoundad/scopehound/enums"
	"github.com/bloodhoundad/scopehound/models"
)

// principalKinds maps the provider's principal-type values onto the
// canonical kinds. Values outside the table pass through unchanged so a
// new provider kind shows up in reports instead of being rejected.
var principalKinds = map[string]enums.PrincipalKind{
	"User":             enums.PrincipalUser,
	"Group":            enums.PrincipalGroup,
	"ServicePrincipal": enums.PrincipalServicePrincipal,
	"MSI":              enums.PrincipalManagedIdentity,
	"SystemAssigned":   enums.PrincipalManagedIdentity,
	"UserAssigned":     enums.PrincipalManagedIdentity,
}

// Classifier derives inheritance, identity kind and lifecycle state for
// normalized assignments. It is pure apart from reading the injected
// clock, so classifying the same input twice yields identical records.
type Classifier struct {
	clock clockwork.Clock
}

func NewClassifier(clock clockwork.Clock) *Classifier {
	return &Classifier{clock: clock}
}

func (s *Classifier) Classify(raw models.RawAssignment, reportingScope models.ScopeNode) models.AssignmentRecord {
	var (
		now               = s.clock.Now()
		temporal, stateOk = parseTemporal(raw)
		base              = lifecycleBase(raw, temporal, stateOk, now)
		conditional       = raw.Condition != ""
		state             = string(base)
	)

	// conditional status is a qualifier on the base state, not a state of
	// its own; a grant can be both expired and conditional
	if conditional {
		state = fmt.Sprintf("%s (Conditional)", base)
	}

	return models.AssignmentRecord{
		ScopeId:   reportingScope.Id,
		ScopePath: raw.ScopePath,
		Category:  raw.Category,
		Principal: models.Principal{
			Id:          raw.PrincipalId,
			DisplayName: raw.PrincipalName,
			Kind:        principalKind(raw.PrincipalType),
		},
		RoleOrPolicyRef: models.RoleRef{
			Id:          raw.RefId,
			DisplayName: raw.RefName,
		},
		Temporal:       temporal,
		Conditional:    conditional,
		Condition:      raw.Condition,
		Inheritance:    inheritance(raw, reportingScope),
		LifecycleState: state,
	}
}

// inheritance is a literal path comparison, not an ancestry walk; that is
// how the directory service itself expresses inheritance. The policy
// category carries one extra rule: a policy assigned at a management group
// is always inherited when reported at a subscription or below, regardless
// of exact path match.
func inheritance(raw models.RawAssignment, reportingScope models.ScopeNode) enums.Inheritance {
	if raw.Category == enums.CategoryPolicyAssignment {
		if isManagementGroupPath(raw.ScopePath) && reportingScope.Kind != enums.KindManagementGroup {
			return enums.InheritanceInherited
		}
	}

	if strings.EqualFold(raw.ScopePath, reportingScope.Id) {
		return enums.InheritanceDirect
	}
	return enums.InheritanceInherited
}

func isManagementGroupPath(scopePath string) bool {
	return strings.Contains(strings.ToLower(scopePath), "/providers/microsoft.management/managementgroups/")
}

func principalKind(providerType string) enums.PrincipalKind {
	if providerType == "" {
		return enums.PrincipalUnknown
	}
	if kind, ok := principalKinds[providerType]; ok {
		return kind
	}
	return enums.PrincipalKind(providerType)
}

// parseTemporal parses whichever temporal fields are present. It reports
// false when a start or end time exists but cannot be parsed, in which
// case classification degrades to a generic time-bound state instead of
// failing the record.
func parseTemporal(raw models.RawAssignment) (*models.Temporal, bool) {
	if raw.StartTime == "" && raw.EndTime == "" && raw.CreatedOn == "" {
		return nil, true
	}

	var (
		temporal models.Temporal
		ok       = true
	)

	if raw.StartTime != "" {
		if parsed, err := parseTimestamp(raw.StartTime); err != nil {
			ok = false
		} else {
			temporal.StartTime = parsed
		}
	}
	if raw.EndTime != "" {
		if parsed, err := parseTimestamp(raw.EndTime); err != nil {
			ok = false
		} else {
			temporal.EndTime = parsed
		}
	}
	if raw.CreatedOn != "" {
		// a malformed audit timestamp does not make the grant time-bound
		if parsed, err := parseTimestamp(raw.CreatedOn); err == nil {
			temporal.CreatedOn = parsed
		}
	}

	return &temporal, ok
}

func parseTimestamp(value string) (*time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			utc := parsed.UTC()
			return &utc, nil
		}
	}
	return nil, fmt.Errorf("unrecognized timestamp: %q", value)
}

// lifecycleBase applies the precedence order: no temporal fields, expired,
// not yet active, active.
func lifecycleBase(raw models.RawAssignment, temporal *models.Temporal, parsedOk bool, now time.Time) enums.LifecycleState {
	if raw.StartTime == "" && raw.EndTime == "" {
		// standing grants have no expiry by definition
		return enums.StateActive
	}

	if temporal != nil && temporal.EndTime != nil && temporal.EndTime.Before(now) {
		return enums.StateExpired
	}

	if temporal != nil && temporal.StartTime != nil && temporal.StartTime.After(now) {
		return enums.StateNotYetActive
	}

	if !parsedOk {
		// a bound exists but could not be read; report the grant as
		// time-bound rather than guessing active
		return enums.StateTimeBound
	}

	return enums.StateActive
}
