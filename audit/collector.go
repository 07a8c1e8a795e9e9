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
	"path"
	"strings"

	"github.com/go-logr/logr"

	"github.com/bloodhoundad/scopehound/client"
	"github.com/bloodhoundad/scopehound/enums"
	"github.com/bloodhoundad/scopehound/models"
	"github.com/bloodhoundad/scopehound/models/azure"
)

// UnknownScopePath marks a grant whose binding scope could not be resolved
// from any provider field. The record is kept rather than dropped.
const UnknownScopePath = "Unknown"

// Collector fetches the raw assignments of a single scope and normalizes
// provider field variants into the canonical record shape. It performs the
// run's only I/O besides the walk itself.
type Collector struct {
	azClient client.AzureClient
	log      logr.Logger
}

func NewCollector(azClient client.AzureClient, log logr.Logger) *Collector {
	return &Collector{azClient: azClient, log: log}
}

// Collect issues one listing per requested category. Categories are
// independent: one category failing never suppresses another's results for
// the same scope.
func (s *Collector) Collect(ctx context.Context, scope models.ScopeNode, categories []enums.Category) ([]models.RawAssignment, []models.SkippedScope) {
	var (
		raws    []models.RawAssignment
		skipped []models.SkippedScope
	)

	for _, category := range categories {
		var err error

		switch category {
		case enums.CategoryStandingGrant:
			raws, err = s.collectStandingGrants(ctx, scope, raws)
		case enums.CategoryEligibleGrant:
			raws, err = s.collectEligibleGrants(ctx, scope, raws)
		case enums.CategoryPolicyAssignment:
			raws, err = s.collectPolicyAssignments(ctx, scope, raws)
		}

		if err != nil {
			s.log.Error(err, "unable to collect assignments", "scope", scope.Id, "category", category)
			skipped = append(skipped, models.SkippedScope{
				ScopeId: scope.Id,
				Stage:   string(category),
				Reason:  skipReason(err),
			})
		}
	}

	return raws, skipped
}

func (s *Collector) collectStandingGrants(ctx context.Context, scope models.ScopeNode, raws []models.RawAssignment) ([]models.RawAssignment, error) {
	for item := range s.azClient.ListRoleAssignments(ctx, scope.Id) {
		if item.Error != nil {
			return raws, item.Error
		}
		raws = append(raws, normalizeRoleAssignment(item.Ok))
	}
	return raws, nil
}

func (s *Collector) collectEligibleGrants(ctx context.Context, scope models.ScopeNode, raws []models.RawAssignment) ([]models.RawAssignment, error) {
	for item := range s.azClient.ListRoleEligibilityScheduleInstances(ctx, scope.Id) {
		if item.Error != nil {
			return raws, item.Error
		}
		raws = append(raws, normalizeEligibilityInstance(item.Ok))
	}
	return raws, nil
}

func (s *Collector) collectPolicyAssignments(ctx context.Context, scope models.ScopeNode, raws []models.RawAssignment) ([]models.RawAssignment, error) {
	for item := range s.azClient.ListPolicyAssignments(ctx, scope.Id) {
		if item.Error != nil {
			return raws, item.Error
		}
		raws = append(raws, normalizePolicyAssignment(item.Ok))
	}
	return raws, nil
}

// firstNonEmpty evaluates an ordered list of accessors until one yields a
// non-empty value. Normalization fallback order lives in the accessor
// lists below, where it can be read and tested as data.
func firstNonEmpty(accessors ...func() string) string {
	for _, fn := range accessors {
		if value := fn(); value != "" {
			return value
		}
	}
	return ""
}

// scopeFromResourceId trims the provider suffix of an assignment resource
// id, leaving the scope path the assignment is bound to.
func scopeFromResourceId(resourceId string) string {
	if idx := strings.Index(resourceId, "/providers/Microsoft.Authorization/"); idx > 0 {
		return resourceId[:idx]
	}
	return ""
}

func normalizeRoleAssignment(item azure.RoleAssignment) models.RawAssignment {
	props := item.Properties

	scopePath := firstNonEmpty(
		func() string { return props.Scope },
		func() string { return scopeFromResourceId(item.Id) },
		func() string { return UnknownScopePath },
	)

	refName := firstNonEmpty(
		func() string { return path.Base(props.RoleDefinitionId) },
		func() string { return item.Name },
	)

	return models.RawAssignment{
		Id:            item.Id,
		Category:      enums.CategoryStandingGrant,
		ScopePath:     scopePath,
		PrincipalId:   props.PrincipalId,
		PrincipalType: props.PrincipalType,
		RefId:         props.RoleDefinitionId,
		RefName:       refName,
		CreatedOn:     props.CreatedOn,
		Condition:     props.Condition,
	}
}

func normalizeEligibilityInstance(item azure.RoleEligibilityScheduleInstance) models.RawAssignment {
	props := item.Properties

	scopePath := firstNonEmpty(
		func() string { return props.Scope },
		func() string { return props.ExpandedProperties.Scope.Id },
		func() string { return scopeFromResourceId(item.Id) },
		func() string { return UnknownScopePath },
	)

	principalName := firstNonEmpty(
		func() string { return props.ExpandedProperties.Principal.DisplayName },
	)

	principalType := firstNonEmpty(
		func() string { return props.PrincipalType },
		func() string { return props.ExpandedProperties.Principal.Type },
	)

	refName := firstNonEmpty(
		func() string { return props.ExpandedProperties.RoleDefinition.DisplayName },
		func() string { return path.Base(props.RoleDefinitionId) },
		func() string { return item.Name },
	)

	return models.RawAssignment{
		Id:            item.Id,
		Category:      enums.CategoryEligibleGrant,
		ScopePath:     scopePath,
		PrincipalId:   props.PrincipalId,
		PrincipalType: principalType,
		PrincipalName: principalName,
		RefId:         props.RoleDefinitionId,
		RefName:       refName,
		StartTime:     props.StartDateTime,
		EndTime:       props.EndDateTime,
		CreatedOn:     props.CreatedOn,
		Condition:     props.Condition,
	}
}

func normalizePolicyAssignment(item azure.PolicyAssignment) models.RawAssignment {
	props := item.Properties

	scopePath := firstNonEmpty(
		func() string { return props.Scope },
		func() string { return scopeFromResourceId(item.Id) },
		func() string { return UnknownScopePath },
	)

	refName := firstNonEmpty(
		func() string { return props.DisplayName },
		func() string { return item.Name },
		func() string { return path.Base(props.PolicyDefinitionId) },
	)

	return models.RawAssignment{
		Id:            item.Id,
		Category:      enums.CategoryPolicyAssignment,
		ScopePath:     scopePath,
		PrincipalId:   item.Identity.PrincipalId,
		PrincipalType: item.Identity.Type,
		RefId:         props.PolicyDefinitionId,
		RefName:       refName,
	}
}
