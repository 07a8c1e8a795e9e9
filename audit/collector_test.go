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
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bloodhoundad/scopehound/client/mocks"
	"github.com/bloodhoundad/scopehound/client/rest"
	"github.com/bloodhoundad/scopehound/enums"
	"github.com/bloodhoundad/scopehound/models/azure"
)

func TestCollector_CategoryIndependence(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mocks.NewMockAzureClient(ctrl)
	scope := mgNode("root")

	assignment := azure.RoleAssignment{
		Entity: azure.Entity{Id: scope.Id + "/providers/Microsoft.Authorization/roleAssignments/ra-1"},
		Name:   "ra-1",
		Properties: azure.RoleAssignmentProperties{
			RoleDefinitionId: "/providers/Microsoft.Authorization/roleDefinitions/owner",
			PrincipalId:      "p-1",
			PrincipalType:    "User",
			Scope:            scope.Id,
		},
	}

	mockClient.EXPECT().ListRoleAssignments(gomock.Any(), scope.Id).Return(results(nil, assignment))
	mockClient.EXPECT().ListRoleEligibilityScheduleInstances(gomock.Any(), scope.Id).
		Return(results[azure.RoleEligibilityScheduleInstance](fmt.Errorf("listing failed: %w", rest.ErrAccessDenied)))
	mockClient.EXPECT().ListPolicyAssignments(gomock.Any(), scope.Id).Return(results[azure.PolicyAssignment](nil))

	collector := NewCollector(mockClient, logr.Discard())
	categories := []enums.Category{enums.CategoryStandingGrant, enums.CategoryEligibleGrant, enums.CategoryPolicyAssignment}
	raws, skipped := collector.Collect(context.Background(), scope, categories)

	// the denied category is skipped; the others still produce results
	require.Len(t, raws, 1)
	require.Equal(t, enums.CategoryStandingGrant, raws[0].Category)

	require.Len(t, skipped, 1)
	require.Equal(t, string(enums.CategoryEligibleGrant), skipped[0].Stage)
	require.Equal(t, ReasonAccessDenied, skipped[0].Reason)
}

func TestNormalizeRoleAssignment(t *testing.T) {
	t.Run("explicit scope field wins", func(t *testing.T) {
		item := azure.RoleAssignment{
			Entity: azure.Entity{Id: "/subscriptions/s1/providers/Microsoft.Authorization/roleAssignments/ra-1"},
			Properties: azure.RoleAssignmentProperties{
				Scope:            ManagementGroupScope("contoso-root"),
				RoleDefinitionId: "/providers/Microsoft.Authorization/roleDefinitions/owner",
			},
		}

		raw := normalizeRoleAssignment(item)
		require.Equal(t, ManagementGroupScope("contoso-root"), raw.ScopePath)
		require.Equal(t, "owner", raw.RefName)
	})

	t.Run("falls back to trimming the resource id", func(t *testing.T) {
		item := azure.RoleAssignment{
			Entity: azure.Entity{Id: "/subscriptions/s1/providers/Microsoft.Authorization/roleAssignments/ra-1"},
		}

		raw := normalizeRoleAssignment(item)
		require.Equal(t, "/subscriptions/s1", raw.ScopePath)
	})

	t.Run("unresolvable scope is reported, not dropped", func(t *testing.T) {
		item := azure.RoleAssignment{Entity: azure.Entity{Id: "malformed"}}

		raw := normalizeRoleAssignment(item)
		require.Equal(t, UnknownScopePath, raw.ScopePath)
	})
}

func TestNormalizeEligibilityInstance(t *testing.T) {
	t.Run("expanded properties fill the gaps", func(t *testing.T) {
		item := azure.RoleEligibilityScheduleInstance{
			Entity: azure.Entity{Id: "/subscriptions/s1/providers/Microsoft.Authorization/roleEligibilityScheduleInstances/e-1"},
			Properties: azure.RoleEligibilityScheduleInstanceProperties{
				RoleDefinitionId: "/providers/Microsoft.Authorization/roleDefinitions/reader",
				PrincipalId:      "p-1",
				ExpandedProperties: azure.ExpandedProperties{
					Principal:      azure.ExpandedPrincipal{DisplayName: "Jamie Doe", Type: "User"},
					RoleDefinition: azure.ExpandedRoleDefinition{DisplayName: "Reader"},
					Scope:          azure.ExpandedScope{Id: "/subscriptions/s1"},
				},
			},
		}

		raw := normalizeEligibilityInstance(item)
		require.Equal(t, "/subscriptions/s1", raw.ScopePath)
		require.Equal(t, "Jamie Doe", raw.PrincipalName)
		require.Equal(t, "User", raw.PrincipalType)
		require.Equal(t, "Reader", raw.RefName)
	})

	t.Run("technical name when no display name resolves", func(t *testing.T) {
		item := azure.RoleEligibilityScheduleInstance{
			Entity: azure.Entity{Id: "/subscriptions/s1/providers/Microsoft.Authorization/roleEligibilityScheduleInstances/e-1"},
			Name:   "e-1",
		}

		raw := normalizeEligibilityInstance(item)
		require.Equal(t, "e-1", raw.RefName)
	})
}

func TestNormalizePolicyAssignment(t *testing.T) {
	item := azure.PolicyAssignment{
		Entity: azure.Entity{Id: ManagementGroupScope("contoso-root") + "/providers/Microsoft.Authorization/policyAssignments/pa-1"},
		Name:   "pa-1",
		Identity: azure.PolicyAssignmentIdentity{
			Type:        "SystemAssigned",
			PrincipalId: "mi-1",
		},
		Properties: azure.PolicyAssignmentProperties{
			DisplayName:        "Require tags",
			PolicyDefinitionId: "/providers/Microsoft.Authorization/policyDefinitions/require-tags",
			Scope:              ManagementGroupScope("contoso-root"),
		},
	}

	raw := normalizePolicyAssignment(item)
	require.Equal(t, enums.CategoryPolicyAssignment, raw.Category)
	require.Equal(t, ManagementGroupScope("contoso-root"), raw.ScopePath)
	require.Equal(t, "Require tags", raw.RefName)
	require.Equal(t, "mi-1", raw.PrincipalId)
	require.Equal(t, "SystemAssigned", raw.PrincipalType)
}
