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
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bloodhoundad/scopehound/client/mocks"
	"github.com/bloodhoundad/scopehound/enums"
	"github.com/bloodhoundad/scopehound/models/azure"
)

func TestOptions_Validate(t *testing.T) {
	cases := []struct {
		name string
		opts Options
	}{
		{"no roots", Options{}},
		{"blank root", Options{Roots: []string{"  "}}},
		{"resource groups without subscriptions", Options{Roots: []string{"root"}, IncludeResourceGroups: true}},
		{"negative workers", Options{Roots: []string{"root"}, Workers: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			require.Error(t, err)
			require.IsType(t, ConfigurationError{}, err)
		})
	}

	require.NoError(t, Options{Roots: []string{"root"}}.Validate())
}

func TestEngine_InvalidOptionsFailBeforeRemoteCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no expectations registered: any remote call fails the test
	mockClient := mocks.NewMockAzureClient(ctrl)

	engine := NewEngine(mockClient, logr.Discard(), Options{})
	report, err := engine.Run(context.Background())

	require.Nil(t, report)
	require.IsType(t, ConfigurationError{}, err)
}

func TestEngine_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mocks.NewMockAzureClient(ctrl)

	assignment := azure.RoleAssignment{
		Entity: azure.Entity{Id: ManagementGroupScope("root") + "/providers/Microsoft.Authorization/roleAssignments/ra-1"},
		Properties: azure.RoleAssignmentProperties{
			RoleDefinitionId: "/providers/Microsoft.Authorization/roleDefinitions/owner",
			PrincipalId:      "p-1",
			PrincipalType:    "User",
			Scope:            ManagementGroupScope("root"),
		},
	}

	mockClient.EXPECT().GetManagementGroup(gomock.Any(), "root").Return(managementGroup("root", "Root"), nil)
	mockClient.EXPECT().ListManagementGroupChildren(gomock.Any(), "root").Return(results(nil, groupChild("child")))
	mockClient.EXPECT().ListManagementGroupChildren(gomock.Any(), "child").Return(results[azure.DescendantInfo](nil))
	mockClient.EXPECT().ListRoleAssignments(gomock.Any(), ManagementGroupScope("root")).Return(results(nil, assignment))
	mockClient.EXPECT().ListRoleAssignments(gomock.Any(), ManagementGroupScope("child")).Return(results[azure.RoleAssignment](nil))
	mockClient.EXPECT().TenantInfo().Return(azure.Tenant{TenantId: "tenant-1"})

	engine := NewEngine(mockClient, logr.Discard(), Options{Roots: []string{"root"}})
	report, err := engine.Run(context.Background())

	require.NoError(t, err)
	require.False(t, report.Incomplete)
	require.NotEmpty(t, report.RunId)
	require.Equal(t, "tenant-1", report.TenantId)
	require.Len(t, report.Nodes, 2)
	require.Len(t, report.Records, 1)
	require.Equal(t, ManagementGroupScope("root"), report.Records[0].ScopeId)
	require.Equal(t, enums.InheritanceDirect, report.Records[0].Inheritance)
	require.Equal(t, 1, report.Summaries["category"][string(enums.CategoryStandingGrant)])
}

func TestEngine_CancelledRunFlushesPartialReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mocks.NewMockAzureClient(ctrl)
	mockClient.EXPECT().TenantInfo().Return(azure.Tenant{TenantId: "tenant-1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine(mockClient, logr.Discard(), Options{Roots: []string{"root"}})
	report, err := engine.Run(ctx)

	require.NoError(t, err)
	require.True(t, report.Incomplete)
	require.Len(t, report.Skipped, 1)
	require.Equal(t, ReasonCancelled, report.Skipped[0].Reason)
}
