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

package client

import (
	"context"
	"fmt"

	"github.com/bloodhoundad/scopehound/client/query"
	"github.com/bloodhoundad/scopehound/client/rest"
	"github.com/bloodhoundad/scopehound/constants"
	"github.com/bloodhoundad/scopehound/models/azure"
	"github.com/bloodhoundad/scopehound/panicrecovery"
	"github.com/bloodhoundad/scopehound/pipeline"
)

// GetManagementGroup https://learn.microsoft.com/en-us/rest/api/managementgroups/management-groups/get
func (s *azureClient) GetManagementGroup(ctx context.Context, groupId string) (*azure.ManagementGroup, error) {
	var (
		path   = fmt.Sprintf("/providers/Microsoft.Management/managementGroups/%s", groupId)
		params = query.RMParams{ApiVersion: constants.MgmtGroupApiVersion}
		group  azure.ManagementGroup
	)

	if res, err := s.resourceManager.Get(ctx, path, params, nil); err != nil {
		return nil, err
	} else if err := rest.Decode(res.Body, &group); err != nil {
		return nil, err
	} else {
		return &group, nil
	}
}

// ListManagementGroupChildren streams the immediate children of a management
// group using $expand=children on the get endpoint. The stream closes after
// the last child; a lookup failure is delivered as a single error item.
func (s *azureClient) ListManagementGroupChildren(ctx context.Context, groupId string) <-chan AzureResult[azure.DescendantInfo] {
	var (
		out    = make(chan AzureResult[azure.DescendantInfo])
		path   = fmt.Sprintf("/providers/Microsoft.Management/managementGroups/%s", groupId)
		params = query.RMParams{ApiVersion: constants.MgmtGroupApiVersion, Expand: "children"}
	)

	go func() {
		defer panicrecovery.PanicRecovery()
		defer close(out)

		var group azure.ManagementGroupExpanded
		if res, err := s.resourceManager.Get(ctx, path, params, nil); err != nil {
			pipeline.Send(ctx.Done(), out, AzureResult[azure.DescendantInfo]{Error: err})
		} else if err := rest.Decode(res.Body, &group); err != nil {
			pipeline.Send(ctx.Done(), out, AzureResult[azure.DescendantInfo]{Error: err})
		} else {
			for _, child := range group.Properties.Children {
				if ok := pipeline.Send(ctx.Done(), out, AzureResult[azure.DescendantInfo]{Ok: child}); !ok {
					return
				}
			}
		}
	}()

	return out
}

// ListResourceGroups https://learn.microsoft.com/en-us/rest/api/resources/resource-groups/list
func (s *azureClient) ListResourceGroups(ctx context.Context, subscriptionId string) <-chan AzureResult[azure.ResourceGroup] {
	var (
		out    = make(chan AzureResult[azure.ResourceGroup])
		path   = fmt.Sprintf("/subscriptions/%s/resourcegroups", subscriptionId)
		params = query.RMParams{ApiVersion: constants.ResourceGroupApiVersion}
	)

	go getAzureObjectList[azure.ResourceGroup](s.resourceManager, ctx, path, params, out)

	return out
}

// ListResources https://learn.microsoft.com/en-us/rest/api/resources/resources/list-by-resource-group
func (s *azureClient) ListResources(ctx context.Context, resourceGroupId string) <-chan AzureResult[azure.Resource] {
	var (
		out    = make(chan AzureResult[azure.Resource])
		path   = fmt.Sprintf("%s/resources", resourceGroupId)
		params = query.RMParams{ApiVersion: constants.ResourceGroupApiVersion}
	)

	go getAzureObjectList[azure.Resource](s.resourceManager, ctx, path, params, out)

	return out
}
