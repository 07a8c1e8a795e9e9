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
	"github.com/bloodhoundad/scopehound/client"
	"github.com/bloodhoundad/scopehound/enums"
	"github.com/bloodhoundad/scopehound/models/azure"
)

func results[T any](err error, items ...T) <-chan client.AzureResult[T] {
	out := make(chan client.AzureResult[T], len(items)+1)
	for _, item := range items {
		out <- client.AzureResult[T]{Ok: item}
	}
	if err != nil {
		out <- client.AzureResult[T]{Error: err}
	}
	close(out)
	return out
}

func managementGroup(name, displayName string) *azure.ManagementGroup {
	return &azure.ManagementGroup{
		Entity:     azure.Entity{Id: ManagementGroupScope(name)},
		Name:       name,
		Type:       enums.TypeManagementGroup,
		Properties: azure.ManagementGroupProperties{DisplayName: displayName},
	}
}

func groupChild(name string) azure.DescendantInfo {
	return azure.DescendantInfo{
		Entity:     azure.Entity{Id: ManagementGroupScope(name)},
		Name:       name,
		Type:       enums.TypeManagementGroup,
		Properties: azure.DescendantInfoProperties{DisplayName: name},
	}
}

func subscriptionChild(subscriptionId, parentName string) azure.DescendantInfo {
	return azure.DescendantInfo{
		Entity:     azure.Entity{Id: ManagementGroupScope(parentName) + "/subscriptions/" + subscriptionId},
		Name:       subscriptionId,
		Type:       enums.TypeSubscription,
		Properties: azure.DescendantInfoProperties{DisplayName: subscriptionId},
	}
}
