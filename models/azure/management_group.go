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

package azure

// ManagementGroup defines the model for the Azure management group resource type
// https://learn.microsoft.com/en-us/rest/api/managementgroups/management-groups/get
type ManagementGroup struct {
	Entity

	Name string `json:"name,omitempty"`

	Type string `json:"type,omitempty"`

	Properties ManagementGroupProperties `json:"properties,omitempty"`
}

type ManagementGroupProperties struct {
	DisplayName string `json:"displayName,omitempty"`
	TenantId    string `json:"tenantId,omitempty"`
}

// ManagementGroupExpanded is the same resource fetched with
// $expand=children; the immediate children ride along in properties.
type ManagementGroupExpanded struct {
	Entity

	Name string `json:"name,omitempty"`

	Type string `json:"type,omitempty"`

	Properties ManagementGroupExpandedProperties `json:"properties,omitempty"`
}

type ManagementGroupExpandedProperties struct {
	DisplayName string           `json:"displayName,omitempty"`
	TenantId    string           `json:"tenantId,omitempty"`
	Children    []DescendantInfo `json:"children,omitempty"`
}
