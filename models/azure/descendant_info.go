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

// DescendantInfo defines the model for an immediate child of a management
// group as returned by the management groups API with $expand=children
// https://learn.microsoft.com/en-us/rest/api/managementgroups/management-groups/get
type DescendantInfo struct {
	Entity

	Name string `json:"name,omitempty"`

	// The ARM resource type of the child, e.g.
	// Microsoft.Management/managementGroups or
	// Microsoft.Management/managementGroups/subscriptions
	Type string `json:"type,omitempty"`

	Properties DescendantInfoProperties `json:"properties,omitempty"`
}

type DescendantInfoProperties struct {
	DisplayName string           `json:"displayName,omitempty"`
	Parent      DescendantParent `json:"parent,omitempty"`
	Children    []DescendantInfo `json:"children,omitempty"`
}

type DescendantParent struct {
	Id string `json:"id,omitempty"`
}
