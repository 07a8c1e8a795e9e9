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

// PolicyAssignment defines the model for the Azure policy assignment resource type
// https://learn.microsoft.com/en-us/rest/api/policy/policy-assignments/list-for-management-group
type PolicyAssignment struct {
	Entity

	Name string `json:"name,omitempty"`

	Type string `json:"type,omitempty"`

	Location string `json:"location,omitempty"`

	Identity PolicyAssignmentIdentity `json:"identity,omitempty"`

	Properties PolicyAssignmentProperties `json:"properties,omitempty"`
}

type PolicyAssignmentIdentity struct {
	Type        string `json:"type,omitempty"`
	PrincipalId string `json:"principalId,omitempty"`
	TenantId    string `json:"tenantId,omitempty"`
}

type PolicyAssignmentProperties struct {
	DisplayName string `json:"displayName,omitempty"`

	PolicyDefinitionId string `json:"policyDefinitionId,omitempty"`

	Scope string `json:"scope,omitempty"`

	NotScopes []string `json:"notScopes,omitempty"`

	EnforcementMode string `json:"enforcementMode,omitempty"`

	Description string `json:"description,omitempty"`
}
