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

// RoleAssignment defines the model for the Azure RBAC role assignment resource type
// https://learn.microsoft.com/en-us/rest/api/authorization/role-assignments/list-for-scope
type RoleAssignment struct {
	Entity

	Name string `json:"name,omitempty"`

	Type string `json:"type,omitempty"`

	Properties RoleAssignmentProperties `json:"properties,omitempty"`
}

type RoleAssignmentProperties struct {
	RoleDefinitionId string `json:"roleDefinitionId,omitempty"`

	PrincipalId string `json:"principalId,omitempty"`

	PrincipalType string `json:"principalType,omitempty"`

	// The literal scope string the assignment is bound to; may be an
	// ancestor of the scope the listing was issued against.
	Scope string `json:"scope,omitempty"`

	Condition string `json:"condition,omitempty"`

	ConditionVersion string `json:"conditionVersion,omitempty"`

	Description string `json:"description,omitempty"`

	CreatedOn string `json:"createdOn,omitempty"`

	UpdatedOn string `json:"updatedOn,omitempty"`
}
