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

// RoleEligibilityScheduleInstance defines the model for the PIM role
// eligibility schedule instance resource type
// https://learn.microsoft.com/en-us/rest/api/authorization/role-eligibility-schedule-instances/list-for-scope
type RoleEligibilityScheduleInstance struct {
	Entity

	Name string `json:"name,omitempty"`

	Type string `json:"type,omitempty"`

	Properties RoleEligibilityScheduleInstanceProperties `json:"properties,omitempty"`
}

type RoleEligibilityScheduleInstanceProperties struct {
	Scope string `json:"scope,omitempty"`

	RoleDefinitionId string `json:"roleDefinitionId,omitempty"`

	PrincipalId string `json:"principalId,omitempty"`

	PrincipalType string `json:"principalType,omitempty"`

	StartDateTime string `json:"startDateTime,omitempty"`

	EndDateTime string `json:"endDateTime,omitempty"`

	MemberType string `json:"memberType,omitempty"`

	Condition string `json:"condition,omitempty"`

	ConditionVersion string `json:"conditionVersion,omitempty"`

	CreatedOn string `json:"createdOn,omitempty"`

	ExpandedProperties ExpandedProperties `json:"expandedProperties,omitempty"`
}

// ExpandedProperties carries the display names the API resolves alongside a
// schedule instance. Any of these may be empty on stale data.
type ExpandedProperties struct {
	Principal      ExpandedPrincipal      `json:"principal,omitempty"`
	RoleDefinition ExpandedRoleDefinition `json:"roleDefinition,omitempty"`
	Scope          ExpandedScope          `json:"scope,omitempty"`
}

type ExpandedPrincipal struct {
	Id          string `json:"id,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Type        string `json:"type,omitempty"`
}

type ExpandedRoleDefinition struct {
	Id          string `json:"id,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Type        string `json:"type,omitempty"`
}

type ExpandedScope struct {
	Id          string `json:"id,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Type        string `json:"type,omitempty"`
}
