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

package constants

import "fmt"

const (
	Name        string = "scopehound"
	DisplayName string = "ScopeHound"
	Description string = "Audits access and policy assignments across a tenant's scope hierarchy"
	Version     string = "v0.3.0"

	AuthorityUrl  string = "https://login.microsoftonline.com"
	ManagementUrl string = "https://management.azure.com"

	// Resource manager api versions per provider
	MgmtGroupApiVersion     string = "2020-05-01"
	RoleAssignApiVersion    string = "2022-04-01"
	EligibilityApiVersion   string = "2020-10-01"
	PolicyAssignApiVersion  string = "2022-06-01"
	ResourceGroupApiVersion string = "2021-04-01"
)

func UserAgent() string {
	return fmt.Sprintf("%s/%s", Name, Version)
}
