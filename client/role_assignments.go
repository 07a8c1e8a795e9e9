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
	"github.com/bloodhoundad/scopehound/constants"
	"github.com/bloodhoundad/scopehound/models/azure"
)

// ListRoleAssignments lists the RBAC role assignments effective at or above
// the given scope
// https://learn.microsoft.com/en-us/rest/api/authorization/role-assignments/list-for-scope
func (s *azureClient) ListRoleAssignments(ctx context.Context, scope string) <-chan AzureResult[azure.RoleAssignment] {
	var (
		out    = make(chan AzureResult[azure.RoleAssignment])
		path   = fmt.Sprintf("%s/providers/Microsoft.Authorization/roleAssignments", scope)
		params = query.RMParams{ApiVersion: constants.RoleAssignApiVersion}
	)

	go getAzureObjectList[azure.RoleAssignment](s.resourceManager, ctx, path, params, out)

	return out
}
