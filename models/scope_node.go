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

package models

import "github.com/bloodhoundad/scopehound/enums"

// ScopeNode is a single node of the tenant's resource hierarchy as
// discovered during a walk. Nodes are immutable once discovered.
type ScopeNode struct {
	Id          string          `json:"id"`
	DisplayName string          `json:"displayName,omitempty"`
	Kind        enums.ScopeKind `json:"kind"`

	// ParentId is empty only for a queried root.
	ParentId string `json:"parentId,omitempty"`

	// RootId is the first root that reached this node during the walk.
	RootId string `json:"rootId"`

	// Roots lists every queried root able to reach this node, in the
	// order they reached it.
	Roots []string `json:"roots,omitempty"`
}
