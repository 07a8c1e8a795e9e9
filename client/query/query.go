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

package query

import "strconv"

type Params interface {
	AsMap() map[string]string
}

// RMParams are the query parameters accepted by Azure Resource Manager
// list endpoints.
type RMParams struct {
	ApiVersion string
	Filter     string
	Expand     string
	Recurse    bool
	Top        int
}

func (s RMParams) AsMap() map[string]string {
	params := make(map[string]string)

	if s.ApiVersion != "" {
		params["api-version"] = s.ApiVersion
	}

	if s.Filter != "" {
		params["$filter"] = s.Filter
	}

	if s.Expand != "" {
		params["$expand"] = s.Expand
	}

	if s.Recurse {
		params["$recurse"] = "true"
	}

	if s.Top > 0 {
		params["$top"] = strconv.Itoa(s.Top)
	}

	return params
}
