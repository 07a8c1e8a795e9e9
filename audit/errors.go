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
	"context"
	"errors"
	"fmt"

	"github.com/bloodhoundad/scopehound/client/rest"
)

// ConfigurationError fails a run before any remote call is issued.
type ConfigurationError struct {
	Reason string
}

func (s ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", s.Reason)
}

// Stable skip reasons used in the report; anything outside the taxonomy is
// reported as the raw error text.
const (
	ReasonAccessDenied = "AccessDenied"
	ReasonNotFound     = "NotFound"
	ReasonTransient    = "Transient"
	ReasonCancelled    = "Cancelled"
)

func skipReason(err error) string {
	switch {
	case errors.Is(err, rest.ErrAccessDenied):
		return ReasonAccessDenied
	case errors.Is(err, rest.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, rest.ErrRetryExhausted):
		return ReasonTransient
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCancelled
	default:
		return err.Error()
	}
}
