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

package rest

import (
	"errors"
	"fmt"
	"net/http"
)

// Permanent remote errors; branches and scopes that hit one are skipped,
// never retried.
var (
	ErrNotFound     = errors.New("the requested resource was not found")
	ErrAccessDenied = errors.New("access to the requested resource was denied")
)

// ErrRetryExhausted marks a transient failure that outlived its retry
// budget; callers treat it the same as any other branch failure.
var ErrRetryExhausted = errors.New("exceeded max retry attempts")

func newStatusError(req *http.Request, res *http.Response) error {
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, req.Method, req.URL.Path)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s %s", ErrAccessDenied, req.Method, req.URL.Path)
	default:
		var errRes map[string]interface{}
		if err := Decode(res.Body, &errRes); err != nil {
			return fmt.Errorf("malformed error response, status code: %d", res.StatusCode)
		} else {
			return fmt.Errorf("status code %d: %v", res.StatusCode, errRes)
		}
	}
}

// IsPermanent reports whether an error is one the run must not retry.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrAccessDenied)
}
