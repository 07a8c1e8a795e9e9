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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRestClient_StatusErrorMapping(t *testing.T) {
	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer testServer.Close()

		client := &restClient{http: http.DefaultClient}
		req, _ := http.NewRequest("GET", testServer.URL, nil)
		_, err := client.send(req)

		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("403 maps to ErrAccessDenied", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer testServer.Close()

		client := &restClient{http: http.DefaultClient}
		req, _ := http.NewRequest("GET", testServer.URL, nil)
		_, err := client.send(req)

		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("401 maps to ErrAccessDenied", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer testServer.Close()

		client := &restClient{http: http.DefaultClient}
		req, _ := http.NewRequest("GET", testServer.URL, nil)
		_, err := client.send(req)

		require.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestRestClient_RetryAfterHeader(t *testing.T) {
	requestCount := 0
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		if requestCount == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	client := &restClient{http: http.DefaultClient}
	req, _ := http.NewRequest("GET", testServer.URL, nil)
	res, err := client.send(req)

	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, 2, requestCount)
	res.Body.Close()
}
