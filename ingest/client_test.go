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

package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/http2"
)

func TestIngestClient_SendRequest(t *testing.T) {
	t.Run("GOAWAY error handling", func(t *testing.T) {
		client := &ingestClient{
			httpClient: &http.Client{
				Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
					return nil, &http2.GoAwayError{
						LastStreamID: 1,
						ErrCode:      http2.ErrCodeNo,
						DebugData:    "",
					}
				}),
			},
			maxRetries: 0,
			log:        logr.Discard(),
		}

		req, _ := http.NewRequest("GET", "http://ingest.example.com", nil)
		_, err := client.SendRequest(req)

		require.Error(t, err)
	})

	t.Run("retry after failures", func(t *testing.T) {
		requestCount := 0
		maxRetries := 5

		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCount++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer testServer.Close()

		testUrl, _ := url.Parse(testServer.URL)

		client := &ingestClient{
			httpClient: http.DefaultClient,
			maxRetries: maxRetries,
			retryDelay: 0,
			log:        logr.Discard(),
		}

		req, _ := http.NewRequest("GET", testUrl.String(), nil)
		_, err := client.SendRequest(req)

		require.Error(t, err)
		require.Equal(t, maxRetries+1, requestCount)
	})
}

func TestIngestClient_Ingest(t *testing.T) {
	t.Run("successful ingest request", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		defer testServer.Close()

		testUrl, _ := url.Parse(testServer.URL)

		client, err := NewIngestClient(*testUrl, "tokenId", "token", "", 0, 1, logr.Discard())
		require.NoError(t, err)

		data := make(chan []interface{}, 1)
		data <- []interface{}{"test"}
		close(data)

		hadErrors := client.Ingest(context.Background(), data)

		require.False(t, hadErrors)
	})

	t.Run("retry after failures", func(t *testing.T) {
		requestCount := 0
		maxRetries := 1

		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCount++
			w.WriteHeader(http.StatusGatewayTimeout)
		}))
		defer testServer.Close()

		testUrl, _ := url.Parse(testServer.URL)

		client := &ingestClient{
			httpClient: http.DefaultClient,
			maxRetries: maxRetries,
			retryDelay: 0,
			ingestUrl:  *testUrl,
			log:        logr.Discard(),
		}
		data := make(chan []interface{}, 1)
		data <- []interface{}{"test"}
		close(data)

		hadErrors := client.Ingest(context.Background(), data)

		require.True(t, hadErrors)
		require.Equal(t, maxRetries+1, requestCount)
	})

	t.Run("signs each request", func(t *testing.T) {
		var (
			authorization string
			signature     string
		)

		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization = r.Header.Get("Authorization")
			signature = r.Header.Get("Signature")
			w.WriteHeader(http.StatusAccepted)
		}))
		defer testServer.Close()

		testUrl, _ := url.Parse(testServer.URL)

		client, err := NewIngestClient(*testUrl, "tokenId", "token", "", 0, 0, logr.Discard())
		require.NoError(t, err)

		data := make(chan []interface{}, 1)
		data <- []interface{}{"test"}
		close(data)

		hadErrors := client.Ingest(context.Background(), data)

		require.False(t, hadErrors)
		require.Equal(t, "shsignature tokenId", authorization)
		require.NotEmpty(t, signature)
	})
}
