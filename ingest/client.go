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
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-logr/logr"

	"github.com/bloodhoundad/scopehound/client/rest"
	"github.com/bloodhoundad/scopehound/constants"
	"github.com/bloodhoundad/scopehound/models"
	"github.com/bloodhoundad/scopehound/pipeline"
)

const (
	AuthSignature  string = "shsignature"
	IngestEndpoint string = "/api/v1/audit/ingest"
	IngestDataType string = "scope-audit"
)

var ErrExceededRetryLimit = errors.New("exceeded max retry limit for ingest batch, proceeding with next batch...")

// IngestClient ships audit report batches to a remote ingest service.
type IngestClient interface {
	SendRequest(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
	Ingest(ctx context.Context, in <-chan []interface{}) bool
}

type ingestClient struct {
	httpClient          *http.Client
	ingestUrl           url.URL
	log                 logr.Logger
	requestLimit        int
	currentRequestCount int
	maxRetries          int
	retryDelay          int
	proxy               string
	token               string
	tokenId             string
	mu                  sync.Mutex
}

// NewIngestClient creates an IngestClient whose requests are signed with
// the given api token.
func NewIngestClient(ingestUrl url.URL, tokenId, token, proxy string, maxReqPerConn, maxRetries int, logger logr.Logger) (IngestClient, error) {
	client, err := rest.NewHTTPClient(proxy)
	if err != nil {
		return nil, err
	}

	client.Transport = signingTransport{
		base:      client.Transport,
		tokenId:   tokenId,
		token:     token,
		signature: AuthSignature,
	}

	return &ingestClient{
		httpClient:          client,
		ingestUrl:           ingestUrl,
		requestLimit:        maxReqPerConn,
		currentRequestCount: 0,
		maxRetries:          maxRetries,
		proxy:               proxy,
		retryDelay:          5,
		log:                 logger,
		token:               token,
		tokenId:             tokenId,
	}, nil
}

// SendRequest sends a request to the ingest service, retrying force closed
// connections, GOAWAY frames and server errors up to the retry limit.
func (s *ingestClient) SendRequest(req *http.Request) (*http.Response, error) {
	var res *http.Response

	// copy the bytes in case we need to retry the request
	if body, err := rest.CopyBody(req); err != nil {
		return nil, err
	} else {
		for currentAttempt := 0; currentAttempt <= s.maxRetries; currentAttempt++ {
			if body != nil && currentAttempt > 0 {
				req.Body = io.NopCloser(bytes.NewBuffer(body))
			}

			if res, err = s.httpClient.Do(req); err != nil {
				if rest.IsClosedConnectionErr(err) {
					s.log.Error(err, fmt.Sprintf("remote host force closed connection while requesting %s; attempt %d/%d; trying again", req.URL, currentAttempt+1, s.maxRetries))
					rest.VariableExponentialBackoff(s.retryDelay, currentAttempt)
					continue
				} else if rest.IsGoAwayErr(err) {
					s.log.Error(err, fmt.Sprintf("received GOAWAY from load balancer while requesting %s; attempt %d/%d; trying again", req.URL, currentAttempt+1, s.maxRetries))
					rest.VariableExponentialBackoff(s.retryDelay, currentAttempt)
					continue
				}

				// normal client error, dont attempt again
				return nil, err
			}

			if err := s.incrementRequest(); err != nil {
				return nil, err
			}

			if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusBadRequest {
				if res.StatusCode >= http.StatusInternalServerError {
					serverError := fmt.Errorf("received server error %d while requesting %v", res.StatusCode, req.URL)
					s.log.Error(serverError, fmt.Sprintf("attempt %d/%d; trying again", currentAttempt+1, s.maxRetries))

					rest.VariableExponentialBackoff(s.retryDelay, currentAttempt)
					continue
				}

				var body json.RawMessage
				defer res.Body.Close()

				if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
					return nil, fmt.Errorf("received unexpected response code from %v: %s; failure reading response body", req.URL, res.Status)
				} else {
					return nil, fmt.Errorf("received unexpected response code from %v: %s %s", req.URL, res.Status, body)
				}
			} else {
				return res, nil
			}
		}
	}

	return nil, fmt.Errorf("unable to complete request to url=%s; attempts=%d;", req.URL, s.maxRetries)
}

// Ingest drains batches from in and posts each as one gzipped envelope.
// It returns true when any batch was lost to errors; the stream itself is
// always drained so upstream producers never block.
func (s *ingestClient) Ingest(ctx context.Context, in <-chan []interface{}) bool {
	endpoint := s.ingestUrl.ResolveReference(&url.URL{Path: IngestEndpoint})

	var (
		hasErrors           = false
		unrecoverableErrMsg = fmt.Sprintf("ending current ingest run due to unrecoverable error while requesting %v", endpoint)
	)

	for data := range pipeline.OrDone(ctx.Done(), in) {
		var (
			body bytes.Buffer
			gw   = gzip.NewWriter(&body)
		)

		ingestData := models.IngestRequest{
			Meta: models.Meta{
				Type: IngestDataType,
			},
			Data: data,
		}

		err := json.NewEncoder(gw).Encode(ingestData)
		if err != nil {
			s.log.Error(err, unrecoverableErrMsg)
		}
		gw.Close()

		if req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &body); err != nil {
			s.log.Error(err, unrecoverableErrMsg)
			return true
		} else {
			req.Header.Set("User-Agent", constants.UserAgent())
			req.Header.Set("Accept", "application/json")
			req.Header.Set("Content-Encoding", "gzip")

			for currentAttempt := 0; currentAttempt <= s.maxRetries; currentAttempt++ {
				response, err := s.httpClient.Do(req)

				if err != nil {
					if rest.IsClosedConnectionErr(err) {
						s.log.Error(err, fmt.Sprintf("remote host force closed connection while requesting %s; attempt %d/%d; trying again", req.URL, currentAttempt+1, s.maxRetries))

						if currentAttempt == s.maxRetries {
							s.log.Error(ErrExceededRetryLimit, "")
							hasErrors = true
						} else {
							rest.VariableExponentialBackoff(s.retryDelay, currentAttempt)
						}

						continue
					} else if rest.IsGoAwayErr(err) {
						s.log.Error(err, fmt.Sprintf("received GOAWAY from load balancer while requesting %s; attempt %d/%d; trying again", req.URL, currentAttempt+1, s.maxRetries))

						if currentAttempt == s.maxRetries {
							s.log.Error(ErrExceededRetryLimit, "")
							hasErrors = true
						} else {
							rest.VariableExponentialBackoff(s.retryDelay, currentAttempt)
						}

						continue
					}

					s.log.Error(err, unrecoverableErrMsg)
					return true
				}

				if err := s.incrementRequest(); err != nil {
					return true
				}

				if response.StatusCode == http.StatusGatewayTimeout || response.StatusCode == http.StatusServiceUnavailable || response.StatusCode == http.StatusBadGateway {
					serverError := fmt.Errorf("received server error %d while requesting %v; attempt %d/%d; trying again", response.StatusCode, endpoint, currentAttempt+1, s.maxRetries)
					s.log.Error(serverError, "")

					if currentAttempt == s.maxRetries {
						s.log.Error(ErrExceededRetryLimit, "")
						hasErrors = true
					} else {
						rest.VariableExponentialBackoff(s.retryDelay, currentAttempt)
					}

					if err := response.Body.Close(); err != nil {
						s.log.Error(fmt.Errorf("failed to close ingest body: %w", err), unrecoverableErrMsg)
					}

					continue
				} else if response.StatusCode != http.StatusAccepted {
					if bodyBytes, err := io.ReadAll(response.Body); err != nil {
						s.log.Error(fmt.Errorf("received unexpected response code from %v: %s; failure reading response body", endpoint, response.Status), unrecoverableErrMsg)
					} else {
						s.log.Error(fmt.Errorf("received unexpected response code from %v: %s %s", req.URL, response.Status, bodyBytes), unrecoverableErrMsg)
					}

					if err := response.Body.Close(); err != nil {
						s.log.Error(fmt.Errorf("failed to close ingest body: %w", err), unrecoverableErrMsg)
					}

					return true
				}

				if err := response.Body.Close(); err != nil {
					s.log.Error(fmt.Errorf("failed to close ingest body: %w", err), unrecoverableErrMsg)
				}
				break
			}
		}
	}

	return hasErrors
}

// CloseIdleConnections closes all idle connections on the internal http.Client
func (s *ingestClient) CloseIdleConnections() {
	s.httpClient.CloseIdleConnections()
}

// resetConnection forces the http client to re-establish a connection with
// the ingest service.
func (s *ingestClient) resetConnection() error {
	client, err := rest.NewHTTPClient(s.proxy)
	if err != nil {
		return err
	}

	client.Transport = signingTransport{
		base:      client.Transport,
		tokenId:   s.tokenId,
		token:     s.token,
		signature: AuthSignature,
	}

	s.log.V(1).Info("max requests per connection limit reached, resetting connection with ingest service")

	s.httpClient.CloseIdleConnections()

	s.mu.Lock()
	s.currentRequestCount = 0
	s.httpClient = client
	s.mu.Unlock()

	return nil
}

func (s *ingestClient) incrementRequest() error {
	s.mu.Lock()
	s.currentRequestCount += 1
	needsReset := s.requestLimit > 0 && s.currentRequestCount >= s.requestLimit
	s.mu.Unlock()

	if needsReset {
		if err := s.resetConnection(); err != nil {
			s.log.Error(err, "error resetting ingest http client connection")
			return err
		}
	}

	return nil
}
