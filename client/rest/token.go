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
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

type Token struct {
	accessToken string
	expires     time.Time
}

func (s Token) String() string {
	return s.accessToken
}

// IsExpired reports expiry a minute early so an almost-expired token is
// never attached to a request that may sit in a retry loop.
func (s Token) IsExpired() bool {
	return s.accessToken == "" || time.Now().After(s.expires.Add(-time.Minute))
}

type tokenResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresIn   IntOrStringInt `json:"expires_in"`
	TokenType   string         `json:"token_type"`
}

func (s *restClient) addAuthenticationToRequest(req *http.Request) error {
	if s.config.JWT != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.config.JWT))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token.IsExpired() {
		if token, err := s.authenticate(req.Context()); err != nil {
			return err
		} else {
			s.token = token
		}
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.token.String()))
	return nil
}

func (s *restClient) authenticate(ctx context.Context) (Token, error) {
	var (
		endpoint     = s.auth.ResolveReference(&url.URL{Path: path.Join(s.auth.Path, "oauth2/v2.0/token")})
		defaultScope = strings.TrimSuffix(s.api.String(), "/") + "/.default"
		body         = url.Values{}
	)

	body.Set("client_id", s.config.ApplicationId)
	body.Set("scope", defaultScope)

	if s.config.RefreshToken != "" {
		body.Set("grant_type", "refresh_token")
		body.Set("refresh_token", s.config.RefreshToken)
	} else if s.config.ClientSecret != "" {
		body.Set("grant_type", "client_credentials")
		body.Set("client_secret", s.config.ClientSecret)
	} else if s.config.ClientCert != "" && s.config.ClientKey != "" {
		if assertion, err := NewClientAssertion(endpoint.String(), s.config.ApplicationId, s.config.ClientCert, s.config.ClientKey, s.config.ClientKeyPass); err != nil {
			return Token{}, err
		} else {
			body.Set("grant_type", "client_credentials")
			body.Set("client_assertion_type", "urn:ietf:params:oauth:client-assertion-type:jwt-bearer")
			body.Set("client_assertion", assertion)
		}
	} else if s.config.Username != "" && s.config.Password != "" {
		body.Set("grant_type", "password")
		body.Set("username", s.config.Username)
		body.Set("password", s.config.Password)
	} else {
		return Token{}, fmt.Errorf("unable to authenticate: no credentials provided")
	}

	if req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(body.Encode())); err != nil {
		return Token{}, err
	} else {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("User-Agent", "scopehound")

		if res, err := s.send(req); err != nil {
			return Token{}, fmt.Errorf("unable to authenticate against %s: %w", endpoint, err)
		} else {
			var parsed tokenResponse
			if err := Decode(res.Body, &parsed); err != nil {
				return Token{}, err
			}
			return Token{
				accessToken: parsed.AccessToken,
				expires:     time.Now().Add(time.Duration(parsed.ExpiresIn) * time.Second),
			}, nil
		}
	}
}
