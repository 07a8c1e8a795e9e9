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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/bloodhoundad/scopehound/constants"
)

func NewRequest(ctx context.Context, method string, endpoint *url.URL, body interface{}, params map[string]string, headers map[string]string) (*http.Request, error) {
	if len(params) > 0 {
		values := endpoint.Query()
		for key, value := range params {
			values.Set(key, value)
		}
		endpoint.RawQuery = values.Encode()
	}

	var buffer *bytes.Buffer
	if body != nil {
		buffer = &bytes.Buffer{}
		if err := json.NewEncoder(buffer).Encode(body); err != nil {
			return nil, err
		}
	}

	var (
		req *http.Request
		err error
	)
	if buffer != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint.String(), buffer)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", constants.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

func NewHTTPClient(proxyUrl string) (*http.Client, error) {
	if dialer, err := GetDialer(proxyUrl); err != nil {
		return nil, err
	} else {
		transport := &http.Transport{
			Dial:                dialer.Dial,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		}
		return &http.Client{Transport: transport}, nil
	}
}
