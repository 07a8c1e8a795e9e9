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
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// signingTransport signs every outbound request with the chained HMAC
// scheme the ingest service verifies: token over method and path, the
// result over the request hour, that result over the body.
type signingTransport struct {
	base      http.RoundTripper
	tokenId   string
	token     string
	signature string
}

func (s signingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// the http client may replay the request through RoundTrip; rewind
	// the body back to a working state first
	if rbr, ok := req.Body.(*rewindableByteReader); ok {
		if _, err := rbr.Rewind(); err != nil {
			return nil, err
		}
	}

	if req.Header.Get("Signature") == "" {

		digester := hmac.New(sha256.New, []byte(s.token))

		if _, err := digester.Write([]byte(req.Method + req.URL.Path)); err != nil {
			return nil, err
		}

		// hash the substring of the current datetime excluding minutes,
		// seconds, microseconds and timezone
		datetime := time.Now().Format(time.RFC3339)
		digester = hmac.New(sha256.New, digester.Sum(nil))
		if _, err := digester.Write([]byte(datetime[:13])); err != nil {
			return nil, err
		}

		digester = hmac.New(sha256.New, digester.Sum(nil))
		if req.Body != nil {
			var (
				body    = &bytes.Buffer{}
				hashBuf = make([]byte, 64*1024)
				tee     = io.TeeReader(req.Body, body)
			)

			defer req.Body.Close()
			defer discard(tee)
			defer discard(body)

			for {
				numRead, err := tee.Read(hashBuf)
				if numRead > 0 {
					if _, err := digester.Write(hashBuf[:numRead]); err != nil {
						return nil, err
					}
				}

				if err != nil {
					if err != io.EOF {
						return nil, err
					}
					break
				}
			}

			req.Body = &rewindableByteReader{data: bytes.NewReader(body.Bytes())}
		}

		signature := digester.Sum(nil)

		req.Header.Set("Authorization", fmt.Sprintf("%s %s", s.signature, s.tokenId))
		req.Header.Set("RequestDate", datetime)
		req.Header.Set("Signature", base64.StdEncoding.EncodeToString(signature))
	}
	return s.base.RoundTrip(req)
}

func discard(reader io.Reader) {
	io.Copy(io.Discard, reader)
}
