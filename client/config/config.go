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

package config

import (
	"fmt"
	"strings"
)

// Config holds everything the directory client needs to authenticate and
// talk to the resource manager API.
type Config struct {
	ApplicationId string // The Application Id that the agent should use for authentication
	Authority     string // The authority login url, e.g. https://login.microsoftonline.com
	ClientSecret  string // The client secret for client credential authentication
	ClientCert    string // The certificate for certificate based authentication
	ClientKey     string // The private key matching ClientCert
	ClientKeyPass string // The passphrase protecting ClientKey, if any
	JWT           string // A previously acquired access token to use directly
	Management    string // The resource manager url, e.g. https://management.azure.com
	Password      string // The password for username/password authentication
	ProxyUrl      string // The forward proxy to route requests through
	RefreshToken  string // A refresh token to exchange for an access token
	Tenant        string // The directory tenant, as an id or verified domain
	Username      string // The username for username/password authentication
}

func (s Config) AuthorityUrl() string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.Authority, "/"), s.Tenant)
}

func (s Config) Validate() error {
	if s.Tenant == "" {
		return fmt.Errorf("tenant must be provided")
	} else if s.Authority == "" {
		return fmt.Errorf("authority url must be provided")
	} else if s.Management == "" {
		return fmt.Errorf("management url must be provided")
	} else {
		return nil
	}
}
