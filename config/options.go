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

import "github.com/bloodhoundad/scopehound/constants"

var (
	ConfigFile = Config{
		Name:       "config",
		Shorthand:  "c",
		Usage:      "Location of the configuration file",
		Persistent: true,
		Default:    "",
	}

	LogFile = Config{
		Name:       "log-file",
		Usage:      "Output logs to this file in addition to stderr",
		Persistent: true,
		Default:    "",
	}

	JsonLogs = Config{
		Name:       "json",
		Usage:      "Output logs as json",
		Persistent: true,
		Default:    false,
	}

	Verbosity = Config{
		Name:       "verbosity",
		Shorthand:  "v",
		Usage:      "Set verbosity level; 0 is default, 1 and 2 add detail",
		Persistent: true,
		Default:    0,
	}

	OutputFile = Config{
		Name:       "output",
		Shorthand:  "o",
		Usage:      "Write report output to this file instead of stdout",
		Persistent: true,
		Default:    "",
	}

	Proxy = Config{
		Name:       "proxy",
		Usage:      "Sets a proxy url for all http requests, e.g. http://localhost:8080",
		Persistent: true,
		Default:    "",
	}
)

var (
	AzTenant = Config{
		Name:       "tenant",
		Shorthand:  "t",
		Usage:      "The directory tenant to authenticate to; id or verified domain name",
		Persistent: true,
		Default:    "",
	}

	AzAppId = Config{
		Name:       "app",
		Shorthand:  "a",
		Usage:      "The application id to authenticate as",
		Persistent: true,
		Default:    "",
	}

	AzSecret = Config{
		Name:       "secret",
		Shorthand:  "s",
		Usage:      "The application secret to authenticate with",
		Persistent: true,
		Default:    "",
	}

	AzCert = Config{
		Name:       "cert",
		Usage:      "The path or base64 encoded content of the client certificate",
		Persistent: true,
		Default:    "",
	}

	AzKey = Config{
		Name:       "key",
		Usage:      "The path or base64 encoded content of the client certificate key",
		Persistent: true,
		Default:    "",
	}

	AzKeyPass = Config{
		Name:       "keypass",
		Usage:      "The passphrase of the encrypted client certificate key",
		Persistent: true,
		Default:    "",
	}

	AzUsername = Config{
		Name:       "username",
		Shorthand:  "u",
		Usage:      "The user principal name to authenticate as",
		Persistent: true,
		Default:    "",
	}

	AzPassword = Config{
		Name:       "password",
		Shorthand:  "p",
		Usage:      "The password to authenticate with",
		Persistent: true,
		Default:    "",
	}

	AzRefreshToken = Config{
		Name:       "refresh-token",
		Shorthand:  "r",
		Usage:      "The refresh token to authenticate with",
		Persistent: true,
		Default:    "",
	}

	JWT = Config{
		Name:       "jwt",
		Shorthand:  "j",
		Usage:      "Use an acquired JWT to authenticate into the resource manager api",
		Persistent: true,
		Default:    "",
	}

	AzAuthUrl = Config{
		Name:       "auth",
		Usage:      "The identity authority base url",
		Persistent: true,
		Default:    constants.AuthorityUrl,
	}

	AzMgmtUrl = Config{
		Name:       "mgmt",
		Usage:      "The resource manager base url",
		Persistent: true,
		Default:    constants.ManagementUrl,
	}
)

var (
	AuditRoots = Config{
		Name:      "roots",
		Shorthand: "R",
		Usage:     "Management group names or scope paths to audit from; repeatable",
		Default:   []string{},
	}

	IncludeSubscriptions = Config{
		Name:    "subscriptions",
		Usage:   "Expand subscriptions into resource groups",
		Default: false,
	}

	IncludeResourceGroups = Config{
		Name:    "resource-groups",
		Usage:   "Expand resource groups into resources; implies --subscriptions",
		Default: false,
	}

	IncludeEligible = Config{
		Name:    "eligible",
		Usage:   "Also collect time-bound eligible grants",
		Default: false,
	}

	IncludePolicy = Config{
		Name:    "policy",
		Usage:   "Also collect policy assignments",
		Default: false,
	}

	Workers = Config{
		Name:      "workers",
		Shorthand: "w",
		Usage:     "Number of scopes collected concurrently",
		Default:   0,
	}

	IngestUrl = Config{
		Name:    "ingest-url",
		Usage:   "Base url of the ingest service, e.g. https://ingest.example.com",
		Default: "",
	}

	IngestTokenId = Config{
		Name:    "token-id",
		Usage:   "The id of the ingest api token",
		Default: "",
	}

	IngestToken = Config{
		Name:    "token",
		Usage:   "The ingest api token used to sign requests",
		Default: "",
	}

	BatchSize = Config{
		Name:      "batch-size",
		Shorthand: "b",
		Usage:     "Number of items per ingest batch",
		Default:   256,
	}

	StartInterval = Config{
		Name:      "interval",
		Shorthand: "i",
		Usage:     "Minutes between audit runs in service mode",
		Default:   60,
	}
)

// GlobalConfig is registered as persistent flags on the root command.
var GlobalConfig = []*Config{
	&ConfigFile,
	&LogFile,
	&JsonLogs,
	&Verbosity,
	&OutputFile,
	&Proxy,
}

// AzureConfig is registered on every command that talks to the resource
// manager.
var AzureConfig = []*Config{
	&AzTenant,
	&AzAppId,
	&AzSecret,
	&AzCert,
	&AzKey,
	&AzKeyPass,
	&AzUsername,
	&AzPassword,
	&AzRefreshToken,
	&JWT,
	&AzAuthUrl,
	&AzMgmtUrl,
}

// CollectionConfig shapes what a run collects and how.
var CollectionConfig = []*Config{
	&AuditRoots,
	&IncludeSubscriptions,
	&IncludeResourceGroups,
	&IncludeEligible,
	&IncludePolicy,
	&Workers,
}

// IngestConfig configures shipping reports to a remote ingest service.
var IngestConfig = []*Config{
	&IngestUrl,
	&IngestTokenId,
	&IngestToken,
	&BatchSize,
}

// ServiceConfig applies only to service mode.
var ServiceConfig = []*Config{
	&StartInterval,
}
