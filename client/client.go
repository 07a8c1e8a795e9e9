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

package client

//go:generate go run go.uber.org/mock/mockgen -destination=./mocks/client.go -package=mocks . AzureClient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bloodhoundad/scopehound/client/config"
	"github.com/bloodhoundad/scopehound/client/query"
	"github.com/bloodhoundad/scopehound/client/rest"
	"github.com/bloodhoundad/scopehound/models/azure"
	"github.com/bloodhoundad/scopehound/panicrecovery"
	"github.com/bloodhoundad/scopehound/pipeline"
)

// AzureClient is the scope directory collaborator: it resolves a scope's
// immediate children and lists the assignments effective at a scope. All
// calls are idempotent reads and safe to retry.
type AzureClient interface {
	GetManagementGroup(ctx context.Context, groupId string) (*azure.ManagementGroup, error)
	ListManagementGroupChildren(ctx context.Context, groupId string) <-chan AzureResult[azure.DescendantInfo]
	ListResourceGroups(ctx context.Context, subscriptionId string) <-chan AzureResult[azure.ResourceGroup]
	ListResources(ctx context.Context, resourceGroupId string) <-chan AzureResult[azure.Resource]
	ListRoleAssignments(ctx context.Context, scope string) <-chan AzureResult[azure.RoleAssignment]
	ListRoleEligibilityScheduleInstances(ctx context.Context, scope string) <-chan AzureResult[azure.RoleEligibilityScheduleInstance]
	ListPolicyAssignments(ctx context.Context, scope string) <-chan AzureResult[azure.PolicyAssignment]
	TenantInfo() azure.Tenant
	CloseIdleConnections()
}

func NewClient(config config.Config) (AzureClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	} else if resourceManager, err := rest.NewRestClient(config.Management, config); err != nil {
		return nil, err
	} else {
		return &azureClient{
			resourceManager: resourceManager,
			tenant:          azure.Tenant{TenantId: config.Tenant},
		}, nil
	}
}

type azureClient struct {
	resourceManager rest.RestClient
	tenant          azure.Tenant
}

func (s *azureClient) TenantInfo() azure.Tenant {
	return s.tenant
}

func (s *azureClient) CloseIdleConnections() {
	s.resourceManager.CloseIdleConnections()
}

// AzureResult is the unit streamed by every list method; exactly one of
// Ok and Error is meaningful per item.
type AzureResult[T any] struct {
	Error error
	Ok    T
}

type azureList[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"nextLink,omitempty"`
}

// getAzureObjectList follows nextLink paging and streams every item of a
// resource manager list endpoint into out, closing it when done.
func getAzureObjectList[T any](client rest.RestClient, ctx context.Context, path string, params query.Params, out chan AzureResult[T]) {
	defer panicrecovery.PanicRecovery()
	defer close(out)

	var (
		errResult AzureResult[T]
		nextLink  string
	)

	for {
		var (
			list azureList[T]
			res  *http.Response
			err  error
		)

		if nextLink == "" {
			res, err = client.Get(ctx, path, params, nil)
		} else if nextUrl, parseErr := url.Parse(nextLink); parseErr != nil {
			errResult.Error = parseErr
			pipeline.Send(ctx.Done(), out, errResult)
			return
		} else if req, reqErr := rest.NewRequest(ctx, http.MethodGet, nextUrl, nil, nil, nil); reqErr != nil {
			errResult.Error = reqErr
			pipeline.Send(ctx.Done(), out, errResult)
			return
		} else {
			res, err = client.Send(req)
		}

		if err != nil {
			errResult.Error = err
			pipeline.Send(ctx.Done(), out, errResult)
			return
		}

		if err := rest.Decode(res.Body, &list); err != nil {
			errResult.Error = err
			pipeline.Send(ctx.Done(), out, errResult)
			return
		}

		for _, item := range list.Value {
			if ok := pipeline.Send(ctx.Done(), out, AzureResult[T]{Ok: item}); !ok {
				return
			}
		}

		if list.NextLink == "" {
			return
		}
		nextLink = list.NextLink
	}
}
