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

package audit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-logr/logr"

	"github.com/bloodhoundad/scopehound/client"
	"github.com/bloodhoundad/scopehound/enums"
	"github.com/bloodhoundad/scopehound/models"
	"github.com/bloodhoundad/scopehound/models/azure"
)

type WalkOptions struct {
	// IncludeSubscriptions expands subscription nodes into their resource
	// groups instead of treating them as leaves.
	IncludeSubscriptions bool

	// IncludeResourceGroups expands resource group nodes into their
	// resources; only meaningful when IncludeSubscriptions is set.
	IncludeResourceGroups bool
}

// Walker expands one or more root management groups into the flat set of
// descendant scopes. One Walker instance owns one run; the visited set is
// shared across every root of the run so overlapping hierarchies are
// expanded once and a stale directory response that lists a node as its own
// descendant cannot loop the walk.
type Walker struct {
	azClient client.AzureClient
	log      logr.Logger
	opts     WalkOptions

	mu      sync.Mutex
	visited map[string]*models.ScopeNode
	order   []string
	skipped []models.SkippedScope
}

func NewWalker(azClient client.AzureClient, log logr.Logger, opts WalkOptions) *Walker {
	return &Walker{
		azClient: azClient,
		log:      log,
		opts:     opts,
		visited:  make(map[string]*models.ScopeNode),
	}
}

// ManagementGroupScope returns the canonical ARM scope path for a
// management group name.
func ManagementGroupScope(name string) string {
	if strings.HasPrefix(name, "/") {
		return name
	}
	return fmt.Sprintf("/providers/Microsoft.Management/managementGroups/%s", name)
}

// Walk expands every root depth-first and returns the deduplicated scope
// set along with the branches that had to be skipped. An unreachable root
// or branch never aborts the walk; its absence is recorded instead.
func (s *Walker) Walk(ctx context.Context, roots []string) ([]models.ScopeNode, []models.SkippedScope) {
	for _, root := range roots {
		rootScope := ManagementGroupScope(root)

		if ctx.Err() != nil {
			s.skip(rootScope, "walk", ReasonCancelled)
			continue
		}

		group, err := s.azClient.GetManagementGroup(ctx, root)
		if err != nil {
			s.log.Error(err, "unable to resolve root management group", "root", root)
			s.skip(rootScope, "walk", skipReason(err))
			continue
		}

		node := models.ScopeNode{
			Id:          rootScope,
			DisplayName: group.Properties.DisplayName,
			Kind:        enums.KindManagementGroup,
			RootId:      rootScope,
			Roots:       []string{rootScope},
		}
		s.walk(ctx, node, rootScope)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := make([]models.ScopeNode, 0, len(s.order))
	for _, id := range s.order {
		nodes = append(nodes, *s.visited[id])
	}
	return nodes, s.skipped
}

func (s *Walker) walk(ctx context.Context, node models.ScopeNode, rootId string) {
	if !s.markVisited(node, rootId) {
		// already expanded via another path; only the root lineage was new
		return
	}

	if !s.expandable(node.Kind) {
		return
	}

	s.log.V(2).Info("expanding scope", "scope", node.Id, "kind", node.Kind)
	for _, child := range s.children(ctx, node) {
		s.walk(ctx, child, rootId)
	}
}

// markVisited records the node, or just its additional root lineage when a
// prior branch already reached it. It reports whether the node was new.
func (s *Walker) markVisited(node models.ScopeNode, rootId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.visited[node.Id]; ok {
		for _, r := range existing.Roots {
			if r == rootId {
				return false
			}
		}
		existing.Roots = append(existing.Roots, rootId)
		return false
	}

	copied := node
	s.visited[node.Id] = &copied
	s.order = append(s.order, node.Id)
	return true
}

func (s *Walker) expandable(kind enums.ScopeKind) bool {
	switch kind {
	case enums.KindManagementGroup:
		return true
	case enums.KindSubscription:
		return s.opts.IncludeSubscriptions
	case enums.KindResourceGroup:
		return s.opts.IncludeResourceGroups
	default:
		return false
	}
}

// children fetches the immediate children of a node in the order the
// directory returns them. A lookup failure skips the branch and returns
// whatever was received before the failure.
func (s *Walker) children(ctx context.Context, node models.ScopeNode) []models.ScopeNode {
	var children []models.ScopeNode

	switch node.Kind {
	case enums.KindManagementGroup:
		groupId := strings.TrimPrefix(node.Id, "/providers/Microsoft.Management/managementGroups/")
		for item := range s.azClient.ListManagementGroupChildren(ctx, groupId) {
			if item.Error != nil {
				s.branchFailure(node, item.Error)
				break
			}
			if child, ok := s.descendantNode(item.Ok, node); ok {
				children = append(children, child)
			}
		}
	case enums.KindSubscription:
		subscriptionId := strings.TrimPrefix(node.Id, "/subscriptions/")
		for item := range s.azClient.ListResourceGroups(ctx, subscriptionId) {
			if item.Error != nil {
				s.branchFailure(node, item.Error)
				break
			}
			children = append(children, models.ScopeNode{
				Id:          item.Ok.Id,
				DisplayName: item.Ok.Name,
				Kind:        enums.KindResourceGroup,
				ParentId:    node.Id,
				RootId:      node.RootId,
				Roots:       []string{node.RootId},
			})
		}
	case enums.KindResourceGroup:
		for item := range s.azClient.ListResources(ctx, node.Id) {
			if item.Error != nil {
				s.branchFailure(node, item.Error)
				break
			}
			children = append(children, models.ScopeNode{
				Id:          item.Ok.Id,
				DisplayName: item.Ok.Name,
				Kind:        enums.KindResource,
				ParentId:    node.Id,
				RootId:      node.RootId,
				Roots:       []string{node.RootId},
			})
		}
	}

	return children
}

// descendantNode maps a management group child onto a ScopeNode. Children
// of types the audit does not know are ignored rather than failing the
// branch, so new provider types cannot break a walk.
func (s *Walker) descendantNode(info azure.DescendantInfo, parent models.ScopeNode) (models.ScopeNode, bool) {
	var (
		kind enums.ScopeKind
		id   = info.Id
	)

	switch info.Type {
	case enums.TypeManagementGroup:
		kind = enums.KindManagementGroup
	case enums.TypeSubscription:
		kind = enums.KindSubscription
		// the children listing reports subscriptions under their parent
		// group path; assignments reference them by their own scope path
		if info.Name != "" {
			id = fmt.Sprintf("/subscriptions/%s", info.Name)
		}
	default:
		s.log.V(1).Info("ignoring child of unrecognized type", "type", info.Type, "id", info.Id)
		return models.ScopeNode{}, false
	}

	return models.ScopeNode{
		Id:          id,
		DisplayName: info.Properties.DisplayName,
		Kind:        kind,
		ParentId:    parent.Id,
		RootId:      parent.RootId,
		Roots:       []string{parent.RootId},
	}, true
}

func (s *Walker) branchFailure(node models.ScopeNode, err error) {
	s.log.Error(err, "unable to expand scope; skipping branch", "scope", node.Id)
	s.skip(node.Id, "walk", skipReason(err))
}

func (s *Walker) skip(scopeId, stage, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipped = append(s.skipped, models.SkippedScope{ScopeId: scopeId, Stage: stage, Reason: reason})
}
