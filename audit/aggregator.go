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
	"sort"
	"strings"

	"github.com/bloodhoundad/scopehound/models"
)

// Aggregate merges the scope sets and records of all roots into one
// consistent report body. It runs strictly after every worker has joined,
// so it needs no locking.
func Aggregate(nodes []models.ScopeNode, records []models.AssignmentRecord, skipped []models.SkippedScope) models.Report {
	var (
		nodeSet    = make(map[string]int)
		finalNodes []models.ScopeNode
	)

	// scopes reachable from more than one root appear once; the first
	// root that reached them wins, the rest are folded into Roots
	for _, node := range nodes {
		if idx, ok := nodeSet[node.Id]; ok {
			finalNodes[idx].Roots = mergeRoots(finalNodes[idx].Roots, node.Roots)
			continue
		}
		nodeSet[node.Id] = len(finalNodes)
		finalNodes = append(finalNodes, node)
	}

	var (
		recordKeys   = make(map[string]struct{})
		finalRecords []models.AssignmentRecord
	)

	for _, record := range records {
		// a record must reference a scope present in the result set
		if _, ok := nodeSet[record.ScopeId]; !ok {
			continue
		}

		key := recordKey(record)
		if _, ok := recordKeys[key]; ok {
			continue
		}
		recordKeys[key] = struct{}{}
		finalRecords = append(finalRecords, record)
	}

	sortNodes(finalNodes)
	sortRecords(finalRecords, finalNodes, nodeSet)

	return models.Report{
		Nodes:     finalNodes,
		Records:   finalRecords,
		Skipped:   skipped,
		Summaries: summarize(finalRecords, finalNodes, nodeSet),
	}
}

// recordKey is the deduplication identity of a grant: the same assignment
// is visible at several scopes only through inheritance and must appear
// once per reporting scope, not once per traversal pass.
func recordKey(record models.AssignmentRecord) string {
	return strings.Join([]string{
		record.ScopeId,
		string(record.Category),
		record.Principal.Id,
		record.RoleOrPolicyRef.Id,
		record.ScopePath,
	}, "|")
}

func mergeRoots(existing, incoming []string) []string {
	for _, root := range incoming {
		found := false
		for _, have := range existing {
			if have == root {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, root)
		}
	}
	return existing
}

func sortNodes(nodes []models.ScopeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].RootId != nodes[j].RootId {
			return nodes[i].RootId < nodes[j].RootId
		}
		if nodes[i].Kind != nodes[j].Kind {
			return nodes[i].Kind < nodes[j].Kind
		}
		return nodes[i].Id < nodes[j].Id
	})
}

func sortRecords(records []models.AssignmentRecord, nodes []models.ScopeNode, nodeSet map[string]int) {
	// nodeSet indexes moved during the node sort; rebuild
	for idx, node := range nodes {
		nodeSet[node.Id] = idx
	}

	owner := func(record models.AssignmentRecord) models.ScopeNode {
		return nodes[nodeSet[record.ScopeId]]
	}

	sort.SliceStable(records, func(i, j int) bool {
		var (
			a, b         = records[i], records[j]
			aNode, bNode = owner(a), owner(b)
		)
		if aNode.RootId != bNode.RootId {
			return aNode.RootId < bNode.RootId
		}
		if aNode.Kind != bNode.Kind {
			return aNode.Kind < bNode.Kind
		}
		if a.ScopeId != b.ScopeId {
			return a.ScopeId < b.ScopeId
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.RoleOrPolicyRef.Id < b.RoleOrPolicyRef.Id
	})
}

// summarize computes grouped counts as derived views over the final record
// set; the record set itself is never touched.
func summarize(records []models.AssignmentRecord, nodes []models.ScopeNode, nodeSet map[string]int) map[string]map[string]int {
	summaries := map[string]map[string]int{
		"root":           {},
		"scopeKind":      {},
		"category":       {},
		"lifecycleState": {},
		"principalKind":  {},
	}

	for _, record := range records {
		node := nodes[nodeSet[record.ScopeId]]
		summaries["root"][node.RootId]++
		summaries["scopeKind"][string(node.Kind)]++
		summaries["category"][string(record.Category)]++
		summaries["lifecycleState"][record.LifecycleState]++
		summaries["principalKind"][string(record.Principal.Kind)]++
	}

	return summaries
}
