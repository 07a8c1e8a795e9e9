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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bloodhoundad/scopehound/enums"
	"github.com/bloodhoundad/scopehound/models"
)

func record(scopeId, principalId, refId string) models.AssignmentRecord {
	return models.AssignmentRecord{
		ScopeId:         scopeId,
		ScopePath:       scopeId,
		Category:        enums.CategoryStandingGrant,
		Principal:       models.Principal{Id: principalId, Kind: enums.PrincipalUser},
		RoleOrPolicyRef: models.RoleRef{Id: refId},
		Inheritance:     enums.InheritanceDirect,
		LifecycleState:  string(enums.StateActive),
	}
}

func TestAggregate_DeduplicatesNodesAndRecords(t *testing.T) {
	root := mgNode("root")
	dupe := root
	dupe.Roots = []string{ManagementGroupScope("other")}

	records := []models.AssignmentRecord{
		record(root.Id, "p-1", "r-1"),
		record(root.Id, "p-1", "r-1"),
		record(root.Id, "p-2", "r-1"),
	}

	report := Aggregate([]models.ScopeNode{root, dupe}, records, nil)

	require.Len(t, report.Nodes, 1)
	require.ElementsMatch(t, []string{root.Id, ManagementGroupScope("other")}, report.Nodes[0].Roots)
	require.Len(t, report.Records, 2)
}

func TestAggregate_DropsDanglingRecords(t *testing.T) {
	root := mgNode("root")

	records := []models.AssignmentRecord{
		record(root.Id, "p-1", "r-1"),
		record("/subscriptions/not-walked", "p-1", "r-1"),
	}

	report := Aggregate([]models.ScopeNode{root}, records, nil)
	require.Len(t, report.Records, 1)
	require.Equal(t, root.Id, report.Records[0].ScopeId)
}

func TestAggregate_DeterministicOrder(t *testing.T) {
	var (
		rootA = mgNode("alpha")
		rootB = mgNode("beta")
		sub   = models.ScopeNode{
			Id:     "/subscriptions/s1",
			Kind:   enums.KindSubscription,
			RootId: rootA.RootId,
			Roots:  []string{rootA.RootId},
		}
	)

	records := []models.AssignmentRecord{
		record(sub.Id, "p-3", "r-9"),
		record(rootB.Id, "p-2", "r-2"),
		record(rootA.Id, "p-1", "r-1"),
		record(rootA.Id, "p-1", "r-0"),
	}

	first := Aggregate([]models.ScopeNode{sub, rootB, rootA}, records, nil)
	second := Aggregate([]models.ScopeNode{rootA, rootB, sub}, append([]models.AssignmentRecord{}, records[3], records[2], records[1], records[0]), nil)

	require.Equal(t, first.Nodes, second.Nodes)
	require.Equal(t, first.Records, second.Records)

	// records group by root, then kind, then scope
	require.Equal(t, rootA.Id, first.Records[0].ScopeId)
	require.Equal(t, "r-0", first.Records[0].RoleOrPolicyRef.Id)
	require.Equal(t, sub.Id, first.Records[2].ScopeId)
	require.Equal(t, rootB.Id, first.Records[3].ScopeId)
}

func TestAggregate_Summaries(t *testing.T) {
	root := mgNode("root")

	expired := record(root.Id, "p-2", "r-2")
	expired.LifecycleState = string(enums.StateExpired)
	expired.Principal.Kind = enums.PrincipalGroup

	report := Aggregate([]models.ScopeNode{root}, []models.AssignmentRecord{
		record(root.Id, "p-1", "r-1"),
		expired,
	}, nil)

	require.Equal(t, 2, report.Summaries["root"][root.RootId])
	require.Equal(t, 2, report.Summaries["scopeKind"][string(enums.KindManagementGroup)])
	require.Equal(t, 2, report.Summaries["category"][string(enums.CategoryStandingGrant)])
	require.Equal(t, 1, report.Summaries["lifecycleState"][string(enums.StateActive)])
	require.Equal(t, 1, report.Summaries["lifecycleState"][string(enums.StateExpired)])
	require.Equal(t, 1, report.Summaries["principalKind"][string(enums.PrincipalGroup)])
}

func TestAggregate_PreservesSkipped(t *testing.T) {
	root := mgNode("root")
	skipped := []models.SkippedScope{{ScopeId: "/subscriptions/s1", Stage: "walk", Reason: ReasonAccessDenied}}

	report := Aggregate([]models.ScopeNode{root}, nil, skipped)
	require.Equal(t, skipped, report.Skipped)
}
