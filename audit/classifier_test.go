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
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/bloodhoundad/scopehound/enums"
	"github.com/bloodhoundad/scopehound/models"
)

var classifierNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestClassifier() *Classifier {
	return NewClassifier(clockwork.NewFakeClockAt(classifierNow))
}

func mgNode(name string) models.ScopeNode {
	scope := ManagementGroupScope(name)
	return models.ScopeNode{
		Id:     scope,
		Kind:   enums.KindManagementGroup,
		RootId: scope,
		Roots:  []string{scope},
	}
}

func subNode(id string) models.ScopeNode {
	return models.ScopeNode{
		Id:   "/subscriptions/" + id,
		Kind: enums.KindSubscription,
	}
}

func TestClassifier_Inheritance(t *testing.T) {
	classifier := newTestClassifier()

	t.Run("matching path is direct", func(t *testing.T) {
		scope := mgNode("it-div")
		raw := models.RawAssignment{
			Category:  enums.CategoryStandingGrant,
			ScopePath: scope.Id,
		}

		record := classifier.Classify(raw, scope)
		require.Equal(t, enums.InheritanceDirect, record.Inheritance)
	})

	t.Run("path comparison ignores case", func(t *testing.T) {
		scope := mgNode("it-div")
		raw := models.RawAssignment{
			Category:  enums.CategoryStandingGrant,
			ScopePath: "/providers/Microsoft.Management/managementGroups/IT-DIV",
		}

		record := classifier.Classify(raw, scope)
		require.Equal(t, enums.InheritanceDirect, record.Inheritance)
	})

	t.Run("ancestor path is inherited", func(t *testing.T) {
		scope := mgNode("it-div")
		raw := models.RawAssignment{
			Category:  enums.CategoryStandingGrant,
			ScopePath: ManagementGroupScope("contoso-root"),
		}

		record := classifier.Classify(raw, scope)
		require.Equal(t, enums.InheritanceInherited, record.Inheritance)
	})

	t.Run("management group policy is inherited at subscription scope", func(t *testing.T) {
		scope := subNode("00000000-0000-0000-0000-000000000001")
		raw := models.RawAssignment{
			Category:  enums.CategoryPolicyAssignment,
			ScopePath: ManagementGroupScope("contoso-root"),
		}

		record := classifier.Classify(raw, scope)
		require.Equal(t, enums.InheritanceInherited, record.Inheritance)
	})

	t.Run("management group policy at its own group is direct", func(t *testing.T) {
		scope := mgNode("contoso-root")
		raw := models.RawAssignment{
			Category:  enums.CategoryPolicyAssignment,
			ScopePath: scope.Id,
		}

		record := classifier.Classify(raw, scope)
		require.Equal(t, enums.InheritanceDirect, record.Inheritance)
	})
}

func TestClassifier_PrincipalKind(t *testing.T) {
	classifier := newTestClassifier()
	scope := mgNode("root")

	cases := []struct {
		providerType string
		expected     enums.PrincipalKind
	}{
		{"User", enums.PrincipalUser},
		{"Group", enums.PrincipalGroup},
		{"ServicePrincipal", enums.PrincipalServicePrincipal},
		{"MSI", enums.PrincipalManagedIdentity},
		{"SystemAssigned", enums.PrincipalManagedIdentity},
		{"UserAssigned", enums.PrincipalManagedIdentity},
		{"", enums.PrincipalUnknown},

		// unknown provider kinds pass through unchanged
		{"Device", enums.PrincipalKind("Device")},
	}

	for _, tc := range cases {
		raw := models.RawAssignment{ScopePath: scope.Id, PrincipalType: tc.providerType}
		record := classifier.Classify(raw, scope)
		require.Equal(t, tc.expected, record.Principal.Kind, "providerType=%q", tc.providerType)
	}
}

func TestClassifier_LifecycleState(t *testing.T) {
	classifier := newTestClassifier()
	scope := mgNode("root")

	t.Run("no temporal fields means active", func(t *testing.T) {
		record := classifier.Classify(models.RawAssignment{ScopePath: scope.Id}, scope)
		require.Equal(t, string(enums.StateActive), record.LifecycleState)
		require.Nil(t, record.Temporal)
	})

	t.Run("end time in the past wins over future start", func(t *testing.T) {
		raw := models.RawAssignment{
			ScopePath: scope.Id,
			StartTime: classifierNow.Add(24 * time.Hour).Format(time.RFC3339),
			EndTime:   classifierNow.Add(-24 * time.Hour).Format(time.RFC3339),
		}
		record := classifier.Classify(raw, scope)
		require.Equal(t, string(enums.StateExpired), record.LifecycleState)
	})

	t.Run("future start is not yet active", func(t *testing.T) {
		raw := models.RawAssignment{
			ScopePath: scope.Id,
			StartTime: classifierNow.Add(time.Hour).Format(time.RFC3339),
		}
		record := classifier.Classify(raw, scope)
		require.Equal(t, string(enums.StateNotYetActive), record.LifecycleState)
	})

	t.Run("window containing now is active", func(t *testing.T) {
		raw := models.RawAssignment{
			ScopePath: scope.Id,
			StartTime: classifierNow.Add(-time.Hour).Format(time.RFC3339),
			EndTime:   classifierNow.Add(time.Hour).Format(time.RFC3339),
		}
		record := classifier.Classify(raw, scope)
		require.Equal(t, string(enums.StateActive), record.LifecycleState)
	})

	t.Run("unparseable bound degrades to time-bound", func(t *testing.T) {
		raw := models.RawAssignment{
			ScopePath: scope.Id,
			EndTime:   "not-a-timestamp",
		}
		record := classifier.Classify(raw, scope)
		require.Equal(t, string(enums.StateTimeBound), record.LifecycleState)
	})

	t.Run("condition qualifies the state instead of replacing it", func(t *testing.T) {
		raw := models.RawAssignment{
			ScopePath: scope.Id,
			EndTime:   classifierNow.Add(-24 * time.Hour).Format(time.RFC3339),
			Condition: "@Resource[Microsoft.Storage/storageAccounts:name] StringEquals 'prod'",
		}
		record := classifier.Classify(raw, scope)
		require.Equal(t, "Expired (Conditional)", record.LifecycleState)
		require.True(t, record.Conditional)
	})

	t.Run("malformed created-on does not mark the grant time-bound", func(t *testing.T) {
		raw := models.RawAssignment{
			ScopePath: scope.Id,
			CreatedOn: "garbage",
		}
		record := classifier.Classify(raw, scope)
		require.Equal(t, string(enums.StateActive), record.LifecycleState)
	})
}

func TestClassifier_Idempotent(t *testing.T) {
	classifier := newTestClassifier()
	scope := mgNode("it-div")
	raw := models.RawAssignment{
		Id:            "/ra/1",
		Category:      enums.CategoryEligibleGrant,
		ScopePath:     ManagementGroupScope("contoso-root"),
		PrincipalId:   "p-1",
		PrincipalType: "Group",
		RefId:         "/roleDefinitions/owner",
		StartTime:     classifierNow.Add(-time.Hour).Format(time.RFC3339),
		EndTime:       classifierNow.Add(time.Hour).Format(time.RFC3339),
		Condition:     "cond",
	}

	first := classifier.Classify(raw, scope)
	second := classifier.Classify(raw, scope)
	require.Equal(t, first, second)
}
