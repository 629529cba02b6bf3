package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/provos/terraform-secure/internal/plan"
)

func firewallUpdate() plan.ResourceChange {
	return plan.ResourceChange{
		Address: "google_compute_firewall.allow-http-https",
		Type:    "google_compute_firewall",
		Name:    "allow-http-https",
		Change: plan.Change{
			Actions: []string{"update"},
			Before:  map[string]any{"source_ranges": []any{"10.0.0.0/8"}},
			After:   map[string]any{"source_ranges": []any{"0.0.0.0/0"}},
		},
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("emits record with verbatim actions", func(t *testing.T) {
		t.Parallel()

		diff, ok := Normalize(firewallUpdate())
		require.True(t, ok)
		require.Equal(t, "google_compute_firewall", diff.Type)
		require.Equal(t, "allow-http-https", diff.Name)
		require.Equal(t, []string{"update"}, diff.Action)
		require.Len(t, diff.Changes, 1)
	})

	t.Run("omits resource without differences", func(t *testing.T) {
		t.Parallel()

		change := firewallUpdate()
		change.Change.After = change.Change.Before
		_, ok := Normalize(change)
		require.False(t, ok)
	})

	t.Run("omits declared no-op regardless of drift", func(t *testing.T) {
		t.Parallel()

		change := firewallUpdate()
		change.Change.Actions = []string{"no-op"}
		_, ok := Normalize(change)
		require.False(t, ok)
	})

	t.Run("substitutes defaults for missing fields", func(t *testing.T) {
		t.Parallel()

		diff, ok := Normalize(plan.ResourceChange{
			Change: plan.Change{
				After: map[string]any{"bucket": "audit-logs"},
			},
		})
		require.True(t, ok)
		require.Empty(t, diff.Type)
		require.Empty(t, diff.Name)
		require.NotNil(t, diff.Action)
		require.Empty(t, diff.Action)
	})
}

func TestFromPlan(t *testing.T) {
	t.Parallel()

	t.Run("empty plan yields empty change set", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, FromPlan(&plan.Document{}))
		require.Empty(t, FromPlan(nil))
	})

	t.Run("resources appear iff their deltas are non-empty", func(t *testing.T) {
		t.Parallel()

		doc := &plan.Document{ResourceChanges: []plan.ResourceChange{
			firewallUpdate(),
			{
				Address: "aws_s3_bucket.static",
				Type:    "aws_s3_bucket",
				Name:    "static",
				Change: plan.Change{
					Actions: []string{"no-op"},
					Before:  map[string]any{"acl": "private"},
					After:   map[string]any{"acl": "public-read"},
				},
			},
		}}

		changes := FromPlan(doc)
		require.Len(t, changes, 1)
		require.Contains(t, changes, "google_compute_firewall.allow-http-https")
	})

	t.Run("duplicate addresses resolve last write wins", func(t *testing.T) {
		t.Parallel()

		first := firewallUpdate()
		second := firewallUpdate()
		second.Name = "later"

		changes := FromPlan(&plan.Document{ResourceChanges: []plan.ResourceChange{first, second}})
		require.Len(t, changes, 1)
		require.Equal(t, "later", changes[first.Address].Name)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		t.Parallel()

		doc := &plan.Document{ResourceChanges: []plan.ResourceChange{
			firewallUpdate(),
			{
				Address: "aws_s3_bucket.logs",
				Type:    "aws_s3_bucket",
				Name:    "logs",
				Change: plan.Change{
					Actions: []string{"create"},
					After:   map[string]any{"bucket": "audit-logs", "tags": map[string]any{"env": "prod"}},
				},
			},
		}}

		first, err := json.Marshal(FromPlan(doc))
		require.NoError(t, err)
		second, err := json.Marshal(FromPlan(doc))
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("serializes to the documented shape", func(t *testing.T) {
		t.Parallel()

		encoded, err := json.Marshal(FromPlan(&plan.Document{ResourceChanges: []plan.ResourceChange{firewallUpdate()}}))
		require.NoError(t, err)
		require.JSONEq(t, `{
			"google_compute_firewall.allow-http-https": {
				"type": "google_compute_firewall",
				"name": "allow-http-https",
				"action": ["update"],
				"changes": {
					"source_ranges": {"before": ["10.0.0.0/8"], "after": ["0.0.0.0/0"]}
				}
			}
		}`, string(encoded))
	})
}
