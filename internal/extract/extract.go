// Package extract reduces a terraform plan document to the minimal set of
// per-resource attribute deltas. It is pure and deterministic: no I/O, no
// shared state, the same document always yields the same ChangeSet.
package extract

import (
	"github.com/provos/terraform-secure/internal/plan"
)

// ResourceDiff is the normalized change record for a single resource.
// Changes is never empty on an emitted record.
type ResourceDiff struct {
	Type    string                    `json:"type"`
	Name    string                    `json:"name"`
	Action  []string                  `json:"action"`
	Changes map[string]AttributeDelta `json:"changes"`
}

// ChangeSet maps a resource address to its normalized diff. Resources whose
// snapshots do not actually differ are absent.
type ChangeSet map[string]ResourceDiff

// Normalize wraps one resource change and its computed deltas into a
// ResourceDiff. The second return value is false when the resource has no
// detected difference and must be omitted. Missing type, name, and action
// fields are substituted with empty defaults rather than rejected.
func Normalize(change plan.ResourceChange) (ResourceDiff, bool) {
	deltas := CompareAttributes(change.Change.Before, change.Change.After, change.Change.Actions)
	if len(deltas) == 0 {
		return ResourceDiff{}, false
	}

	actions := change.Change.Actions
	if actions == nil {
		actions = []string{}
	}

	return ResourceDiff{
		Type:    change.Type,
		Name:    change.Name,
		Action:  actions,
		Changes: deltas,
	}, true
}

// FromPlan assembles the ChangeSet for an entire plan document. A nil
// document or an empty resource_changes sequence yields an empty ChangeSet;
// "no changes" is a normal terminal state, not an error. Duplicate addresses
// resolve last-write-wins.
func FromPlan(doc *plan.Document) ChangeSet {
	changes := make(ChangeSet)
	if doc == nil {
		return changes
	}

	for _, change := range doc.ResourceChanges {
		diff, ok := Normalize(change)
		if !ok {
			continue
		}
		changes[change.Address] = diff
	}

	return changes
}
