package extract

import (
	"slices"
)

const actionNoop = "no-op"

// AttributeDelta records the before and after value of a single changed
// attribute. A side where the attribute is absent is reported as null.
type AttributeDelta struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// CompareAttributes computes the minimal attribute-level differences between
// two snapshots. A nil snapshot is treated as an empty one, so creations and
// destructions surface every attribute of the populated side.
//
// When the action list contains "no-op" the comparison is skipped entirely
// and nil is returned, even if the snapshots appear to differ. The action
// list comes straight from the planning tool and is treated as authoritative
// over raw field comparison.
func CompareAttributes(before, after map[string]any, actions []string) map[string]AttributeDelta {
	if slices.Contains(actions, actionNoop) {
		return nil
	}
	if before == nil && after == nil {
		return nil
	}

	deltas := make(map[string]AttributeDelta)
	for key := range before {
		recordDelta(deltas, key, before, after)
	}
	for key := range after {
		if _, seen := before[key]; seen {
			continue
		}
		recordDelta(deltas, key, before, after)
	}

	if len(deltas) == 0 {
		return nil
	}
	return deltas
}

func recordDelta(deltas map[string]AttributeDelta, key string, before, after map[string]any) {
	beforeValue, ok := before[key]
	if !ok {
		beforeValue = nil
	}
	afterValue, ok := after[key]
	if !ok {
		afterValue = nil
	}

	if FromAny(beforeValue).Equal(FromAny(afterValue)) {
		return
	}
	deltas[key] = AttributeDelta{Before: beforeValue, After: afterValue}
}
