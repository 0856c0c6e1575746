package extension

import (
	"sort"
	"time"
)

// Plan is the set of lifecycle actions one detection cycle will apply.
// Each id belongs to at most one of the action sets.
type Plan struct {
	// ToLoad are ids present at the source but not loaded.
	ToLoad []string
	// ToUnload are loaded ids whose source disappeared.
	ToUnload []string
	// ToReload are loaded ids whose source was modified after the
	// previous cycle's baseline.
	ToReload []string
	// ToPrune are tracked but not loaded ids whose source disappeared.
	// They are dropped from the registry so a permanently missing file is
	// not retried forever.
	ToPrune []string
}

// Empty reports whether the plan contains no actions.
func (p Plan) Empty() bool {
	return len(p.ToLoad) == 0 && len(p.ToUnload) == 0 && len(p.ToReload) == 0 && len(p.ToPrune) == 0
}

// BuildPlan diffs the scan snapshot against the registry's loaded and known
// sets. Pure function; ordering within each set is sorted for deterministic
// logs only, correctness does not depend on it.
func BuildPlan(snap Snapshot, loaded map[string]struct{}, known []string, baseline time.Time) Plan {
	var plan Plan

	for id, modTime := range snap {
		if _, isLoaded := loaded[id]; !isLoaded {
			plan.ToLoad = append(plan.ToLoad, id)
		} else if modTime.After(baseline) {
			plan.ToReload = append(plan.ToReload, id)
		}
	}

	for id := range loaded {
		if _, present := snap[id]; !present {
			plan.ToUnload = append(plan.ToUnload, id)
		}
	}

	for _, id := range known {
		if _, present := snap[id]; present {
			continue
		}
		if _, isLoaded := loaded[id]; isLoaded {
			continue
		}
		plan.ToPrune = append(plan.ToPrune, id)
	}

	sort.Strings(plan.ToLoad)
	sort.Strings(plan.ToUnload)
	sort.Strings(plan.ToReload)
	sort.Strings(plan.ToPrune)
	return plan
}
