package extension

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildPlan(t *testing.T) {
	baseline := time.Now()
	older := baseline.Add(-time.Minute)
	newer := baseline.Add(time.Minute)

	snap := Snapshot{
		"new":      older, // present, not loaded
		"stable":   older, // present, loaded, unmodified
		"modified": newer, // present, loaded, modified after baseline
	}
	loaded := map[string]struct{}{
		"stable":   {},
		"modified": {},
		"gone":     {}, // loaded, source removed
	}
	known := []string{"stable", "modified", "gone", "broken"} // broken: Failed, source removed

	plan := BuildPlan(snap, loaded, known, baseline)

	assert.Equal(t, []string{"new"}, plan.ToLoad)
	assert.Equal(t, []string{"gone"}, plan.ToUnload)
	assert.Equal(t, []string{"modified"}, plan.ToReload)
	assert.Equal(t, []string{"broken"}, plan.ToPrune)
	assert.False(t, plan.Empty())
}

func TestBuildPlan_EachIDInExactlyOneSet(t *testing.T) {
	baseline := time.Now()
	snap := Snapshot{"a": baseline.Add(time.Second), "b": baseline.Add(-time.Second)}
	loaded := map[string]struct{}{"a": {}, "c": {}}

	plan := BuildPlan(snap, loaded, []string{"a", "c"}, baseline)

	seen := map[string]int{}
	for _, set := range [][]string{plan.ToLoad, plan.ToUnload, plan.ToReload, plan.ToPrune} {
		for _, id := range set {
			seen[id]++
		}
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "id %s appears in %d sets", id, n)
	}
}

func TestBuildPlan_Empty(t *testing.T) {
	plan := BuildPlan(Snapshot{}, nil, nil, time.Now())
	assert.True(t, plan.Empty())
}
