// SPDX-License-Identifier: MIT
package plan_test

import (
	"testing"

	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line builds A—B—C—D.
func line(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, g.AddUnit(core.Unit{ID: id, TotalPop: 1}))
	}
	for _, p := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}} {
		_, err := g.AddEdge(p[0], p[1])
		require.NoError(t, err)
	}

	return g
}

func TestFingerprint_LabelAgnostic(t *testing.T) {
	a := core.Assignment{"A": "1", "B": "1", "C": "2", "D": "2"}
	renamed := core.Assignment{"A": "9", "B": "9", "C": "x", "D": "x"}
	other := core.Assignment{"A": "1", "B": "2", "C": "2", "D": "2"}

	fa := plan.FingerprintAssignment(a)
	assert.Equal(t, fa, plan.FingerprintAssignment(renamed))
	assert.NotEqual(t, fa, plan.FingerprintAssignment(other))
	assert.Len(t, string(fa), 32)
	assert.Len(t, fa.Short(), 12)

	p := plan.FromAssignment(4, a)
	assert.Equal(t, fa, p.Fingerprint())
	assert.Equal(t, 4, p.Step)
	assert.Equal(t, []string{"1", "2"}, p.Labels())
	assert.Equal(t, a, p.Assignment())
}

// TestFingerprint_NoConcatenationCollision: {"AB"} | {"C"} must differ from {"A"} | {"BC"}.
func TestFingerprint_NoConcatenationCollision(t *testing.T) {
	x := plan.FingerprintOf(map[string][]string{"1": {"AB"}, "2": {"C"}})
	y := plan.FingerprintOf(map[string][]string{"1": {"A"}, "2": {"BC"}})
	assert.NotEqual(t, x, y)
}

func TestHistory(t *testing.T) {
	h := plan.NewHistory()
	f1 := plan.Fingerprint("aa")
	f2 := plan.Fingerprint("bb")

	assert.True(t, h.Add(f1, 0))
	assert.True(t, h.Add(f2, 1))
	assert.False(t, h.Add(f1, 2))
	assert.Equal(t, 2, h.Len())
	assert.True(t, h.Contains(f2))
	assert.False(t, h.Contains("cc"))

	step, ok := h.StepOf(f1)
	require.True(t, ok)
	assert.Zero(t, step)
	assert.Equal(t, []plan.Fingerprint{f1, f2}, h.Fingerprints())
}

func TestValidate(t *testing.T) {
	g := line(t)

	tests := []struct {
		name string
		a    core.Assignment
		want error
	}{
		{"valid", core.Assignment{"A": "1", "B": "1", "C": "2", "D": "2"}, nil},
		{"unlabeled", core.Assignment{"A": "1", "B": "1", "C": "2"}, plan.ErrUnlabeledUnit},
		{"unknown", core.Assignment{"A": "1", "B": "1", "C": "2", "D": "2", "E": "2"}, plan.ErrUnknownUnit},
		{"discontiguous", core.Assignment{"A": "1", "B": "2", "C": "2", "D": "1"}, plan.ErrDiscontiguous},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := plan.Validate(g, tc.a)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
