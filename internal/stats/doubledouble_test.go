package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hooplytics/fantasy-nba/internal/types"
)

func testModel() *DoubleDoubleModel {
	return NewDoubleDoubleModel(map[types.Category]float64{
		types.CatPoints:   0.35,
		types.CatRebounds: 0.40,
		types.CatAssists:  0.45,
		types.CatBlocks:   0.60,
		types.CatSteals:   0.60,
	}, 0.40)
}

func TestExpectBounds(t *testing.T) {
	m := testModel()

	lines := []types.StatLine{
		{types.CatPoints: 28, types.CatRebounds: 12, types.CatAssists: 9},
		{types.CatPoints: 12, types.CatRebounds: 11, types.CatAssists: 8},
		{types.CatPoints: 5, types.CatRebounds: 3},
		{types.CatPoints: 35, types.CatRebounds: 14, types.CatAssists: 11, types.CatSteals: 2, types.CatBlocks: 2},
	}
	for _, line := range lines {
		p := m.Expect(line)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestExpectNearThreshold(t *testing.T) {
	m := testModel()

	// Two averages just above 10 and one just below: a real but uncertain
	// double-double candidate should land strictly inside (0, 1).
	p := m.Expect(types.StatLine{
		types.CatPoints:   12,
		types.CatRebounds: 11,
		types.CatAssists:  8,
	})
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)
}

func TestExpectMonotonicPerCategory(t *testing.T) {
	m := testModel()

	// Raising a single category's average while holding the others fixed must
	// not lower the estimate.
	base := types.StatLine{
		types.CatPoints:   14,
		types.CatRebounds: 9,
		types.CatAssists:  6,
	}
	for _, cat := range DoubleDoubleCategories {
		prev := m.Expect(base)
		for _, bump := range []float64{2, 5, 10} {
			line := base.Clone()
			line[cat] = base[cat] + bump
			curr := m.Expect(line)
			assert.GreaterOrEqual(t, curr, prev, "category %s bump %.0f", cat, bump)
			prev = curr
		}
	}
}

func TestExpectZeroAndAbsentAverages(t *testing.T) {
	m := testModel()

	// A zero average must behave exactly like an absent one.
	withZeros := m.Expect(types.StatLine{
		types.CatPoints:   15,
		types.CatRebounds: 11,
		types.CatAssists:  0,
		types.CatSteals:   0,
		types.CatBlocks:   0,
	})
	withAbsent := m.Expect(types.StatLine{
		types.CatPoints:   15,
		types.CatRebounds: 11,
	})
	assert.InDelta(t, withAbsent, withZeros, 1e-12)

	// Fewer than two contributing categories means no double-double is
	// possible from the remaining ones alone being below threshold.
	assert.Equal(t, 0.0, m.Expect(types.StatLine{}))
}

func TestInjectLeavesSourceUntouched(t *testing.T) {
	m := testModel()

	line := types.StatLine{types.CatPoints: 25, types.CatRebounds: 12}
	out := m.Inject(line)

	_, hasDD := line.Get(types.CatDoubleDoubles)
	assert.False(t, hasDD)

	dd, ok := out.Get(types.CatDoubleDoubles)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, dd, 0.0)
	assert.LessOrEqual(t, dd, 1.0)
	assert.Equal(t, 25.0, out[types.CatPoints])
}
