package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runTryScenario performs the reference sequence:
// a,b,c = 100 each; free b; d = 50; free a; e = 25.
func runTryScenario(t *testing.T, e *Engine) (d, x Handle) {
	t.Helper()
	a := mustAlloc(t, e, 100)
	b := mustAlloc(t, e, 100)
	mustAlloc(t, e, 100)
	mustFree(t, e, b)
	checkInvariants(t, e)
	d = mustAlloc(t, e, 50)
	checkInvariants(t, e)
	mustFree(t, e, a)
	checkInvariants(t, e)
	x = mustAlloc(t, e, 25)
	return d, x
}

func TestFirstFitScenario(t *testing.T) {
	e := newTestEngine(t, StrategyFirst, 500)
	d, x := runTryScenario(t, e)

	assert.Equal(t, 100, d.Offset(), "d reuses b's freed space")
	assert.Equal(t, 0, x.Offset(), "e lands at a's old address")
	requireLayout(t, e,
		used(0, 25), free(25, 75),
		used(100, 50), free(150, 50),
		used(200, 100), free(300, 200),
	)
	assert.Equal(t, 3, e.Holes())
	assert.Equal(t, 175, e.Allocated())
	assert.Equal(t, 325, e.FreeBytes())
	assert.Equal(t, 200, e.LargestFree())
}

func TestBestFitScenario(t *testing.T) {
	e := newTestEngine(t, StrategyBest, 500)
	d, x := runTryScenario(t, e)

	assert.Equal(t, 100, d.Offset())
	assert.Equal(t, 150, x.Offset(), "smallest sufficient hole is the 50-byte remainder")
	requireLayout(t, e,
		free(0, 100),
		used(100, 50), used(150, 25), free(175, 25),
		used(200, 100), free(300, 200),
	)
}

func TestWorstFitScenario(t *testing.T) {
	e := newTestEngine(t, StrategyWorst, 500)
	d, x := runTryScenario(t, e)

	assert.Equal(t, 300, d.Offset(), "largest hole is the tail")
	assert.Equal(t, 0, x.Offset())
	requireLayout(t, e,
		used(0, 25), free(25, 175),
		used(200, 100),
		used(300, 50), free(350, 150),
	)
}

func TestNextFitScenario(t *testing.T) {
	e := newTestEngine(t, StrategyNext, 500)
	d, x := runTryScenario(t, e)

	assert.Equal(t, 300, d.Offset(), "scan resumes after c")
	assert.Equal(t, 350, x.Offset(), "scan resumes after d")
	requireLayout(t, e,
		free(0, 200),
		used(200, 100),
		used(300, 50), used(350, 25), free(375, 125),
	)
}

func TestBestAndWorstFitDiverge(t *testing.T) {
	best := newTestEngine(t, StrategyBest, 500)
	worst := newTestEngine(t, StrategyWorst, 500)
	runTryScenario(t, best)
	runTryScenario(t, worst)

	assert.NotEqual(t, best.Blocks(), worst.Blocks())
}

func TestEveryStrategyProducesDistinctLayout(t *testing.T) {
	layouts := make(map[Strategy][]Block)
	for _, s := range Strategies {
		e := newTestEngine(t, s, 500)
		runTryScenario(t, e)
		layouts[s] = e.Blocks()
	}
	for i, a := range Strategies {
		for _, b := range Strategies[i+1:] {
			assert.NotEqual(t, layouts[a], layouts[b], "%s and %s", a, b)
		}
	}
}

func TestBestFitTieEarliestWins(t *testing.T) {
	e := newTestEngine(t, StrategyBest, 400)
	h1 := mustAlloc(t, e, 50)
	mustAlloc(t, e, 50)
	h3 := mustAlloc(t, e, 50)
	mustAlloc(t, e, 250)
	mustFree(t, e, h1)
	mustFree(t, e, h3)
	requireLayout(t, e, free(0, 50), used(50, 50), free(100, 50), used(150, 250))

	h := mustAlloc(t, e, 20)
	assert.Equal(t, 0, h.Offset())
}

func TestWorstFitTieEarliestWins(t *testing.T) {
	e := newTestEngine(t, StrategyWorst, 300)
	h1 := mustAlloc(t, e, 100)
	mustAlloc(t, e, 50)
	h3 := mustAlloc(t, e, 100)
	mustAlloc(t, e, 50)
	mustFree(t, e, h1)
	mustFree(t, e, h3)
	requireLayout(t, e, free(0, 100), used(100, 50), free(150, 100), used(250, 50))

	h := mustAlloc(t, e, 10)
	assert.Equal(t, 0, h.Offset())
}

func TestFirstFitIgnoresCursor(t *testing.T) {
	e := newTestEngine(t, StrategyFirst, 300)
	a := mustAlloc(t, e, 100)
	mustAlloc(t, e, 100)
	mustFree(t, e, a)

	h := mustAlloc(t, e, 10)
	assert.Equal(t, 0, h.Offset())
}

func TestNextFitWrapsToHead(t *testing.T) {
	e := newTestEngine(t, StrategyNext, 300)
	a := mustAlloc(t, e, 100)
	mustAlloc(t, e, 100)
	mustAlloc(t, e, 50)
	mustFree(t, e, a)
	requireLayout(t, e, free(0, 100), used(100, 100), used(200, 50), free(250, 50))

	// The block after the cursor is the 50-byte tail: too small, so the scan
	// wraps and takes the head.
	h := mustAlloc(t, e, 80)
	assert.Equal(t, 0, h.Offset())
	requireLayout(t, e, used(0, 80), free(80, 20), used(100, 100), used(200, 50), free(250, 50))
}

func TestNextFitCursorAtTail(t *testing.T) {
	e := newTestEngine(t, StrategyNext, 300)
	a := mustAlloc(t, e, 100)
	mustAlloc(t, e, 100)
	mustAlloc(t, e, 100) // exact fill; cursor is the tail
	mustFree(t, e, a)

	h := mustAlloc(t, e, 50)
	assert.Equal(t, 0, h.Offset())
}

func TestNextFitBoundedToOneRevolution(t *testing.T) {
	e := newTestEngine(t, StrategyNext, 300)
	a := mustAlloc(t, e, 100)
	mustAlloc(t, e, 100)
	mustAlloc(t, e, 50)
	mustFree(t, e, a)

	_, err := e.Alloc(101)
	require.ErrorIs(t, err, ErrNoSpace)
	checkInvariants(t, e)
}

func TestNextFitChecksCursorLast(t *testing.T) {
	e := newTestEngine(t, StrategyNext, 200)
	a := mustAlloc(t, e, 100)
	mustAlloc(t, e, 100)
	mustFree(t, e, a)

	// Point the cursor at the only free block; every other block is allocated,
	// so only the final check of the cursor itself can succeed.
	e.cursor = e.head
	h := mustAlloc(t, e, 100)
	assert.Equal(t, 0, h.Offset())
}

func TestNextFitSingleBlock(t *testing.T) {
	e := newTestEngine(t, StrategyNext, 10)
	h := mustAlloc(t, e, 10)
	assert.Equal(t, 0, h.Offset())
	_, err := e.Alloc(1)
	require.ErrorIs(t, err, ErrNoSpace)
}

func TestStrategyNames(t *testing.T) {
	tests := []struct {
		s    Strategy
		name string
	}{
		{StrategyFirst, "first"},
		{StrategyBest, "best"},
		{StrategyWorst, "worst"},
		{StrategyNext, "next"},
		{StrategyNotSet, "unknown"},
		{Strategy(200), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.s.String())
	}

	for _, s := range Strategies {
		assert.Equal(t, s, StrategyFromString(s.String()))
		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	assert.Equal(t, StrategyBest, StrategyFromString(" BEST "))
	assert.Equal(t, StrategyNotSet, StrategyFromString("buddy"))
	assert.Equal(t, StrategyNotSet, StrategyFromString(""))

	_, err := ParseStrategy("buddy")
	require.ErrorIs(t, err, ErrUnknownStrategy)
	_, err = ParseStrategy("unknown")
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestPlacerForNotSet(t *testing.T) {
	assert.Nil(t, placerFor(StrategyNotSet))
	for _, s := range Strategies {
		assert.NotNil(t, placerFor(s), s.String())
	}
}
