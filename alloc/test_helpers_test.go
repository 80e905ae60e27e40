package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestEngine creates a heap-backed engine and registers its Close.
func newTestEngine(t testing.TB, s Strategy, size int) *Engine {
	t.Helper()
	e, err := New(Options{Strategy: s, Size: size})
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

// mustAlloc allocates n bytes and fails the test on error.
func mustAlloc(t testing.TB, e *Engine, n int) Handle {
	t.Helper()
	h, err := e.Alloc(n)
	require.NoError(t, err, "Alloc(%d)", n)
	require.True(t, h.Valid())
	return h
}

// mustFree releases h and fails the test on error.
func mustFree(t testing.TB, e *Engine, h Handle) {
	t.Helper()
	require.NoError(t, e.Free(h), "Free(%s)", h)
}

// free and used build expected Block values for layout assertions.
func free(off, size int) Block { return Block{Offset: off, Size: size} }
func used(off, size int) Block { return Block{Offset: off, Size: size, Allocated: true} }

// requireLayout asserts the exact block list and the structural invariants.
func requireLayout(t testing.TB, e *Engine, want ...Block) {
	t.Helper()
	require.Equal(t, want, e.Blocks())
	checkInvariants(t, e)
}

// checkInvariants verifies partition, coalescing, conservation and the
// consistency of the arena links.
func checkInvariants(t testing.TB, e *Engine) {
	t.Helper()

	blocks := e.Blocks()
	require.NotEmpty(t, blocks, "list must be non-empty while initialized")
	require.Equal(t, e.count, len(blocks), "live count mismatch")

	pos := 0
	for i, b := range blocks {
		require.Positive(t, b.Size, "block %d has non-positive size", i)
		require.Equal(t, pos, b.Offset, "gap or overlap before block %d", i)
		pos = b.End()
		if i > 0 {
			require.False(t, !b.Allocated && !blocks[i-1].Allocated,
				"adjacent free blocks at %d and %d", blocks[i-1].Offset, b.Offset)
		}
	}
	require.Equal(t, e.Total(), pos, "blocks must tile the pool")
	require.Equal(t, e.Total(), e.Allocated()+e.FreeBytes(), "bytes not conserved")

	// Back links mirror forward links.
	prev := nilIndex
	for idx := e.head; idx != nilIndex; idx = e.blocks[idx].next {
		require.True(t, e.blocks[idx].live)
		require.Equal(t, prev, e.blocks[idx].prev)
		prev = idx
	}

	if e.cursor != nilIndex {
		require.True(t, e.blocks[e.cursor].live, "cursor names a removed block")
	}
}
