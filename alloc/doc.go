// Package alloc simulates a dynamic-memory allocator over a single fixed-size byte pool.
//
// # Overview
//
// The Engine partitions a pool of S bytes into an address-ordered sequence of
// contiguous blocks, each either free or allocated. Allocation picks a free
// block with one of four placement strategies and splits off any remainder;
// release marks the block free and coalesces it with free neighbors so that
// no two adjacent blocks are ever both free.
//
// # Strategies
//
//	StrategyFirst: lowest-address free block that fits
//	StrategyBest:  smallest free block that fits (earliest wins ties)
//	StrategyWorst: largest free block that fits (earliest wins ties)
//	StrategyNext:  first fit, scanning from the block after the last placement
//	               and wrapping to the head at most once
//
// # Usage Example
//
//	e, err := alloc.New(alloc.Options{Strategy: alloc.StrategyBest, Size: 500})
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	h, err := e.Alloc(100)
//	if errors.Is(err, alloc.ErrNoSpace) {
//	    // pool exhausted or too fragmented; caller decides what to do
//	}
//
//	buf := e.Bytes(h) // the block's 100 bytes inside the pool
//	_ = buf
//
//	err = e.Free(h)
//
// # Handles
//
// Alloc returns an opaque Handle, not a raw address. A Handle carries the
// arena slot of its block and a generation stamp, so a handle that has been
// freed (or that outlived a re-initialization) never aliases a newer block:
// Free reports ErrNotFound for it and leaves the block list untouched.
//
// # Fragmentation Queries
//
// Holes, Allocated, FreeBytes, LargestFree, SmallFree and StatusOf are
// read-only scans over the block list. Allocated()+FreeBytes() always equals
// Total().
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Callers must serialize all calls,
// including the read-only queries.
package alloc
