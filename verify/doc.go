// Package verify provides validation functions for block-list layouts.
// These helpers are used by tests and by the memsim CLI to confirm that a
// layout partitions its pool and keeps free space coalesced.
package verify
