// Package group implements the local-length group space (C4): online
// greedy clustering of same-length sub-sequences, keyed by centroid, backed
// by a dense shared membership arena.
//
// Grounded on original_source/src/{Group,LocalLengthGroupSpace}.cpp.
package group

// coord identifies a sub-sequence by (row index, start offset).
type coord struct {
	Index int
	Start int
}

var sentinel = coord{Index: -1, Start: -1}

// membership records, for one occupied coordinate at a fixed length L,
// which group it belongs to and the coordinate added just before it —
// threading every group's members into a newest-first singly-linked list
// without any per-group dynamic container.
type membership struct {
	GroupIndex int
	Prev       coord
}
