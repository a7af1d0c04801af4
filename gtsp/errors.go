// SPDX-License-Identifier: MIT
// Package gtsp: sentinel error set.
// All constructors return these sentinels (possibly wrapped with context via
// fmt.Errorf("…: %w", ErrX)); callers match them with errors.Is.
// Internal tour-invariant violations panic with an error wrapping ErrInvalidTour.

package gtsp

import "errors"

var (
	// ErrNoClusters is returned when the cluster partition is empty.
	ErrNoClusters = errors.New("gtsp: no clusters")

	// ErrEmptyCluster is returned when a cluster has no vertices.
	ErrEmptyCluster = errors.New("gtsp: empty cluster")

	// ErrNonSquare is returned when the distance matrix is not n×n.
	ErrNonSquare = errors.New("gtsp: distance matrix is not square")

	// ErrVertexOutOfRange is returned when a vertex index is outside [0..n-1].
	ErrVertexOutOfRange = errors.New("gtsp: vertex out of range")

	// ErrDuplicateVertex is returned when a vertex appears in more than one cluster
	// (or twice in one cluster).
	ErrDuplicateVertex = errors.New("gtsp: vertex listed twice")

	// ErrUncoveredVertex is returned when some vertex belongs to no cluster.
	ErrUncoveredVertex = errors.New("gtsp: vertex not covered by any cluster")

	// ErrInvalidTour is returned (or panicked with, for internal bugs) when a tour
	// does not visit exactly one vertex of every cluster.
	ErrInvalidTour = errors.New("gtsp: tour is not one vertex per cluster")

	// ErrWeightMismatch is returned when a declared tour weight differs from the
	// recomputed one.
	ErrWeightMismatch = errors.New("gtsp: declared weight differs from tour weight")
)
