package calib

import "errors"

// Configuration errors. All of them are rejected before any trial
// runs, so a failed construction leaves no partial history behind.
var (
	// ErrNilOracle indicates the engine was built without a trial oracle.
	ErrNilOracle = errors.New("calib: oracle must not be nil")

	// ErrInvalidIterations indicates a non-positive iteration budget.
	// A budget of zero would mean returning a guess no trial ever
	// produced, so it is excluded at the boundary.
	ErrInvalidIterations = errors.New("calib: max iterations must be at least 1")

	// ErrInvalidTolerance indicates a non-positive convergence tolerance.
	ErrInvalidTolerance = errors.New("calib: tolerance must be positive")
)
