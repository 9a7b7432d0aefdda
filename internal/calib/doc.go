// Package calib inverts a deterministic simulation treated as a pure
// function from friction to displacement. The search is a bounded
// bisection over [0, 1], valid because the trial outcome is
// monotonically non-increasing in friction for this model.
package calib
