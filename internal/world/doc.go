// Package world implements a minimal 2D rigid-body simulation: one
// dynamic box sliding on a static frictional floor under gravity.
//
// Each [World] is a self-contained instance parameterized by a single
// friction coefficient. For a fixed impulse and step count the final
// horizontal displacement is monotonically non-increasing in that
// coefficient over [0, 1], which is what makes the calibration search
// in the calib package well-posed.
package world
