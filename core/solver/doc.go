// Package solver provides a small integer-programming layer: a Model
// for declaring bounded integer variables and linear constraints, and a
// Backend interface for solving it under a wall-clock budget. The
// default backend is a parallel branch-and-bound over the LP relaxation.
package solver
