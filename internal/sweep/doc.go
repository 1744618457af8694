// Package sweep evaluates a grid of random-access configurations on a worker
// pool and streams per-stage outcomes to a visit callback.
//
// Grid points share no mutable state: each job derives its own random stream
// from the base seed and its grid index, so results are reproducible and
// independent of scheduling or thread count.
package sweep
