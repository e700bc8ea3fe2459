// Package dynamo provides the core types shared by the droplet simulation.
//
// The package defines the data model and the seams between the passes of a
// frame:
//
//   - [Particle]: a circular droplet with per-particle [ParticleConfig]
//   - [InputState]: the per-frame input snapshot (start, boost, clear, spawn)
//   - [Integrator]: motion integration for one particle
//   - [Resolver]: pairwise contact resolution over the live particles
//   - [Metric] and [Observer]: per-frame instrumentation of a run
//
// # Coordinates
//
// Positions are screen coordinates: the origin is the top-left corner of the
// viewport and Y grows downwards, so gravity is a positive Y acceleration and
// an upward impulse is a negative Y velocity.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. A frame is one
// synchronous batch; see package sim for the ordering of passes.
package dynamo
