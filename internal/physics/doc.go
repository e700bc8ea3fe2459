// Package physics implements the per-frame passes of the droplet model.
//
// A frame runs three passes over the live particles, strictly in order:
//
//   - [Integrate]: gravity integration plus the negligible-velocity clamp,
//     followed by [ApplyBoost] while the boost input is held
//   - [ResolveBoundaries]: floor, optional ceiling and side walls with
//     restitution and floor friction
//   - a [dynamo.Resolver] ([Snapshot] or [Sequential]): exhaustive pairwise
//     contact resolution
//
// Boundary correction must see post-integration positions and collision
// resolution must see post-boundary positions.
//
// # Contact Model
//
// Circles have no mass. On contact the pair is pushed apart evenly along the
// contact normal and a damped fraction of the difference of their normal
// velocities is exchanged:
//
//	dv_a = damping * (v_b·n - v_a·n)
//	dv_b = damping * (v_a·n - v_b·n)
package physics
