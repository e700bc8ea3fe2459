// Package analysis inspects recorded droplet runs.
//
//   - [FindBounces]: floor contacts of one particle with impact and rebound
//     speeds, from which the effective restitution follows
//   - [PowerSpectrum] and [DominantFrequency]: spectrum of a sampled series,
//     computed with go-dsp
//   - [BounceFrequency]: dominant frequency of a particle's height
//   - [PhasePortrait]: height against vertical velocity, with an ASCII plot
package analysis
