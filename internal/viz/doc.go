// Package viz renders a live droplet world in the terminal.
//
// [Model] is a Bubble Tea program: on every 60 Hz tick it steps the world
// with the input gathered since the previous tick and redraws the
// [Canvas], a braille grid where each cell carries the colour of the last
// droplet drawn into it.
//
// # Key Bindings
//
//	Enter - Start the simulation
//	Space - Boost (held for BoostHold frames)
//	C     - Clear all droplets
//	Click - Spawn a droplet at the pointer
//	P     - Pause/Resume
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
