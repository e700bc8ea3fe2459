package dynamo

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit colour triple.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorMode decides how a particle's colour is derived each frame.
type ColorMode string

const (
	// ColorStatic keeps the colour fixed at spawn.
	ColorStatic ColorMode = "static"
	// ColorVelocity maps |vy| onto a green to red ramp, saturating at 255.
	ColorVelocity ColorMode = "velocity"
	// ColorHeat blends cold to hot in HCL space by speed.
	ColorHeat ColorMode = "heat"
)

// HeatSpeed is the speed at which ColorHeat saturates.
const HeatSpeed = 600.0

var (
	heatCold, _ = colorful.Hex("#2b5cff")
	heatHot, _  = colorful.Hex("#ff3b1f")
)

func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case ColorStatic, ColorVelocity, ColorHeat:
		return ColorMode(s), nil
	case "":
		return ColorVelocity, nil
	}
	return "", fmt.Errorf("%w: colour mode %q", ErrUnknownComponent, s)
}

// Resolve returns the display colour for a particle moving at vel.
func (m ColorMode) Resolve(static RGB, vel Vec2) RGB {
	switch m {
	case ColorVelocity:
		x := math.Min(math.Abs(vel.Y), 255)
		return RGB{R: uint8(x), G: uint8(255 - x), B: 0}
	case ColorHeat:
		t := math.Min(vel.Len()/HeatSpeed, 1)
		r, g, b := heatCold.BlendHcl(heatHot, t).Clamped().RGB255()
		return RGB{R: r, G: g, B: b}
	default:
		return static
	}
}
