package scene

import "math"

// yawStep is the fixed per-frame rotation applied by the render loop.
// Ambient motion only; it is not data-driven.
const yawStep = 0.04

// Camera holds the view orientation for the terminal projection.
type Camera struct {
	Yaw float64
}

// Advance rotates the camera by one frame step.
func (c *Camera) Advance() {
	c.Yaw += yawStep
	if c.Yaw > 2*math.Pi {
		c.Yaw -= 2 * math.Pi
	}
}

// project maps a scene point to view space under the camera's yaw.
// The returned x/y are in scene units; depth orders paint-over (larger
// is closer to the viewer).
func (c Camera) project(p Vec3) (x, y, depth float64) {
	sin, cos := math.Sincos(c.Yaw)
	x = p.X*cos + p.Z*sin
	depth = p.Z*cos - p.X*sin
	return x, p.Y, depth
}
