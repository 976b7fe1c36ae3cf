package scene

import "github.com/charmbracelet/lipgloss"

// Vec3 is a point in scene space.
type Vec3 struct {
	X, Y, Z float64
}

// Object is the render-side handle for one manuscript. Objects are owned
// exclusively by the Registry: created on first sighting of an ID,
// updated in place on every later sighting, destroyed the cycle the ID
// disappears from the snapshot.
type Object struct {
	ID    string
	Label string
	Pos   Vec3
	Color lipgloss.Color
}
