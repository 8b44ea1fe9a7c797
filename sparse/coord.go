package sparse

import "fmt"

// Coord is a 3-component triple used for texel offsets and extents, and for positions in a
// subresource's page grid.
type Coord struct {
	X, Y, Z uint32
}

func (c Coord) String() string {
	return fmt.Sprintf("{%d, %d, %d}", c.X, c.Y, c.Z)
}

// Volume returns X*Y*Z
func (c Coord) Volume() uint32 {
	return c.X * c.Y * c.Z
}

// linearIndex is the row-major index of c within a grid of dimension dim
func (c Coord) linearIndex(dim Coord) uint32 {
	return (c.Z*dim.Y+c.Y)*dim.X + c.X
}

// coordFromIndex is the inverse of linearIndex. A grid with no pages only has the origin.
func coordFromIndex(index uint32, dim Coord) Coord {
	if dim.Volume() == 0 {
		return Coord{}
	}
	return Coord{
		X: index % dim.X,
		Y: (index / dim.X) % dim.Y,
		Z: index / (dim.X * dim.Y),
	}
}

func (c Coord) add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y, Z: c.Z + other.Z}
}

func (c Coord) clampMin1() Coord {
	return Coord{X: max1(c.X), Y: max1(c.Y), Z: max1(c.Z)}
}
