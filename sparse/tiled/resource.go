package tiled

import (
	"github.com/baldurk/renderdoc-sub009/sparse"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// DefaultTileSizeInBytes is the size of a standard tile of a reserved resource
const DefaultTileSizeInBytes uint32 = 65536

type ResourceDimension uint32

const (
	ResourceDimensionUnknown ResourceDimension = iota
	ResourceDimensionBuffer
	ResourceDimensionTexture1D
	ResourceDimensionTexture2D
	ResourceDimensionTexture3D
)

var resourceDimensionToString = map[ResourceDimension]string{
	ResourceDimensionUnknown:   "Unknown",
	ResourceDimensionBuffer:    "Buffer",
	ResourceDimensionTexture1D: "Texture1D",
	ResourceDimensionTexture2D: "Texture2D",
	ResourceDimensionTexture3D: "Texture3D",
}

func (d ResourceDimension) String() string {
	return resourceDimensionToString[d]
}

// ResourceDesc is the part of a reserved resource's description that determines its tiling
type ResourceDesc struct {
	Dimension ResourceDimension
	// Width is the byte size of a buffer, or the texel width of a texture
	Width  uint64
	Height uint32
	// DepthOrArraySize is the texel depth of a 3D texture, otherwise the number of array slices
	DepthOrArraySize uint16
	MipLevels        uint16
}

// PackedMipInfo describes the tail of mips that are packed together into shared tiles
type PackedMipInfo struct {
	NumStandardMips uint8
	NumPackedMips   uint8
	// NumTilesForPackedMips is the number of tiles for each array slice's packed mips
	NumTilesForPackedMips uint32
	// StartTileIndexInOverallResource is the tile index of the first array slice's packed mips
	StartTileIndexInOverallResource uint32
}

// TileShape is the texel size of one tile
type TileShape struct {
	WidthInTexels  uint32
	HeightInTexels uint32
	DepthInTexels  uint32
}

type CreateOptions struct {
	// Logger is given to the created page table. If nil, slog.Default() is used
	Logger *slog.Logger
	// TileSizeInBytes defaults to DefaultTileSizeInBytes if zero
	TileSizeInBytes uint32
}

// NewReservedPageTable creates a page table for a reserved resource with no tiles bound
func NewReservedPageTable(desc ResourceDesc, packed PackedMipInfo, shape TileShape, options CreateOptions) (*sparse.PageTable, error) {
	tileSize := options.TileSizeInBytes
	if tileSize == 0 {
		tileSize = DefaultTileSizeInBytes
	}

	table := sparse.NewPageTable(options.Logger)

	switch desc.Dimension {
	case ResourceDimensionBuffer:
		table.InitialiseBuffer(desc.Width, tileSize)
		return table, nil
	case ResourceDimensionTexture1D, ResourceDimensionTexture2D, ResourceDimensionTexture3D:
	default:
		return nil, errors.Newf("cannot create a page table for resource dimension %s", desc.Dimension)
	}

	if uint32(packed.NumStandardMips)+uint32(packed.NumPackedMips) != uint32(desc.MipLevels) {
		return nil, errors.Newf("%d standard and %d packed mips do not add up to %d mip levels",
			packed.NumStandardMips, packed.NumPackedMips, desc.MipLevels)
	}

	depth := uint32(1)
	slices := uint32(desc.DepthOrArraySize)
	if desc.Dimension == ResourceDimensionTexture3D {
		depth = uint32(desc.DepthOrArraySize)
		slices = 1
	}

	tile := uint64(tileSize)
	table.InitialiseImage(
		sparse.Coord{X: uint32(desc.Width), Y: desc.Height, Z: depth},
		uint32(desc.MipLevels), slices, tileSize,
		sparse.Coord{X: shape.WidthInTexels, Y: shape.HeightInTexels, Z: shape.DepthInTexels},
		uint32(packed.NumStandardMips),
		uint64(packed.StartTileIndexInOverallResource)*tile,
		uint64(packed.StartTileIndexInOverallResource+packed.NumTilesForPackedMips)*tile,
		uint64(packed.NumTilesForPackedMips)*tile*uint64(slices))

	return table, nil
}
