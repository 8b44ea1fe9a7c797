package tiled

import (
	"strings"

	"github.com/baldurk/renderdoc-sub009/sparse"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// TiledResourceCoordinate is the position of a tile in a subresource, in tiles. For packed mips, X
// indexes the tiles of the array slice's packed region and the other coordinates are 0.
type TiledResourceCoordinate struct {
	X           uint32
	Y           uint32
	Z           uint32
	Subresource uint32
}

// TileRegionSize is the size of a region of tiles. When UseBox is set the region is a box of width,
// height and depth tiles and NumTiles must equal their product. Otherwise the region is a run of
// NumTiles tiles that wraps across rows and on into following subresources.
type TileRegionSize struct {
	NumTiles uint32
	UseBox   bool
	Width    uint32
	Height   uint16
	Depth    uint16
}

type TileRangeFlags uint32

const (
	TileRangeFlagNone TileRangeFlags = 0
	// TileRangeFlagNull unbinds the tiles in the range
	TileRangeFlagNull TileRangeFlags = 1
	// TileRangeFlagSkip leaves the tiles in the range untouched
	TileRangeFlagSkip TileRangeFlags = 2
	// TileRangeFlagReuseSingleTile binds every tile in the range to the range's first heap tile
	TileRangeFlagReuseSingleTile TileRangeFlags = 4
)

var tileRangeFlagsToString = map[TileRangeFlags]string{
	TileRangeFlagNull:            "Null",
	TileRangeFlagSkip:            "Skip",
	TileRangeFlagReuseSingleTile: "ReuseSingleTile",
}

func (f TileRangeFlags) String() string {
	if f == TileRangeFlagNone {
		return "None"
	}

	var names []string
	for _, flag := range []TileRangeFlags{TileRangeFlagNull, TileRangeFlagSkip, TileRangeFlagReuseSingleTile} {
		if f&flag != 0 {
			names = append(names, tileRangeFlagsToString[flag])
		}
	}
	return strings.Join(names, "|")
}

func regionSize(sizes []TileRegionSize, region int) TileRegionSize {
	if sizes == nil {
		return TileRegionSize{NumTiles: 1}
	}
	return sizes[region]
}

// tileCursor tracks progress through one region of tiles
type tileCursor struct {
	coord TiledResourceCoordinate
	size  TileRegionSize
	done  uint32

	// position of the next tile of a wrapped region
	subresource uint32
	texel       sparse.Coord
}

func (c *tileCursor) reset(table *sparse.PageTable, coord TiledResourceCoordinate, size TileRegionSize) {
	c.coord = coord
	c.size = size
	c.done = 0
	c.subresource = coord.Subresource
	c.texel = toTexel(table, coord)
}

// apply binds the next count tiles of the region, starting at heapOffset bytes into memory
func (c *tileCursor) apply(table *sparse.PageTable, count uint32, memory sparse.ResourceId, heapOffset uint64, reuse bool, skip bool) {
	tileSize := uint64(table.PageByteSize())
	texelSize := table.PageTexelSize()

	if !c.size.UseBox {
		sub, coord := table.SetImageWrappedRange(c.subresource, c.texel, uint64(count)*tileSize, memory, heapOffset, reuse, !skip)
		c.subresource = sub
		c.texel = sparse.Coord{X: coord.X * texelSize.X, Y: coord.Y * texelSize.Y, Z: coord.Z * texelSize.Z}
		c.done += count
		return
	}

	width := c.size.Width
	height := uint32(c.size.Height)

	// boxes are bound one row of tiles at a time
	for count > 0 {
		x := c.done % width
		y := (c.done / width) % height
		z := c.done / (width * height)
		run := count
		if width-x < run {
			run = width - x
		}

		if !skip {
			texel := sparse.Coord{
				X: (c.coord.X + x) * texelSize.X,
				Y: (c.coord.Y + y) * texelSize.Y,
				Z: (c.coord.Z + z) * texelSize.Z,
			}
			table.SetImageBoxRange(c.coord.Subresource, texel, sparse.Coord{X: run * texelSize.X, Y: texelSize.Y, Z: texelSize.Z},
				memory, heapOffset, reuse)
		}

		if !reuse {
			heapOffset += uint64(run) * tileSize
		}
		c.done += run
		count -= run
	}
}

// UpdateTileMappings binds regions of tiles in table to ranges of tiles in heap. The regions and the
// ranges are consumed in parallel, so a range may cover several regions and a region may be covered
// by several ranges, as long as they hold the same total number of tiles.
//
// A nil sizes gives every region one tile. A nil rangeTileCounts gives one range covering every
// tile, a nil rangeFlags treats every range as TileRangeFlagNone, and a nil heapRangeStartOffsets
// starts every range at the beginning of the heap. Offsets are in tiles.
func UpdateTileMappings(table *sparse.PageTable, heap sparse.ResourceId, coords []TiledResourceCoordinate, sizes []TileRegionSize,
	rangeFlags []TileRangeFlags, heapRangeStartOffsets []uint32, rangeTileCounts []uint32) error {
	if table == nil {
		return errors.New("no page table to update")
	}
	if sizes != nil && len(sizes) != len(coords) {
		return errors.Newf("%d region sizes given for %d regions", len(sizes), len(coords))
	}

	numRanges := 1
	if rangeTileCounts != nil {
		numRanges = len(rangeTileCounts)
	}
	if rangeFlags != nil && len(rangeFlags) != numRanges {
		return errors.Newf("%d range flags given for %d ranges", len(rangeFlags), numRanges)
	}
	if heapRangeStartOffsets != nil && len(heapRangeStartOffsets) != numRanges {
		return errors.Newf("%d heap offsets given for %d ranges", len(heapRangeStartOffsets), numRanges)
	}

	regionTiles := uint64(0)
	for i, coord := range coords {
		size := regionSize(sizes, i)
		if coord.Subresource >= table.NumSubresources() {
			return errors.Newf("region %d subresource %d is out of range of %d", i, coord.Subresource, table.NumSubresources())
		}
		if size.UseBox && uint64(size.Width)*uint64(size.Height)*uint64(size.Depth) != uint64(size.NumTiles) {
			return errors.Newf("region %d box of %dx%dx%d does not hold %d tiles", i, size.Width, size.Height, size.Depth, size.NumTiles)
		}
		regionTiles += uint64(size.NumTiles)
	}

	rangeTiles := regionTiles
	if rangeTileCounts != nil {
		rangeTiles = 0
		for _, count := range rangeTileCounts {
			rangeTiles += uint64(count)
		}
	}
	if rangeTiles != regionTiles {
		return errors.Newf("ranges hold %d tiles but regions hold %d", rangeTiles, regionTiles)
	}

	for i := 0; i < numRanges; i++ {
		if rangeFlag(rangeFlags, i)&(TileRangeFlagNull|TileRangeFlagSkip) == 0 && heap.IsNull() {
			return errors.Newf("range %d binds tiles with no heap", i)
		}
	}

	tileSize := uint64(table.PageByteSize())
	logger := table.Logger()

	var cursor tileCursor
	region := -1
	for i := 0; i < numRanges; i++ {
		flags := rangeFlag(rangeFlags, i)
		count := uint32(rangeTiles)
		if rangeTileCounts != nil {
			count = rangeTileCounts[i]
		}
		heapTile := uint64(0)
		if heapRangeStartOffsets != nil {
			heapTile = uint64(heapRangeStartOffsets[i])
		}

		memory := heap
		if flags&TileRangeFlagNull != 0 {
			memory = sparse.NullResourceId
		}
		reuse := flags&TileRangeFlagReuseSingleTile != 0
		skip := flags&TileRangeFlagSkip != 0

		logger.Debug("UpdateTileMappings range",
			slog.Int("Range", i),
			slog.Int("Tiles", int(count)),
			slog.Uint64("HeapTile", heapTile),
			slog.String("Flags", flags.String()))

		for count > 0 {
			for region < 0 || cursor.done == cursor.size.NumTiles {
				region++
				cursor.reset(table, coords[region], regionSize(sizes, region))
			}

			tiles := count
			if remaining := cursor.size.NumTiles - cursor.done; remaining < tiles {
				tiles = remaining
			}

			cursor.apply(table, tiles, memory, heapTile*tileSize, reuse, skip)

			count -= tiles
			if !reuse {
				heapTile += uint64(tiles)
			}
		}
	}

	return nil
}

func rangeFlag(flags []TileRangeFlags, i int) TileRangeFlags {
	if flags == nil {
		return TileRangeFlagNone
	}
	return flags[i]
}
