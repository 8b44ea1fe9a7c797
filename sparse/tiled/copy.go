package tiled

import (
	"github.com/baldurk/renderdoc-sub009/sparse"
	"github.com/cockroachdb/errors"
)

// CopyTileMappings copies the tile bindings of a region of src to the same size region of dst. The
// regions may overlap when src and dst are the same table.
func CopyTileMappings(dst *sparse.PageTable, dstCoord TiledResourceCoordinate, src *sparse.PageTable, srcCoord TiledResourceCoordinate, size TileRegionSize) error {
	if dst == nil || src == nil {
		return errors.New("copying tile mappings needs a source and destination page table")
	}
	if dst.PageByteSize() != src.PageByteSize() {
		return errors.Newf("source tile size %d differs from destination tile size %d", src.PageByteSize(), dst.PageByteSize())
	}
	if dstCoord.Subresource >= dst.NumSubresources() {
		return errors.Newf("destination subresource %d is out of range of %d", dstCoord.Subresource, dst.NumSubresources())
	}
	if srcCoord.Subresource >= src.NumSubresources() {
		return errors.Newf("source subresource %d is out of range of %d", srcCoord.Subresource, src.NumSubresources())
	}

	dstTexel := toTexel(dst, dstCoord)
	srcTexel := toTexel(src, srcCoord)

	if size.UseBox {
		texelSize := dst.PageTexelSize()
		dim := sparse.Coord{
			X: size.Width * texelSize.X,
			Y: uint32(size.Height) * texelSize.Y,
			Z: uint32(size.Depth) * texelSize.Z,
		}
		dst.CopyImageBoxRange(dstCoord.Subresource, dstTexel, src, srcCoord.Subresource, srcTexel, dim)
		return nil
	}

	dst.CopyImageWrappedRange(dstCoord.Subresource, dstTexel, src, srcCoord.Subresource, srcTexel,
		uint64(size.NumTiles)*uint64(dst.PageByteSize()))
	return nil
}

func toTexel(table *sparse.PageTable, coord TiledResourceCoordinate) sparse.Coord {
	texelSize := table.PageTexelSize()
	return sparse.Coord{X: coord.X * texelSize.X, Y: coord.Y * texelSize.Y, Z: coord.Z * texelSize.Z}
}
