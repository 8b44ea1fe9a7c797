package residency

import "github.com/baldurk/renderdoc-sub009/sparse"

// ResolveTexel returns the page backing a texel of a subresource. Texels of subresources in the mip
// tail are addressed the same way as the page table's wrapped updates: X is the page index within
// the tail multiplied by the page texel width. It returns false if the texel lies outside the
// subresource.
func ResolveTexel(table *sparse.PageTable, subresource uint32, texel sparse.Coord) (sparse.Page, bool) {
	if subresource >= table.NumSubresources() {
		return sparse.Page{}, false
	}

	texelSize := table.PageTexelSize()
	pageDim := table.RegionPageDim(subresource)
	pageCoord := sparse.Coord{
		X: texel.X / texelSize.X,
		Y: texel.Y / texelSize.Y,
		Z: texel.Z / texelSize.Z,
	}
	if table.IsSubresourceInMipTail(subresource) && len(table.MipTail().Mappings) > 0 {
		pageCoord.Y, pageCoord.Z = 0, 0
	}

	if pageCoord.X >= pageDim.X || pageCoord.Y >= pageDim.Y || pageCoord.Z >= pageDim.Z {
		return sparse.Page{}, false
	}

	index := (pageCoord.Z*pageDim.Y+pageCoord.Y)*pageDim.X + pageCoord.X
	mapping := table.MappingForSubresource(subresource)
	return mapping.GetPage(index, table.PageByteSize()), true
}

// ResolveByteOffset returns the page backing a byte of a buffer or of a texture's mip tail, given as
// an offset into the whole resource. It returns false for offsets outside the tail, including the
// padding between per-slice tails.
func ResolveByteOffset(table *sparse.PageTable, byteOffset uint64) (sparse.Page, bool) {
	tail := table.MipTail()
	if len(tail.Mappings) == 0 || !table.IsByteOffsetInResource(byteOffset) {
		return sparse.Page{}, false
	}

	offset := byteOffset - tail.ByteOffset
	slice := uint64(0)
	sliceSize := tail.TotalPackedByteSize
	if tail.ByteStride != 0 {
		slice = offset / tail.ByteStride
		offset -= slice * tail.ByteStride
		sliceSize = tail.TotalPackedByteSize / uint64(len(tail.Mappings))
	}

	if slice >= uint64(len(tail.Mappings)) || offset >= sliceSize {
		return sparse.Page{}, false
	}

	pageSize := table.PageByteSize()
	return tail.Mappings[slice].GetPage(uint32(offset/uint64(pageSize)), pageSize), true
}
