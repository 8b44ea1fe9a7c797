package sparse

import (
	"context"

	"golang.org/x/exp/slog"
)

// SetImageBoxRange binds a box of texels in one subresource. coord and dim must be page aligned,
// except that dim may end at the edge of the mip level. Pages in the box are bound in x, y, z order
// advancing through memory one page at a time, unless useSinglePage is set.
func (t *PageTable) SetImageBoxRange(subresource uint32, coord Coord, dim Coord, memory ResourceId, memoryByteOffset uint64, useSinglePage bool) {
	if !t.assert(subresource < t.NumSubresources(), "subresource %d out of range of %d", subresource, t.NumSubresources()) {
		return
	}

	r := t.regionFor(subresource)
	mipDim := t.mipTexelDim(subresource)
	pageTexel := t.pageTexelSize

	t.assert(coord.X%pageTexel.X == 0 && coord.Y%pageTexel.Y == 0 && coord.Z%pageTexel.Z == 0,
		"box offset %s is not aligned to page size %s", coord, pageTexel)

	// the dimension may be misaligned where it covers part of a page at the edge of a mip
	if !r.tail {
		t.assert((dim.X%pageTexel.X == 0 || coord.X+dim.X == mipDim.X) &&
			(dim.Y%pageTexel.Y == 0 || coord.Y+dim.Y == mipDim.Y) &&
			(dim.Z%pageTexel.Z == 0 || coord.Z+dim.Z == mipDim.Z),
			"box extent %s at %s is not aligned to page size %s", dim, coord, pageTexel)
	}

	pageCoord := t.toPageCoord(r, coord)
	pageDim := Coord{
		X: max1(DivRoundUp(dim.X, pageTexel.X)),
		Y: max1(DivRoundUp(dim.Y, pageTexel.Y)),
		Z: max1(DivRoundUp(dim.Z, pageTexel.Z)),
	}
	if r.tail {
		pageDim.Y, pageDim.Z = 1, 1
	}

	end := pageCoord.add(pageDim)
	if !t.assert(end.X <= r.pageDim.X && end.Y <= r.pageDim.Y && end.Z <= r.pageDim.Z,
		"box %s + %s in pages is outside subresource %d of %s pages", pageCoord, pageDim, subresource, r.pageDim) {
		return
	}

	if memory.IsNull() {
		memoryByteOffset = 0
	}

	defer DebugValidate(t)

	if pageCoord == (Coord{}) && pageDim == r.pageDim {
		r.mapping.setSingle(memory, memoryByteOffset, useSinglePage)
		return
	}

	r.mapping.CreatePages(r.numPages(), t.pageByteSize)

	for z := pageCoord.Z; z < end.Z; z++ {
		for y := pageCoord.Y; y < end.Y; y++ {
			for x := pageCoord.X; x < end.X; x++ {
				page := Coord{X: x, Y: y, Z: z}.linearIndex(r.pageDim)
				r.mapping.Pages[page] = Page{Memory: memory, Offset: memoryByteOffset}

				if !useSinglePage && !memory.IsNull() {
					memoryByteOffset += uint64(t.pageByteSize)
				}
			}
		}
	}

	r.mapping.SimplifyUnmapped()
}

// SetImageWrappedRange binds a run of byteSize bytes worth of pages starting at a texel coordinate in
// a subresource. Pages are consumed in row-major order, wrapping across rows and slices and then on to
// the following subresources until the size is used up. RemainingPages binds everything to the end of
// the resource.
//
// Subresources in the mip tail are addressed as a 1D run of pages where coord.X is the page index
// multiplied by the page texel width.
//
// If updateMappings is false no bindings change, but the returned cursor is computed as if they had.
// The return value is the subresource and page-grid coordinate of the first page not consumed, with
// the subresource equal to NumSubresources if the whole resource was consumed.
func (t *PageTable) SetImageWrappedRange(subresource uint32, coord Coord, byteSize uint64, memory ResourceId, memoryByteOffset uint64,
	useSinglePage bool, updateMappings bool) (uint32, Coord) {
	pageSize := uint64(t.pageByteSize)
	numSubresources := t.NumSubresources()

	if !t.assert(pageSize > 0, "page table is not initialised") {
		return subresource, coord
	}

	remainingPages := byteSize == RemainingPages
	if remainingPages {
		byteSize = AlignDown(byteSize, pageSize)
	}

	t.assert(byteSize%pageSize == 0, "size %d is not aligned to page size %d", byteSize, pageSize)

	if !t.assert(subresource < numSubresources, "subresource %d out of range of %d", subresource, numSubresources) {
		return subresource, coord
	}

	if memory.IsNull() {
		memoryByteOffset = 0
	}
	advance := !useSinglePage && !memory.IsNull()

	defer DebugValidate(t)

	numPages := byteSize / pageSize
	r := t.regionFor(subresource)
	start := t.toPageCoord(r, coord)
	if !t.assert((r.numPages() == 0 && start == (Coord{})) || (start.X < r.pageDim.X && start.Y < r.pageDim.Y && start.Z < r.pageDim.Z),
		"wrapped start %s in pages is outside subresource %d of %s pages", start, subresource, r.pageDim) {
		return subresource, coord
	}
	page := uint64(start.linearIndex(r.pageDim))

	for numPages > 0 && subresource < numSubresources {
		r = t.regionFor(subresource)
		regionPages := uint64(r.numPages())

		if page == 0 && numPages >= regionPages {
			if updateMappings {
				r.mapping.setSingle(memory, memoryByteOffset, useSinglePage)
			}

			if advance {
				memoryByteOffset += regionPages * pageSize
			}

			numPages -= regionPages
			subresource = t.nextWrappedSubresource(subresource)
			continue
		}

		count := uint64(0)
		if page < regionPages {
			count = minOf(numPages, regionPages-page)
		}

		if updateMappings && count > 0 {
			r.mapping.CreatePages(uint32(regionPages), t.pageByteSize)

			for i := page; i < page+count; i++ {
				r.mapping.Pages[i] = Page{Memory: memory, Offset: memoryByteOffset}

				if advance {
					memoryByteOffset += pageSize
				}
			}

			r.mapping.SimplifyUnmapped()
		} else if advance {
			memoryByteOffset += count * pageSize
		}

		numPages -= count
		page += count

		if page >= regionPages {
			subresource = t.nextWrappedSubresource(subresource)
			page = 0
		}
	}

	if numPages > 0 && !remainingPages {
		t.log().LogAttrs(context.Background(), slog.LevelError, UnclaimedBytesError.Error(),
			slog.Uint64("UnclaimedBytes", numPages*pageSize),
			slog.Int("Subresources", int(numSubresources)))
	}

	if subresource >= numSubresources {
		return numSubresources, Coord{}
	}

	return subresource, coordFromIndex(uint32(page), t.regionFor(subresource).pageDim)
}
