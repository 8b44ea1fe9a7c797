package sparse

import (
	"context"

	"golang.org/x/exp/slog"
)

// CopyImageBoxRange copies the bindings of a box of dim texels at srcCoord in a subresource of src to
// the box at dstCoord in a subresource of t. Both tables must use the same page byte size. src may be
// t, in which case the copy behaves as if the source was read in full before any page was written.
func (t *PageTable) CopyImageBoxRange(dstSubresource uint32, dstCoord Coord, src *PageTable, srcSubresource uint32, srcCoord Coord, dim Coord) {
	if !t.assert(src != nil, "no source page table") ||
		!t.assert(src.pageByteSize == t.pageByteSize, "source page size %d differs from destination page size %d", src.pageByteSize, t.pageByteSize) ||
		!t.assert(dstSubresource < t.NumSubresources(), "destination subresource %d out of range of %d", dstSubresource, t.NumSubresources()) ||
		!t.assert(srcSubresource < src.NumSubresources(), "source subresource %d out of range of %d", srcSubresource, src.NumSubresources()) {
		return
	}

	if src == t {
		src = t.Clone()
	}

	dst := t.regionFor(dstSubresource)
	srcRegion := src.regionFor(srcSubresource)

	dstPage := t.toPageCoord(dst, dstCoord)
	srcPage := src.toPageCoord(srcRegion, srcCoord)
	pageDim := Coord{
		X: max1(DivRoundUp(dim.X, t.pageTexelSize.X)),
		Y: max1(DivRoundUp(dim.Y, t.pageTexelSize.Y)),
		Z: max1(DivRoundUp(dim.Z, t.pageTexelSize.Z)),
	}
	if dst.tail || srcRegion.tail {
		pageDim.Y, pageDim.Z = 1, 1
	}

	dstEnd := dstPage.add(pageDim)
	srcEnd := srcPage.add(pageDim)
	if !t.assert(dstEnd.X <= dst.pageDim.X && dstEnd.Y <= dst.pageDim.Y && dstEnd.Z <= dst.pageDim.Z,
		"destination box %s + %s in pages is outside %s", dstPage, pageDim, dst.pageDim) ||
		!t.assert(srcEnd.X <= srcRegion.pageDim.X && srcEnd.Y <= srcRegion.pageDim.Y && srcEnd.Z <= srcRegion.pageDim.Z,
			"source box %s + %s in pages is outside %s", srcPage, pageDim, srcRegion.pageDim) {
		return
	}

	defer DebugValidate(t)

	if dst.tail && srcRegion.tail {
		t.copyMipTailPages(dstSubresource, dstPage.X, src, srcRegion, srcPage.X, pageDim.X)
		return
	}

	if dstPage == (Coord{}) && pageDim == dst.pageDim {
		// a single source mapping stays single: the destination takes the source's linear page run
		// from the box origin, whatever the shape of either grid
		if t.copyWholeRegion(dst, src, srcRegion, srcPage.linearIndex(srcRegion.pageDim)) {
			return
		}
	}

	dst.mapping.CreatePages(dst.numPages(), t.pageByteSize)

	for z := uint32(0); z < pageDim.Z; z++ {
		for y := uint32(0); y < pageDim.Y; y++ {
			for x := uint32(0); x < pageDim.X; x++ {
				offset := Coord{X: x, Y: y, Z: z}
				dstIndex := dstPage.add(offset).linearIndex(dst.pageDim)
				srcIndex := srcPage.add(offset).linearIndex(srcRegion.pageDim)

				dst.mapping.Pages[dstIndex] = srcRegion.mapping.GetPage(srcIndex, src.pageByteSize)
			}
		}
	}

	dst.mapping.SimplifyUnmapped()
}

// CopyImageWrappedRange copies byteSize bytes worth of page bindings from a wrapped run in src
// starting at srcCoord to a wrapped run in t starting at dstCoord. Each side wraps across rows and
// subresources independently, in the same order as SetImageWrappedRange. It returns the destination
// cursor after the copy.
func (t *PageTable) CopyImageWrappedRange(dstSubresource uint32, dstCoord Coord, src *PageTable, srcSubresource uint32, srcCoord Coord, byteSize uint64) (uint32, Coord) {
	if !t.assert(src != nil, "no source page table") ||
		!t.assert(src.pageByteSize == t.pageByteSize, "source page size %d differs from destination page size %d", src.pageByteSize, t.pageByteSize) ||
		!t.assert(t.pageByteSize > 0, "page table is not initialised") ||
		!t.assert(dstSubresource < t.NumSubresources(), "destination subresource %d out of range of %d", dstSubresource, t.NumSubresources()) ||
		!t.assert(srcSubresource < src.NumSubresources(), "source subresource %d out of range of %d", srcSubresource, src.NumSubresources()) {
		return dstSubresource, dstCoord
	}

	pageSize := uint64(t.pageByteSize)
	remainingPages := byteSize == RemainingPages
	if remainingPages {
		byteSize = AlignDown(byteSize, pageSize)
	}
	t.assert(byteSize%pageSize == 0, "size %d is not aligned to page size %d", byteSize, pageSize)

	if src == t {
		src = t.Clone()
	}

	defer DebugValidate(t)

	numPages := byteSize / pageSize

	dst := t.regionFor(dstSubresource)
	dstPage := uint64(t.toPageCoord(dst, dstCoord).linearIndex(dst.pageDim))
	srcRegion := src.regionFor(srcSubresource)
	srcPage := uint64(src.toPageCoord(srcRegion, srcCoord).linearIndex(srcRegion.pageDim))

	for numPages > 0 && dstSubresource < t.NumSubresources() && srcSubresource < src.NumSubresources() {
		dst = t.regionFor(dstSubresource)
		srcRegion = src.regionFor(srcSubresource)

		dstPages := uint64(dst.numPages())
		srcPages := uint64(srcRegion.numPages())

		count := uint64(0)
		if dstPage < dstPages && srcPage < srcPages {
			count = minOf(numPages, minOf(dstPages-dstPage, srcPages-srcPage))
		}

		switch {
		case count == 0:
		case dst.tail && srcRegion.tail:
			t.copyMipTailPages(dstSubresource, uint32(dstPage), src, srcRegion, uint32(srcPage), uint32(count))
		case dstPage == 0 && count == dstPages && t.copyWholeRegion(dst, src, srcRegion, uint32(srcPage)):
		default:
			dst.mapping.CreatePages(uint32(dstPages), t.pageByteSize)
			for i := uint64(0); i < count; i++ {
				dst.mapping.Pages[dstPage+i] = srcRegion.mapping.GetPage(uint32(srcPage+i), src.pageByteSize)
			}
			dst.mapping.SimplifyUnmapped()
		}

		numPages -= count
		dstPage += count
		srcPage += count

		if dstPage >= dstPages {
			dstSubresource = t.nextWrappedSubresource(dstSubresource)
			dstPage = 0
		}
		if srcPage >= srcPages {
			srcSubresource = src.nextWrappedSubresource(srcSubresource)
			srcPage = 0
		}
	}

	if numPages > 0 && !remainingPages {
		t.log().LogAttrs(context.Background(), slog.LevelError, "copying more pages than remain in the source or destination",
			slog.Uint64("UnclaimedBytes", numPages*pageSize),
			slog.Int("DstSubresource", int(dstSubresource)),
			slog.Int("SrcSubresource", int(srcSubresource)))
	}

	if dstSubresource >= t.NumSubresources() {
		return t.NumSubresources(), Coord{}
	}

	return dstSubresource, coordFromIndex(uint32(dstPage), t.regionFor(dstSubresource).pageDim)
}

// copyWholeRegion replaces the whole of dst with the run of source pages starting at srcPage without
// expanding either side, if the source mapping allows it. The linear page order is the same whatever
// the shape of each side's page grid.
func (t *PageTable) copyWholeRegion(dst region, src *PageTable, srcRegion region, srcPage uint32) bool {
	if srcPage == 0 && srcRegion.pageDim == dst.pageDim {
		*dst.mapping = srcRegion.mapping.Clone()
		return true
	}

	single := srcRegion.mapping
	if !single.HasSingleMapping() {
		return false
	}

	first := single.GetPage(srcPage, src.pageByteSize)
	dst.mapping.setSingle(first.Memory, first.Offset, single.SinglePageReused)
	return true
}

// copyMipTailPages copies count pages from a mip tail mapping in src to the mip tail of t that holds
// dstSubresource, through SetMipTailRange.
func (t *PageTable) copyMipTailPages(dstSubresource uint32, dstPage uint32, src *PageTable, srcRegion region, srcPage uint32, count uint32) {
	pageSize := uint64(t.pageByteSize)
	tail := &t.mipTail

	dstOffset := uint64(dstPage) * pageSize
	dstTailStart := t.MipTailByteOffsetForSubresource(dstSubresource)

	mapping := srcRegion.mapping
	if mapping.HasSingleMapping() {
		first := mapping.GetPage(srcPage, src.pageByteSize)
		size := minOf(uint64(count)*pageSize, tail.sliceByteSize()-dstOffset)
		t.SetMipTailRange(dstTailStart+dstOffset, first.Memory, first.Offset, size, mapping.SinglePageReused)
		return
	}

	for i := uint32(0); i < count; i++ {
		page := mapping.Pages[srcPage+i]
		size := minOf(pageSize, tail.sliceByteSize()-dstOffset)
		t.SetMipTailRange(dstTailStart+dstOffset, page.Memory, page.Offset, size, false)
		dstOffset += pageSize
	}
}
