package sparse

import (
	"context"

	"golang.org/x/exp/slog"
)

// SetBufferRange binds a byte range of a buffer. It is identical to SetMipTailRange, since a buffer is
// initialised as one mip tail.
func (t *PageTable) SetBufferRange(resourceByteOffset uint64, memory ResourceId, memoryByteOffset uint64, byteSize uint64, useSinglePage bool) uint64 {
	return t.SetMipTailRange(resourceByteOffset, memory, memoryByteOffset, byteSize, useSinglePage)
}

// SetMipTailRange binds byteSize bytes of the mip tail starting at resourceByteOffset, which is
// relative to the whole resource, to memory starting at memoryByteOffset. If useSinglePage is set
// every page is bound to the same memory page rather than advancing through memory.
//
// Offsets must be page aligned, and the size must be page aligned unless the range ends exactly at the
// end of the tail. The return value is the resource byte offset one past the last byte consumed, so
// consecutive calls can be chained.
func (t *PageTable) SetMipTailRange(resourceByteOffset uint64, memory ResourceId, memoryByteOffset uint64, byteSize uint64, useSinglePage bool) uint64 {
	pageSize := uint64(t.pageByteSize)
	tail := &t.mipTail

	if !t.assert(pageSize > 0, "page table is not initialised") {
		return 0
	}

	t.assert(memoryByteOffset%pageSize == 0, "memory offset %d is not aligned to page size %d", memoryByteOffset, pageSize)
	t.assert(resourceByteOffset%pageSize == 0, "resource offset %d is not aligned to page size %d", resourceByteOffset, pageSize)
	t.assert(byteSize%pageSize == 0 || t.endsMipTail(resourceByteOffset+byteSize),
		"size %d at offset %d is not page aligned and does not end the mip tail of %d bytes", byteSize, resourceByteOffset, tail.TotalPackedByteSize)

	if len(tail.Mappings) == 0 {
		t.log().LogAttrs(context.Background(), slog.LevelError, "attempting to set mip tail on image with no mip tail region")
		return tail.ByteOffset + tail.TotalPackedByteSize
	}

	if !t.assert(tail.TotalPackedByteSize > 0, "mip tail has no size") ||
		!t.assert(resourceByteOffset >= tail.ByteOffset, "resource offset %d is before the mip tail at %d", resourceByteOffset, tail.ByteOffset) {
		return tail.ByteOffset + tail.TotalPackedByteSize
	}

	if memory.IsNull() {
		memoryByteOffset = 0
	}
	advance := !useSinglePage && !memory.IsNull()

	// rebase to be relative to the mip tail
	tailOffset := resourceByteOffset - tail.ByteOffset

	defer DebugValidate(t)

	if tailOffset == 0 && byteSize == tail.TotalPackedByteSize {
		for i := range tail.Mappings {
			tail.Mappings[i].setSingle(memory, memoryByteOffset, useSinglePage)

			if advance {
				memoryByteOffset += tail.ByteStride
			}
		}

		return tail.ByteOffset + tail.TotalPackedByteSize
	}

	if len(tail.Mappings) == 1 {
		mapping := &tail.Mappings[0]
		numPages := t.MipTailSlicePageCount()

		mapping.CreatePages(numPages, t.pageByteSize)

		endPage := minOf(DivRoundUp(tailOffset+byteSize, pageSize), uint64(numPages))
		for page := tailOffset / pageSize; page < endPage; page++ {
			mapping.Pages[page] = Page{Memory: memory, Offset: memoryByteOffset}

			if advance {
				memoryByteOffset += pageSize
			}
		}

		mapping.SimplifyUnmapped()

		return tail.ByteOffset + minOf(tail.TotalPackedByteSize, tailOffset+byteSize)
	}

	// separate mip tails for each slice, ByteStride apart
	if !t.assert(tail.ByteStride != 0, "multiple mip tail mappings with no stride") {
		return tail.ByteOffset + tail.TotalPackedByteSize
	}

	slice := uint32(tailOffset / tail.ByteStride)
	tailOffset -= uint64(slice) * tail.ByteStride

	sliceBytes := tail.sliceByteSize()
	slicePages := t.MipTailSlicePageCount()
	padding := uint64(0)
	if tail.ByteStride > sliceBytes {
		padding = tail.ByteStride - sliceBytes
	}

	for byteSize > 0 && slice < uint32(len(tail.Mappings)) {
		mapping := &tail.Mappings[slice]
		consumed := uint64(0)

		if tailOffset == 0 && byteSize >= sliceBytes {
			mapping.setSingle(memory, memoryByteOffset, useSinglePage)

			if advance {
				memoryByteOffset += tail.ByteStride
			}

			consumed = sliceBytes
		} else {
			mapping.CreatePages(slicePages, t.pageByteSize)

			// only as many pages as the slice has, even if the bound range is larger
			endPage := minOf(DivRoundUp(tailOffset+byteSize, pageSize), uint64(slicePages))
			for page := tailOffset / pageSize; page < endPage; page++ {
				mapping.Pages[page] = Page{Memory: memory, Offset: memoryByteOffset}

				if advance {
					memoryByteOffset += pageSize
				}

				consumed += pageSize
			}

			mapping.SimplifyUnmapped()

			if advance {
				memoryByteOffset += padding
			}
		}

		if tailOffset+consumed >= sliceBytes {
			// this slice is done. Skip over the padding up to the next slice's tail, or consume the
			// rest of the size if it doesn't reach that far
			tailOffset = 0
			byteSize -= minOf(byteSize, consumed)
			byteSize -= minOf(byteSize, padding)
			slice++
		} else {
			// everything requested lies within this slice, or within its padding
			byteSize = 0
			tailOffset += consumed
		}
	}

	if byteSize > 0 {
		t.log().LogAttrs(context.Background(), slog.LevelError, UnclaimedBytesError.Error(),
			slog.Uint64("UnclaimedBytes", byteSize),
			slog.Int("MipTailSlices", len(tail.Mappings)))
	}

	return tail.ByteOffset + uint64(slice)*tail.ByteStride + tailOffset
}

// endsMipTail returns true if resourceByteOffset is one past the end of the mip tail, or of one
// slice's tail when tails are per-slice
func (t *PageTable) endsMipTail(resourceByteOffset uint64) bool {
	tail := &t.mipTail
	if resourceByteOffset == tail.ByteOffset+tail.TotalPackedByteSize {
		return true
	}

	if tail.ByteStride == 0 || resourceByteOffset < tail.ByteOffset {
		return false
	}

	return (resourceByteOffset-tail.ByteOffset)%tail.ByteStride == tail.sliceByteSize()
}
