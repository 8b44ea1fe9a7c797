package sparse_test

import (
	"testing"

	"github.com/baldurk/renderdoc-sub009/sparse"
	"github.com/stretchr/testify/require"
)

// newTexture2D creates a 256x256 texture with 32x32 pages and 6 mips, the last two in a one-page mip
// tail at 0x10000
func newTexture2D(t *testing.T) *sparse.PageTable {
	table := sparse.NewPageTable(nil)
	table.InitialiseImage(sparse.Coord{X: 256, Y: 256, Z: 1}, 6, 1, 64, sparse.Coord{X: 32, Y: 32, Z: 1}, 4, 0x10000, 0, 64)

	require.Equal(t, uint32(64), table.PageByteSize())
	require.Equal(t, sparse.Coord{X: 32, Y: 32, Z: 1}, table.PageTexelSize())
	tail := table.MipTail()
	require.Equal(t, uint64(0x10000), tail.ByteOffset)
	require.Equal(t, uint64(0), tail.ByteStride)
	require.Equal(t, uint64(64), tail.TotalPackedByteSize)
	require.Equal(t, uint32(4), tail.FirstMip)
	// a stride of 0 means one packed tail
	require.Len(t, tail.Mappings, 1)
	require.Equal(t, uint32(6), table.NumSubresources())

	for sub := uint32(0); sub < 6; sub++ {
		requireSingle(t, table.Subresource(sub), nullPage, false)
	}

	return table
}

// idx2D is the page index of x,y in a grid of the given width
func idx2D(width, x, y uint32) int {
	return int(y*width + x)
}

func TestTexture2DQueries(t *testing.T) {
	table := newTexture2D(t)

	require.False(t, table.IsSubresourceInMipTail(0))
	require.False(t, table.IsSubresourceInMipTail(1))
	require.False(t, table.IsSubresourceInMipTail(2))
	require.False(t, table.IsSubresourceInMipTail(3))
	require.True(t, table.IsSubresourceInMipTail(4))
	require.True(t, table.IsSubresourceInMipTail(5))

	require.False(t, table.IsByteOffsetInResource(0))
	require.False(t, table.IsByteOffsetInResource(0x1000))
	require.True(t, table.IsByteOffsetInResource(0x10000))
	require.True(t, table.IsByteOffsetInResource(0x10000+32))
	require.True(t, table.IsByteOffsetInResource(0x10000+63))
	require.False(t, table.IsByteOffsetInResource(0x10000+64))

	require.Equal(t, sparse.Coord{X: 8, Y: 8, Z: 1}, table.CalcSubresourcePageDim(0))
	require.Equal(t, sparse.Coord{X: 4, Y: 4, Z: 1}, table.CalcSubresourcePageDim(1))
	require.Equal(t, sparse.Coord{X: 1, Y: 1, Z: 1}, table.CalcSubresourcePageDim(3))
	require.Equal(t, sparse.Coord{X: 1, Y: 1, Z: 1}, table.CalcSubresourcePageDim(5))
	require.Equal(t, uint64(64*8*8), table.SubresourceByteSize(0))
}

func TestTexture2DWholeSubresourceBindings(t *testing.T) {
	table := newTexture2D(t)
	mip := sparse.NewResourceId()

	next := table.SetMipTailRange(0x10000, mip, 128, 64, false)
	require.Equal(t, uint64(0x10000+64), next)
	requireSingle(t, table.MipTail().Mappings[0], page(mip, 128), false)

	sub0 := sparse.NewResourceId()
	sub1 := sparse.NewResourceId()
	sub2 := sparse.NewResourceId()
	sub3 := sparse.NewResourceId()

	table.SetImageBoxRange(0, sparse.Coord{}, sparse.Coord{X: 256, Y: 256, Z: 1}, sub0, 0, false)
	requireSingle(t, table.Subresource(0), page(sub0, 0), false)

	table.SetImageBoxRange(1, sparse.Coord{}, sparse.Coord{X: 128, Y: 128, Z: 1}, sub1, 128, true)
	requireSingle(t, table.Subresource(1), page(sub1, 128), true)

	// mip 2 is 64x64, 2x2 pages
	nextSub, nextCoord := table.SetImageWrappedRange(2, sparse.Coord{}, 2*2*64, sub2, 256, false, true)
	requireSingle(t, table.Subresource(2), page(sub2, 256), false)
	require.Equal(t, uint32(3), nextSub)
	require.Equal(t, sparse.Coord{}, nextCoord)

	nextSub, nextCoord = table.SetImageWrappedRange(3, sparse.Coord{}, 64, sub3, 512, true, true)
	requireSingle(t, table.Subresource(3), page(sub3, 512), true)
	require.Equal(t, uint32(4), nextSub)
	require.Equal(t, sparse.Coord{}, nextCoord)

	// the tail was left alone
	requireSingle(t, table.MipTail().Mappings[0], page(mip, 128), false)
	require.NoError(t, table.Validate())
}

func TestTexture2DPartialSubresourceBindings(t *testing.T) {
	table := newTexture2D(t)
	sub0a := sparse.NewResourceId()
	sub0b := sparse.NewResourceId()
	sub0c := sparse.NewResourceId()

	idx := func(x, y uint32) int { return idx2D(8, x, y) }
	pages := func() []sparse.Page { return table.Subresource(0).Pages }

	// full width but not full height is still a partial update
	table.SetImageBoxRange(0, sparse.Coord{}, sparse.Coord{X: 256, Y: 192, Z: 1}, sub0a, 0, false)
	require.False(t, table.Subresource(0).HasSingleMapping())
	require.Len(t, pages(), 64)

	require.Equal(t, page(sub0a, 0), pages()[idx(0, 0)])
	require.Equal(t, page(sub0a, 64), pages()[idx(1, 0)])
	require.Equal(t, page(sub0a, 128), pages()[idx(2, 0)])
	require.Equal(t, page(sub0a, (2*8+1)*64), pages()[idx(1, 2)])
	require.Equal(t, page(sub0a, (2*8+3)*64), pages()[idx(3, 2)])
	require.Equal(t, nullPage, pages()[idx(2, 6)])
	require.Equal(t, nullPage, pages()[idx(7, 7)])

	table.SetImageBoxRange(0, sparse.Coord{X: 64}, sparse.Coord{X: 32, Y: 256, Z: 1}, sub0b, 0, false)

	require.Equal(t, page(sub0a, 0), pages()[idx(0, 0)])
	require.Equal(t, page(sub0a, 64), pages()[idx(1, 0)])
	require.Equal(t, page(sub0b, 0), pages()[idx(2, 0)])
	require.Equal(t, page(sub0b, 128), pages()[idx(2, 2)])
	require.Equal(t, page(sub0a, (2*8+3)*64), pages()[idx(3, 2)])
	require.Equal(t, page(sub0b, 6*64), pages()[idx(2, 6)])
	require.Equal(t, nullPage, pages()[idx(3, 6)])
	require.Equal(t, page(sub0b, 7*64), pages()[idx(2, 7)])
	require.Equal(t, nullPage, pages()[idx(7, 7)])

	nextSub, nextCoord := table.SetImageWrappedRange(0, sparse.Coord{X: 96, Y: 192}, 8*64, sub0c, 640, true, true)
	require.Equal(t, uint32(0), nextSub)
	require.Equal(t, sparse.Coord{X: 3, Y: 7}, nextCoord)

	require.Equal(t, page(sub0b, 6*64), pages()[idx(2, 6)])
	require.Equal(t, page(sub0c, 640), pages()[idx(3, 6)])
	require.Equal(t, page(sub0c, 640), pages()[idx(7, 6)])
	require.Equal(t, page(sub0c, 640), pages()[idx(1, 7)])
	require.Equal(t, page(sub0c, 640), pages()[idx(2, 7)])
	require.Equal(t, nullPage, pages()[idx(3, 7)])
	require.Equal(t, nullPage, pages()[idx(7, 7)])

	// wraps off the end of mip 0 into mip 1
	nextSub, nextCoord = table.SetImageWrappedRange(0, sparse.Coord{X: 64, Y: 224}, 11*64, sub0c, 6400, false, true)
	require.Equal(t, uint32(1), nextSub)
	require.Equal(t, sparse.Coord{X: 1, Y: 1}, nextCoord)

	require.Equal(t, page(sub0c, 640), pages()[idx(1, 7)])
	require.Equal(t, page(sub0c, 6400), pages()[idx(2, 7)])
	require.Equal(t, page(sub0c, 6464), pages()[idx(3, 7)])
	require.Equal(t, page(sub0c, 6528), pages()[idx(4, 7)])
	require.Equal(t, page(sub0c, 6720), pages()[idx(7, 7)])

	mip1 := table.Subresource(1)
	require.False(t, mip1.HasSingleMapping())
	require.Len(t, mip1.Pages, 16)
	require.Equal(t, page(sub0c, 6784), mip1.Pages[0])
	require.Equal(t, page(sub0c, 6784+4*64), mip1.Pages[4])
	require.Equal(t, nullPage, mip1.Pages[5])

	nextSub, nextCoord = table.SetImageWrappedRange(0, sparse.Coord{X: 32}, 64, sparse.NullResourceId, 640, false, true)
	require.Equal(t, uint32(0), nextSub)
	require.Equal(t, sparse.Coord{X: 2}, nextCoord)
	require.Equal(t, page(sub0a, 0), pages()[idx(0, 0)])
	require.Equal(t, nullPage, pages()[idx(1, 0)])
	require.Equal(t, page(sub0b, 0), pages()[idx(2, 0)])

	table.SetImageBoxRange(0, sparse.Coord{X: 32, Y: 192}, sparse.Coord{X: 64, Y: 64, Z: 1}, sparse.NullResourceId, 640, false)
	require.Equal(t, nullPage, pages()[idx(2, 6)])
	require.Equal(t, page(sub0c, 640), pages()[idx(3, 6)])
	require.Equal(t, nullPage, pages()[idx(1, 7)])
	require.Equal(t, nullPage, pages()[idx(2, 7)])
	require.Equal(t, page(sub0c, 6464), pages()[idx(3, 7)])

	nextSub, nextCoord = table.SetImageWrappedRange(0, sparse.Coord{X: 128, Y: 224}, 4*64, sub0a, 512, true, true)
	require.Equal(t, uint32(1), nextSub)
	require.Equal(t, sparse.Coord{}, nextCoord)
	require.Equal(t, page(sub0c, 6464), pages()[idx(3, 7)])
	require.Equal(t, page(sub0a, 512), pages()[idx(4, 7)])
	require.Equal(t, page(sub0a, 512), pages()[idx(7, 7)])
	require.Equal(t, page(sub0c, 6784), table.Subresource(1).Pages[0])

	require.NoError(t, table.Validate())
}

func TestTexture2DRectangular(t *testing.T) {
	table := sparse.NewPageTable(nil)
	table.InitialiseImage(sparse.Coord{X: 512, Y: 128, Z: 1}, 6, 1, 64, sparse.Coord{X: 32, Y: 32, Z: 1}, 4, 0x10000, 0, 64)

	mem0 := sparse.NewResourceId()
	mem1 := sparse.NewResourceId()
	mem2 := sparse.NewResourceId()

	idx := func(x, y uint32) int { return idx2D(16, x, y) }
	pages := func() []sparse.Page { return table.Subresource(0).Pages }

	table.SetImageBoxRange(0, sparse.Coord{}, sparse.Coord{X: 256, Y: 64, Z: 1}, mem0, 0, true)
	require.False(t, table.Subresource(0).HasSingleMapping())
	// 16x4 pages in the top mip
	require.Len(t, pages(), 64)
	require.Equal(t, page(mem0, 0), pages()[idx(0, 0)])
	require.Equal(t, page(mem0, 0), pages()[idx(3, 1)])
	require.Equal(t, nullPage, pages()[idx(11, 2)])
	require.Equal(t, nullPage, pages()[idx(13, 3)])

	table.SetImageBoxRange(0, sparse.Coord{X: 256, Y: 64}, sparse.Coord{X: 256, Y: 64, Z: 1}, mem1, 0, true)
	require.Equal(t, page(mem0, 0), pages()[idx(3, 1)])
	require.Equal(t, page(mem1, 0), pages()[idx(11, 2)])
	require.Equal(t, page(mem1, 0), pages()[idx(13, 3)])

	// 17 pages from 11,2 wrap onto the next row and stop at 12,3
	nextSub, nextCoord := table.SetImageWrappedRange(0, sparse.Coord{X: 11 * 32, Y: 64}, 17*64, mem2, 0, true, true)
	require.Equal(t, uint32(0), nextSub)
	require.Equal(t, sparse.Coord{X: 12, Y: 3}, nextCoord)

	require.Equal(t, page(mem0, 0), pages()[idx(3, 1)])
	require.Equal(t, page(mem2, 0), pages()[idx(11, 2)])
	require.Equal(t, page(mem2, 0), pages()[idx(13, 2)])
	require.Equal(t, page(mem2, 0), pages()[idx(11, 3)])
	require.Equal(t, page(mem1, 0), pages()[idx(12, 3)])
	require.Equal(t, page(mem1, 0), pages()[idx(13, 3)])
}

func TestTexture2DNonAligned(t *testing.T) {
	table := sparse.NewPageTable(nil)
	table.InitialiseImage(sparse.Coord{X: 500, Y: 116, Z: 1}, 6, 1, 64, sparse.Coord{X: 32, Y: 32, Z: 1}, 4, 0x10000, 0, 64)

	mem0 := sparse.NewResourceId()
	mem1 := sparse.NewResourceId()
	mem2 := sparse.NewResourceId()

	idx := func(x, y uint32) int { return idx2D(16, x, y) }

	table.SetImageBoxRange(0, sparse.Coord{}, sparse.Coord{X: 256, Y: 64, Z: 1}, mem0, 0, true)
	// the extent is not page aligned but ends at the edge of the texture
	table.SetImageBoxRange(0, sparse.Coord{X: 256, Y: 64}, sparse.Coord{X: 500 - 256, Y: 116 - 64, Z: 1}, mem1, 0, true)
	table.SetImageWrappedRange(0, sparse.Coord{X: 11 * 32, Y: 64}, 17*64, mem2, 0, true, true)

	pages := table.Subresource(0).Pages
	// still 16x4 pages in the top mip
	require.Len(t, pages, 64)
	require.Equal(t, page(mem0, 0), pages[idx(0, 0)])
	require.Equal(t, page(mem0, 0), pages[idx(3, 1)])
	require.Equal(t, page(mem2, 0), pages[idx(11, 2)])
	require.Equal(t, page(mem2, 0), pages[idx(11, 3)])
	require.Equal(t, page(mem1, 0), pages[idx(12, 3)])
	require.Equal(t, page(mem1, 0), pages[idx(15, 3)])
}

func TestTexture2DAllMipTail(t *testing.T) {
	table := sparse.NewPageTable(nil)
	table.InitialiseImage(sparse.Coord{X: 256, Y: 256, Z: 1}, 6, 1, 64, sparse.Coord{X: 32, Y: 32, Z: 1}, 0, 0, 0, 8192)

	tail := table.MipTail()
	require.Equal(t, uint64(0), tail.ByteOffset)
	require.Equal(t, uint64(8192), tail.TotalPackedByteSize)
	require.Equal(t, uint32(0), tail.FirstMip)
	require.Len(t, tail.Mappings, 1)
	require.Equal(t, uint32(6), table.NumSubresources())

	for sub := uint32(0); sub < 6; sub++ {
		require.True(t, table.IsSubresourceInMipTail(sub))
	}

	mip := sparse.NewResourceId()
	next := table.SetMipTailRange(0, mip, 512, 256, false)
	require.Equal(t, uint64(256), next)

	mapping := table.MipTail().Mappings[0]
	require.False(t, mapping.HasSingleMapping())
	require.Len(t, mapping.Pages, 8192/64)
	require.Equal(t, page(mip, 512), mapping.Pages[0])
	require.Equal(t, page(mip, 576), mapping.Pages[1])
	require.Equal(t, page(mip, 640), mapping.Pages[2])
	require.Equal(t, page(mip, 704), mapping.Pages[3])
	require.Equal(t, nullPage, mapping.Pages[4])
	require.Equal(t, nullPage, mapping.Pages[5])
}

func TestTexture3D(t *testing.T) {
	newTable := func(t *testing.T) *sparse.PageTable {
		table := sparse.NewPageTable(nil)
		table.InitialiseImage(sparse.Coord{X: 256, Y: 256, Z: 64}, 6, 1, 64, sparse.Coord{X: 32, Y: 32, Z: 4}, 4, 0x10000, 0, 64)

		require.Equal(t, sparse.Coord{X: 32, Y: 32, Z: 4}, table.PageTexelSize())
		require.Equal(t, uint32(4), table.MipTail().FirstMip)
		require.Equal(t, uint32(6), table.NumSubresources())
		require.False(t, table.IsSubresourceInMipTail(3))
		require.True(t, table.IsSubresourceInMipTail(4))
		for sub := uint32(0); sub < 6; sub++ {
			requireSingle(t, table.Subresource(sub), nullPage, false)
		}
		return table
	}

	t.Run("WholeSubresource", func(t *testing.T) {
		table := newTable(t)
		sub0 := sparse.NewResourceId()
		sub1 := sparse.NewResourceId()

		table.SetImageBoxRange(0, sparse.Coord{}, sparse.Coord{X: 256, Y: 256, Z: 64}, sub0, 0, false)
		requireSingle(t, table.Subresource(0), page(sub0, 0), false)

		table.SetImageBoxRange(1, sparse.Coord{}, sparse.Coord{X: 128, Y: 128, Z: 32}, sub1, 128, true)
		requireSingle(t, table.Subresource(1), page(sub1, 128), true)
	})

	t.Run("PartialSubresource", func(t *testing.T) {
		table := newTable(t)
		sub0a := sparse.NewResourceId()

		// full width and height but not full depth
		table.SetImageBoxRange(0, sparse.Coord{}, sparse.Coord{X: 256, Y: 256, Z: 16}, sub0a, 0, false)

		pages := table.Subresource(0).Pages
		require.False(t, table.Subresource(0).HasSingleMapping())
		// 8x8x16 pages in the top mip
		require.Len(t, pages, 8*8*16)

		idx := func(x, y, z uint32) uint32 { return (z*8+y)*8 + x }
		for _, c := range []sparse.Coord{{X: 0, Y: 0, Z: 0}, {X: 3, Y: 4, Z: 0}, {X: 7, Y: 7, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 3, Y: 4, Z: 1}, {X: 7, Y: 7, Z: 3}} {
			i := idx(c.X, c.Y, c.Z)
			require.Equal(t, page(sub0a, uint64(i)*64), pages[i])
		}
		for _, c := range []sparse.Coord{{X: 0, Y: 0, Z: 10}, {X: 3, Y: 4, Z: 10}, {X: 7, Y: 7, Z: 11}, {X: 0, Y: 0, Z: 4}} {
			require.Equal(t, nullPage, pages[idx(c.X, c.Y, c.Z)])
		}
	})
}

func TestTexture2DWholeToSplitPages(t *testing.T) {
	table := newTexture2D(t)
	mem0 := sparse.NewResourceId()
	mem1 := sparse.NewResourceId()

	idx := func(x, y uint32) int { return idx2D(8, x, y) }

	table.SetImageBoxRange(0, sparse.Coord{}, sparse.Coord{X: 256, Y: 256, Z: 1}, mem0, 0, false)
	requireSingle(t, table.Subresource(0), page(mem0, 0), false)

	table.SetImageBoxRange(0, sparse.Coord{X: 32, Y: 32}, sparse.Coord{X: 64, Y: 64, Z: 1}, mem1, 10240, true)

	pages := table.Subresource(0).Pages
	require.Equal(t, page(mem0, uint64(idx(0, 0))*64), pages[idx(0, 0)])
	require.Equal(t, page(mem0, uint64(idx(2, 0))*64), pages[idx(2, 0)])
	require.Equal(t, page(mem1, 10240), pages[idx(1, 1)])
	require.Equal(t, page(mem1, 10240), pages[idx(2, 1)])
	require.Equal(t, page(mem1, 10240), pages[idx(1, 2)])
	require.Equal(t, page(mem1, 10240), pages[idx(2, 2)])
	require.Equal(t, page(mem0, uint64(idx(3, 6))*64), pages[idx(3, 6)])
	require.Equal(t, page(mem0, uint64(idx(3, 7))*64), pages[idx(3, 7)])

	table.SetImageBoxRange(0, sparse.Coord{}, sparse.Coord{X: 256, Y: 256, Z: 1}, mem0, 0, false)
	requireSingle(t, table.Subresource(0), page(mem0, 0), false)

	table.SetImageBoxRange(0, sparse.Coord{X: 32, Y: 32}, sparse.Coord{X: 64, Y: 64, Z: 1}, mem1, 1024000, false)

	pages = table.Subresource(0).Pages
	require.Equal(t, page(mem0, uint64(idx(2, 0))*64), pages[idx(2, 0)])
	require.Equal(t, page(mem1, 1024000), pages[idx(1, 1)])
	require.Equal(t, page(mem1, 1024064), pages[idx(2, 1)])
	require.Equal(t, page(mem1, 1024128), pages[idx(1, 2)])
	require.Equal(t, page(mem1, 1024192), pages[idx(2, 2)])
	require.Equal(t, page(mem0, uint64(idx(2, 7))*64), pages[idx(2, 7)])
}

func TestTexture2DSplitThenUnsplit(t *testing.T) {
	table := newTexture2D(t)
	mem := sparse.NewResourceId()

	table.SetImageBoxRange(0, sparse.Coord{X: 32}, sparse.Coord{X: 32, Y: 32, Z: 1}, mem, 0, false)
	require.False(t, table.Subresource(0).HasSingleMapping())
	require.Len(t, table.Subresource(0).Pages, 64)

	table.SetImageBoxRange(0, sparse.Coord{}, sparse.Coord{X: 256, Y: 256, Z: 1}, sparse.NullResourceId, 0, false)
	requireSingle(t, table.Subresource(0), nullPage, false)

	// two identical partial writes covering everything stay expanded
	table.SetImageBoxRange(0, sparse.Coord{}, sparse.Coord{X: 256, Y: 128, Z: 1}, mem, 0, true)
	table.SetImageBoxRange(0, sparse.Coord{Y: 128}, sparse.Coord{X: 256, Y: 128, Z: 1}, mem, 0, true)
	require.False(t, table.Subresource(0).HasSingleMapping())
	for _, p := range table.Subresource(0).Pages {
		require.Equal(t, page(mem, 0), p)
	}
}
