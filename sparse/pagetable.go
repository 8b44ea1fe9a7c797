package sparse

import (
	"golang.org/x/exp/slog"
)

// RemainingPages can be passed as the byte size of a wrapped update to consume every page from the
// starting coordinate to the end of the resource.
const RemainingPages uint64 = ^uint64(0)

// PageTable tracks which memory pages are bound to which regions of a sparse buffer or texture.
//
// Every subresource (slice*mipCount + mip) has a PageRangeMapping, including subresources that lie in
// the mip tail, so that indexing is uniform. Subresources in the mip tail are bound through the
// MipTail's mappings instead.
//
// PageTable performs no synchronization. Callers must serialize access to a single instance.
type PageTable struct {
	logger *slog.Logger

	textureDim    Coord
	mipCount      uint32
	arraySize     uint32
	pageByteSize  uint32
	pageTexelSize Coord

	subresources []PageRangeMapping
	mipTail      MipTail
}

// NewPageTable creates an empty page table. Initialise it with InitialiseBuffer or InitialiseImage
// before use. A nil logger uses slog.Default().
func NewPageTable(logger *slog.Logger) *PageTable {
	return &PageTable{logger: logger}
}

func (t *PageTable) log() *slog.Logger {
	if t.logger == nil {
		return slog.Default()
	}
	return t.logger
}

func (t *PageTable) Logger() *slog.Logger {
	return t.log()
}

func (t *PageTable) SetLogger(logger *slog.Logger) {
	t.logger = logger
}

// InitialiseBuffer sets the table up for a buffer of bufferByteSize bytes. The whole buffer is
// treated as a single-slice mip tail starting at mip 0.
func (t *PageTable) InitialiseBuffer(bufferByteSize uint64, pageByteSize uint32) {
	t.log().Debug("PageTable::InitialiseBuffer", slog.Uint64("Size", bufferByteSize), slog.Int("PageByteSize", int(pageByteSize)))

	t.textureDim = Coord{X: 1, Y: 1, Z: 1}
	t.pageTexelSize = Coord{X: 1, Y: 1, Z: 1}
	t.pageByteSize = max1(pageByteSize)
	// a buffer is one slice of one mip so that the mip tail queries work unchanged
	t.arraySize = 1
	t.mipCount = 1
	t.subresources = make([]PageRangeMapping, 1)

	t.mipTail = MipTail{
		FirstMip:            0,
		TotalPackedByteSize: bufferByteSize,
		Mappings:            make([]PageRangeMapping, 1),
	}
}

// InitialiseImage sets the table up for a texture. All dimensions are clamped to at least 1. If
// firstTailMip is below numMips the texture has a mip tail at mipTailOffset bytes into the resource,
// either one packed tail for all slices (mipTailStride 0) or one per slice, mipTailStride bytes apart.
func (t *PageTable) InitialiseImage(overallTexelDim Coord, numMips, numArraySlices uint32, pageByteSize uint32,
	pageTexelDim Coord, firstTailMip uint32, mipTailOffset, mipTailStride, mipTailTotalPackedSize uint64) {
	t.log().Debug("PageTable::InitialiseImage",
		slog.String("Dim", overallTexelDim.String()),
		slog.Int("MipCount", int(numMips)),
		slog.Int("ArraySize", int(numArraySlices)),
		slog.Int("FirstTailMip", int(firstTailMip)))

	t.pageByteSize = max1(pageByteSize)
	t.arraySize = max1(numArraySlices)
	t.mipCount = max1(numMips)
	t.pageTexelSize = pageTexelDim.clampMin1()
	t.textureDim = overallTexelDim.clampMin1()

	t.subresources = make([]PageRangeMapping, t.arraySize*t.mipCount)

	if firstTailMip >= t.mipCount {
		t.mipTail = MipTail{FirstMip: t.mipCount}
		return
	}

	t.mipTail = MipTail{
		FirstMip:            firstTailMip,
		ByteOffset:          mipTailOffset,
		ByteStride:          mipTailStride,
		TotalPackedByteSize: mipTailTotalPackedSize,
	}

	if mipTailStride == 0 {
		t.mipTail.Mappings = make([]PageRangeMapping, 1)
	} else {
		t.mipTail.Mappings = make([]PageRangeMapping, t.arraySize)
	}
}

// Clone returns a deep copy of the table. The copy shares this table's logger.
func (t *PageTable) Clone() *PageTable {
	clone := *t
	clone.subresources = make([]PageRangeMapping, len(t.subresources))
	for i := range t.subresources {
		clone.subresources[i] = t.subresources[i].Clone()
	}
	clone.mipTail = t.mipTail.clone()
	return &clone
}

func (t *PageTable) TextureDim() Coord { return t.textureDim }
func (t *PageTable) MipCount() uint32 { return t.mipCount }
func (t *PageTable) ArraySize() uint32 { return t.arraySize }
func (t *PageTable) PageByteSize() uint32 { return t.pageByteSize }
func (t *PageTable) PageTexelSize() Coord { return t.pageTexelSize }
func (t *PageTable) NumSubresources() uint32 { return uint32(len(t.subresources)) }

// MipTail returns the table's mip tail. The returned mappings must not be modified.
func (t *PageTable) MipTail() MipTail {
	return t.mipTail
}

// Subresource returns the per-subresource mapping at index subresource. For subresources in the mip
// tail this is an unused placeholder, see MappingForSubresource.
func (t *PageTable) Subresource(subresource uint32) PageRangeMapping {
	return t.subresources[subresource]
}

// MappingForSubresource returns the mapping that holds the bindings for a subresource, which is the
// relevant mip tail mapping for subresources in the tail. The returned pages must not be modified.
func (t *PageTable) MappingForSubresource(subresource uint32) PageRangeMapping {
	return *t.regionFor(subresource).mapping
}

// RegionPageDim returns the page grid covered by MappingForSubresource. Mip tail mappings are
// addressed as a 1D run of pages.
func (t *PageTable) RegionPageDim(subresource uint32) Coord {
	return t.regionFor(subresource).pageDim
}

func (t *PageTable) CalcSubresource(arraySlice, mip uint32) uint32 {
	return arraySlice*t.mipCount + mip
}

// CalcSubresourcePageDim returns the size in pages of a subresource's mip level. Partially covered
// pages at the edges count as whole pages.
func (t *PageTable) CalcSubresourcePageDim(subresource uint32) Coord {
	mipDim := t.mipTexelDim(subresource)

	return Coord{
		X: max1(DivRoundUp(mipDim.X, t.pageTexelSize.X)),
		Y: max1(DivRoundUp(mipDim.Y, t.pageTexelSize.Y)),
		Z: max1(DivRoundUp(mipDim.Z, t.pageTexelSize.Z)),
	}
}

func (t *PageTable) mipTexelDim(subresource uint32) Coord {
	mipLevel := subresource % max1(t.mipCount)

	return Coord{
		X: max1(t.textureDim.X >> mipLevel),
		Y: max1(t.textureDim.Y >> mipLevel),
		Z: max1(t.textureDim.Z >> mipLevel),
	}
}

// SubresourceByteSize is the number of bytes of pages covering a subresource's mip level
func (t *PageTable) SubresourceByteSize(subresource uint32) uint64 {
	return uint64(t.CalcSubresourcePageDim(subresource).Volume()) * uint64(t.pageByteSize)
}

// MipTailByteOffsetForSubresource returns the resource byte offset of the mip tail belonging to a
// subresource's array slice.
func (t *PageTable) MipTailByteOffsetForSubresource(subresource uint32) uint64 {
	slice := uint64(subresource / max1(t.mipCount))
	return t.mipTail.ByteOffset + slice*t.mipTail.ByteStride
}

func (t *PageTable) IsSubresourceInMipTail(subresource uint32) bool {
	return subresource%max1(t.mipCount) >= t.mipTail.FirstMip
}

// IsByteOffsetInResource returns true if a resource byte offset falls within the mip tail's region,
// including any padding between per-slice tails.
func (t *PageTable) IsByteOffsetInResource(byteOffset uint64) bool {
	size := t.mipTail.TotalPackedByteSize
	if t.mipTail.ByteStride != 0 {
		size = t.mipTail.ByteStride * uint64(t.arraySize)
	}

	return byteOffset >= t.mipTail.ByteOffset && byteOffset < t.mipTail.ByteOffset+size
}

// MipTailSlicePageCount is the number of pages in each of the mip tail's mappings
func (t *PageTable) MipTailSlicePageCount() uint32 {
	if len(t.mipTail.Mappings) == 0 {
		return 0
	}
	return uint32(DivRoundUp(t.mipTail.sliceByteSize(), uint64(t.pageByteSize)))
}

// region is the mapping that backs a subresource with the page grid it is addressed by
type region struct {
	mapping *PageRangeMapping
	pageDim Coord
	tail    bool
}

func (r region) numPages() uint32 {
	return r.pageDim.Volume()
}

func (t *PageTable) regionFor(subresource uint32) region {
	if t.IsSubresourceInMipTail(subresource) && len(t.mipTail.Mappings) > 0 {
		index := uint32(0)
		if t.mipTail.ByteStride != 0 {
			index = subresource / t.mipCount
		}

		return region{
			mapping: &t.mipTail.Mappings[index],
			pageDim: Coord{X: t.MipTailSlicePageCount(), Y: 1, Z: 1},
			tail:    true,
		}
	}

	return region{
		mapping: &t.subresources[subresource],
		pageDim: t.CalcSubresourcePageDim(subresource),
	}
}

// toPageCoord converts a texel coordinate within a subresource to page-grid units. Mip tail
// coordinates are 1D: X counts pages in units of the page texel width, Y and Z are unused.
func (t *PageTable) toPageCoord(r region, coord Coord) Coord {
	if r.tail {
		return Coord{X: coord.X / t.pageTexelSize.X}
	}

	return Coord{
		X: coord.X / t.pageTexelSize.X,
		Y: coord.Y / t.pageTexelSize.Y,
		Z: coord.Z / t.pageTexelSize.Z,
	}
}

// nextWrappedSubresource returns the subresource a wrapped update moves on to once subresource is
// exhausted. Within a slice the non-tail mips are visited in order, followed by the slice's own mip
// tail when tails are per-slice. A tail shared by all slices is visited once, after the last slice.
// The returned value equals NumSubresources when the resource is exhausted.
func (t *PageTable) nextWrappedSubresource(subresource uint32) uint32 {
	numSubresources := t.NumSubresources()
	mip := subresource % t.mipCount
	slice := subresource / t.mipCount
	hasTail := len(t.mipTail.Mappings) > 0

	if hasTail && mip >= t.mipTail.FirstMip {
		if t.mipTail.ByteStride != 0 && slice+1 < t.arraySize {
			return (slice + 1) * t.mipCount
		}
		return numSubresources
	}

	if hasTail && mip+1 == t.mipTail.FirstMip && t.mipTail.ByteStride == 0 && slice+1 < t.arraySize {
		return (slice + 1) * t.mipCount
	}

	return subresource + 1
}
